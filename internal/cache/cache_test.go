package cache

import (
	"testing"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accounts(names ...string) []vitally.Account {
	out := make([]vitally.Account, 0, len(names))
	for i, name := range names {
		out = append(out, vitally.Account{ID: string(rune('1' + i)), Name: name})
	}
	return out
}

func TestNewCacheIsEmpty(t *testing.T) {
	c := New()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.All())
}

func TestReplacePopulates(t *testing.T) {
	c := New()
	c.Replace(accounts("Acme", "Globex"))

	assert.False(t, c.IsEmpty())
	require.Len(t, c.All(), 2)
}

func TestReplaceWithEmptyListStillCountsAsPopulated(t *testing.T) {
	// An empty upstream listing is a valid snapshot. The cache must not
	// report empty afterwards, or every read would refetch.
	c := New()
	c.Replace(nil)

	assert.False(t, c.IsEmpty())
	assert.Empty(t, c.All())
}

func TestReplaceOverwritesUnconditionally(t *testing.T) {
	c := New()
	c.Replace(accounts("Acme", "Globex", "Initech"))
	c.Replace(accounts("Umbrella"))

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Umbrella", all[0].Name)
}

func TestAllReturnsSnapshotCopy(t *testing.T) {
	c := New()
	c.Replace(accounts("Acme"))

	snapshot := c.All()
	snapshot[0].Name = "Mutated"

	assert.Equal(t, "Acme", c.All()[0].Name)
}

func TestReplaceCopiesInput(t *testing.T) {
	c := New()
	in := accounts("Acme")
	c.Replace(in)
	in[0].Name = "Mutated"

	assert.Equal(t, "Acme", c.All()[0].Name)
}

func TestOnReplaceHookFires(t *testing.T) {
	c := New()
	var got [][]vitally.Account
	c.SetOnReplace(func(a []vitally.Account) { got = append(got, a) })

	c.Replace(accounts("Acme", "Globex"))
	c.Replace(accounts("Acme"))

	require.Len(t, got, 2)
	assert.Len(t, got[0], 2)
	assert.Len(t, got[1], 1)
}
