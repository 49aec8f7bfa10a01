package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("VITALLY_API_KEY", "sk-live-123")
	t.Setenv("VITALLY_SUBDOMAIN", "acme")
	t.Setenv("VITALLY_DATA_CENTER", "EU")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-live-123", cfg.APIKey)
	assert.Equal(t, "acme", cfg.Subdomain)
	assert.Equal(t, DataCenterEU, cfg.DataCenter)
}

func TestLoadDefaultsDataCenterToUS(t *testing.T) {
	t.Setenv("VITALLY_API_KEY", "")
	t.Setenv("VITALLY_SUBDOMAIN", "")
	t.Setenv("VITALLY_DATA_CENTER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DataCenterUS, cfg.DataCenter)
}

func TestLoadRejectsUnknownDataCenter(t *testing.T) {
	t.Setenv("VITALLY_DATA_CENTER", "APAC")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VITALLY_DATA_CENTER")
}

func TestDemoMode(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{name: "empty key", apiKey: "", want: true},
		{name: "exact placeholder", apiKey: APIKeyPlaceholder, want: true},
		{name: "real key", apiKey: "sk-live-456", want: false},
		{name: "placeholder in different case is a real key", apiKey: "YOUR-API-KEY-HERE", want: false},
		{name: "placeholder with whitespace is a real key", apiKey: APIKeyPlaceholder + " ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{APIKey: tt.apiKey}
			assert.Equal(t, tt.want, cfg.DemoMode())
		})
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "US without subdomain",
			cfg:  Config{DataCenter: DataCenterUS},
			want: "https://rest.vitally.io/resources/v1",
		},
		{
			name: "US with subdomain",
			cfg:  Config{DataCenter: DataCenterUS, Subdomain: "acme"},
			want: "https://acme.rest.vitally.io/resources/v1",
		},
		{
			name: "EU ignores subdomain",
			cfg:  Config{DataCenter: DataCenterEU, Subdomain: "acme"},
			want: "https://rest.vitally-eu.io/resources/v1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.BaseURL())
		})
	}
}
