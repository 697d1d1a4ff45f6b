package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `backend:
  url: http://catalog.internal/api/
  token: file-token
  timeout: 3s
server:
  port: "9090"
kafka:
  brokers: "kafka-1:9092, kafka-2:9092"
  topic: catalog-audit
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		want    Config
		wantErr string
	}{
		{
			name: "defaults without a config file",
			want: Config{
				BackendURL:     "http://localhost:3000/api",
				RequestTimeout: 10 * time.Second,
				ServerPort:     "8080",
				KafkaTopic:     "product-changes",
				LogLevel:       "info",
				LogFormat:      "text",
			},
		},
		{
			name: "values from config file",
			file: sampleConfig,
			want: Config{
				BackendURL:     "http://catalog.internal/api",
				BackendToken:   "file-token",
				RequestTimeout: 3 * time.Second,
				ServerPort:     "9090",
				KafkaBrokers:   []string{"kafka-1:9092", "kafka-2:9092"},
				KafkaTopic:     "catalog-audit",
				LogLevel:       "info",
				LogFormat:      "text",
			},
		},
		{
			name: "environment overrides file",
			file: sampleConfig,
			env: map[string]string{
				"BACKEND_URL":     "http://localhost:9000",
				"REQUEST_TIMEOUT": "500ms",
				"LOG_FORMAT":      "json",
			},
			want: Config{
				BackendURL:     "http://localhost:9000",
				BackendToken:   "file-token",
				RequestTimeout: 500 * time.Millisecond,
				ServerPort:     "9090",
				KafkaBrokers:   []string{"kafka-1:9092", "kafka-2:9092"},
				KafkaTopic:     "catalog-audit",
				LogLevel:       "info",
				LogFormat:      "json",
			},
		},
		{
			name:    "invalid timeout",
			env:     map[string]string{"REQUEST_TIMEOUT": "soon"},
			wantErr: "invalid backend.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			ResetConfig()
			t.Cleanup(ResetConfig)

			dir := t.TempDir()
			if tt.file != "" {
				dir = writeConfig(t, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := LoadConfig(dir)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, *GetConfig())
		})
	}
}

func TestLoadConfig_OnlyOnce(t *testing.T) {
	clearConfigEnv(t)
	ResetConfig()
	t.Cleanup(ResetConfig)

	require.NoError(t, LoadConfig(writeConfig(t, sampleConfig)))
	t.Setenv("BACKEND_URL", "http://elsewhere")
	require.NoError(t, LoadConfig(t.TempDir()))

	assert.Equal(t, "http://catalog.internal/api", GetConfig().BackendURL)

	SetBackendURL("http://localhost:41234/")
	assert.Equal(t, "http://localhost:41234", GetConfig().BackendURL)
}
