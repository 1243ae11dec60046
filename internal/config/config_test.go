package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "https://api.openai.com/v1/responses", cfg.OpenAI.Endpoint)
	assert.Equal(t, 4, cfg.Review.Workers)
	assert.Equal(t, 10000, cfg.Review.MaxBodyChars)
	assert.Equal(t, 10, cfg.Review.ReportTopK)
	assert.Equal(t, "data/pdf", cfg.Downloader.Dir)
	assert.Equal(t, 120*time.Second, cfg.OpenAI.Timeout())
	assert.Equal(t, 60*time.Second, cfg.Downloader.Timeout())
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  level: debug
openai:
  model: gpt-large
  timeoutSeconds: 30
review:
  workers: 8
`), 0o644))
	t.Setenv("PAPER_REVIEW_CONFIG", path)

	cfg := Load()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "gpt-large", cfg.OpenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.OpenAI.Timeout())
	assert.Equal(t, 8, cfg.Review.Workers)
	// Untouched sections keep their defaults.
	assert.Equal(t, "data/pdf", cfg.Downloader.Dir)
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
openai:
  model: from-yaml
  apiKey: yaml-key
`), 0o644))
	t.Setenv("PAPER_REVIEW_CONFIG", path)
	t.Setenv("OPENAI_MODEL", "from-env")
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("PAPER_REVIEW_PDF_DIR", "/var/pdf")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.OpenAI.Model)
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, "/var/pdf", cfg.Downloader.Dir)
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv("PAPER_REVIEW_CONFIG", "/does/not/exist.yaml")
	cfg := Load()
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestTimeoutGuardsNonPositive(t *testing.T) {
	assert.Equal(t, 120*time.Second, OpenAIConfig{TimeoutSeconds: 0}.Timeout())
	assert.Equal(t, 60*time.Second, DownloaderConfig{TimeoutSeconds: -5}.Timeout())
}
