package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"resume": "https://example.com/resume.json",
		"port": 9090,
		"pdf_timeout": "45s",
		"strict": true,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/resume.json", cfg.Resume)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "45s", cfg.PDFTimeout)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "studio.yaml", `
resume: cv/resume.json
host: 127.0.0.1
port: 3000
pdf_concurrency: 4
verbose: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "cv/resume.json", cfg.Resume)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 4, cfg.PDFConcurrency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yml", "port: [1, 2"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RESUME_STUDIO_RESUME", "env.json")
	t.Setenv("RESUME_STUDIO_PORT", "7000")
	t.Setenv("RESUME_STUDIO_STRICT", "true")
	t.Setenv("RESUME_STUDIO_PDF_TIMEOUT", "10s")

	cfg := Config{Resume: "file.json", Port: 8080, Host: "localhost"}
	require.NoError(t, cfg.FromEnv())

	assert.Equal(t, "env.json", cfg.Resume)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "10s", cfg.PDFTimeout)
	assert.Equal(t, "localhost", cfg.Host, "unset variables keep the current value")
}

func TestFromEnv_BadNumber(t *testing.T) {
	t.Setenv("RESUME_STUDIO_PORT", "eighty")

	cfg := Config{Port: 8080}
	err := cfg.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESUME_STUDIO_PORT")
	assert.Equal(t, 8080, cfg.Port)
}

func TestFromEnv_BadBool(t *testing.T) {
	t.Setenv("RESUME_STUDIO_VERBOSE", "loud")

	cfg := Config{}
	err := cfg.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a boolean")
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 70000}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestValidate_PDFTimeout(t *testing.T) {
	cfg := &Config{PDFTimeout: "soon"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pdf_timeout")

	cfg.PDFTimeout = "-5s"
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingChrome(t *testing.T) {
	cfg := &Config{ChromePath: "/nonexistent/chrome"}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chrome binary not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestTimeoutAndAddr(t *testing.T) {
	cfg := Config{PDFTimeout: "1m", Host: "127.0.0.1", Port: 9000}
	assert.Equal(t, time.Minute, cfg.Timeout())
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())

	cfg.PDFTimeout = "garbage"
	assert.Equal(t, DefaultPDFTimeout, cfg.Timeout())

	assert.Equal(t, ":8080", (&Config{Port: 8080}).Addr())
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		Resume:  "custom.json",
		Verbose: true,
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "custom.json", merged.Resume)
	assert.True(t, merged.Verbose)

	// Default values should fill in empty fields
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, "30s", merged.PDFTimeout)
	assert.Equal(t, DefaultPDFConcurrency, merged.PDFConcurrency)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{Resume: "test.json", Port: 1234}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "test.json", merged.Resume)
	assert.Equal(t, 1234, merged.Port)
	assert.Empty(t, merged.PDFTimeout)
}
