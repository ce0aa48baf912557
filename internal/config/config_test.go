package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			Seed:   "1337",
			OutDir: "data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8787,
			Root:            ".",
			Index:           "/web/index.html",
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestServerAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr())
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "1337", cfg.Generator.Seed)
	assert.Equal(t, "data", cfg.Generator.OutDir)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Generator.OutDir)
	assert.Equal(t, "/web/index.html", cfg.Server.Index)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
generator:
  seed: deck-realms
  out_dir: build
  counts:
    Spades: 45
  counts_file: counts.json
logging:
  level: debug
  format: console
  output: stdout
server:
  port: 9000
  shutdown_timeout: 2s
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "deck-realms", cfg.Generator.Seed)
	assert.Equal(t, "build", cfg.Generator.OutDir)
	assert.Equal(t, "counts.json", cfg.Generator.CountsFile)
	var spades any
	for k, v := range cfg.Generator.Counts {
		if strings.EqualFold(k, "Spades") {
			spades = v
		}
	}
	assert.EqualValues(t, 45, spades)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CARDFORGE_GENERATOR_SEED", "42")
	t.Setenv("CARDFORGE_SERVER_PORT", "9100")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "42", cfg.Generator.Seed)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: trace\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidateGeneratorSeedEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Generator.Seed = "  "
	assert.Error(t, cfg.Validate())
}

func TestValidateGeneratorOutDirEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Generator.OutDir = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutput(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = "syslog"
	assert.Error(t, cfg.Validate())
}

func TestValidateServerIndex(t *testing.T) {
	for _, index := range []string{"", "/", "index.html"} {
		cfg := validConfig()
		cfg.Server.Index = index
		assert.Error(t, cfg.Validate(), "index %q should be rejected", index)
	}
}

func TestValidateServerRootEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Root = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateAggregatesAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Generator.OutDir = ""
	cfg.Logging.Format = "xml"
	cfg.Server.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "configuration validation failed: ")
	assert.Contains(t, msg, "generator.out_dir")
	assert.Contains(t, msg, "logging.format")
	assert.Contains(t, msg, "server.port")
}

// Property-based tests

func TestPropertyValidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		port := rapid.IntRange(1, 65535).Draw(t, "port")
		cfg := validConfig()
		cfg.Server.Port = port
		err := cfg.Validate()
		if err != nil {
			t.Fatalf("valid port %d rejected: %v", port, err)
		}
	})
}

func TestPropertyInvalidPortRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// Generate ports outside valid range
		port := rapid.OneOf(
			rapid.IntRange(-1000, 0),
			rapid.IntRange(65536, 100000),
		).Draw(t, "port")
		cfg := validConfig()
		cfg.Server.Port = port
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("invalid port %d accepted", port)
		}
	})
}

func TestPropertyAnySeedTextAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.StringMatching(`[a-z0-9-]{1,16}`).Draw(t, "seed")
		cfg := validConfig()
		cfg.Generator.Seed = seed
		if err := cfg.Validate(); err != nil {
			t.Fatalf("seed %q rejected: %v", seed, err)
		}
	})
}
