package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pokedex/pkg/pokedex"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", `
base_url = "http://localhost:9000/api/v2"
timeout = "3s"
retries = 2
paging = "stride"

[cache]
backend = "redis"
ttl = "1h"

[redis]
addr = "cache:6379"
db = 4
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	want := defaultConfig()
	want.BaseURL = "http://localhost:9000/api/v2"
	want.Timeout = duration{3 * time.Second}
	want.Retries = 2
	want.Paging = "stride"
	want.Cache.Backend = backendRedis
	want.Cache.TTL = duration{time.Hour}
	want.Redis = RedisConfig{Addr: "cache:6379", DB: 4}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.redisConfig().Addr; got != "cache:6379" {
		t.Errorf("redisConfig().Addr = %q", got)
	}
	if cfg.paging() != pokedex.PagingByStride {
		t.Errorf("paging() = %v, want stride", cfg.paging())
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", "cache.backend"},
		{"unknown paging", "paging = \"offset\"\n", "paging"},
		{"negative retries", "retries = -1\n", "retries"},
		{"bad duration", "timeout = \"soon\"\n", "parse config"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", "must not be negative"},
		{"not toml", "base_url = \n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "config.toml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadConfig() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteConfigMasksPassword(t *testing.T) {
	cfg := defaultConfig()
	cfg.Redis.Password = "hunter2"

	var buf bytes.Buffer
	if err := writeConfig(&buf, cfg); err != nil {
		t.Fatalf("writeConfig() error: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Error("writeConfig() leaked the redis password")
	}
	for _, want := range []string{`timeout = "10s"`, `paging = "page"`, `backend = "file"`, `ttl = "24h0m0s"`} {
		if !strings.Contains(out, want) {
			t.Errorf("writeConfig() output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}
