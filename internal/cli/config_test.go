package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	tmp := isolate(t)

	cfg := CLIConfig{
		ServerURL:   "http://myhost:9090",
		AccessToken: "eyJtest.token",
		Timezone:    "America/New_York",
	}

	if err := saveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path := filepath.Join(tmp, ".config", "sd", "config.yaml")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not found: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	loaded, err := loadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	isolate(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg != (CLIConfig{}) {
		t.Error("expected zero-value config for missing file")
	}
}

func TestConfigLoadInvalid(t *testing.T) {
	tmp := isolate(t)

	dir := filepath.Join(tmp, ".config", "sd")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server_url: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGetServerURLPrecedence(t *testing.T) {
	isolate(t)

	if got := getServerURL(); got != defaultServerURL {
		t.Errorf("default url = %q, want %q", got, defaultServerURL)
	}

	if err := saveConfig(CLIConfig{ServerURL: "http://fromfile:1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := getServerURL(); got != "http://fromfile:1" {
		t.Errorf("file url = %q", got)
	}

	t.Setenv("SD_SERVER_URL", "http://fromenv:2")
	if got := getServerURL(); got != "http://fromenv:2" {
		t.Errorf("env url = %q", got)
	}

	flagServer = "http://fromflag:3"
	t.Cleanup(func() { flagServer = "" })
	if got := getServerURL(); got != "http://fromflag:3" {
		t.Errorf("flag url = %q", got)
	}
}

func TestGetTokenFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("SD_TOKEN", "envtoken")

	if err := saveConfig(CLIConfig{AccessToken: "filetoken"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := getToken(); got != "envtoken" {
		t.Errorf("token = %q, want %q", got, "envtoken")
	}
}

func TestGetTokenFromConfig(t *testing.T) {
	isolate(t)

	if err := saveConfig(CLIConfig{AccessToken: "filetoken"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := getToken(); got != "filetoken" {
		t.Errorf("token = %q, want %q", got, "filetoken")
	}
}

func TestGetTokenEmpty(t *testing.T) {
	isolate(t)

	if got := getToken(); got != "" {
		t.Errorf("token = %q, want empty", got)
	}
}

func TestGetLocation(t *testing.T) {
	isolate(t)

	loc, err := getLocation()
	if err != nil {
		t.Fatalf("default location: %v", err)
	}
	if loc.String() != "Local" {
		t.Errorf("default location = %q, want Local", loc)
	}

	t.Setenv("SD_TIMEZONE", "UTC")
	loc, err = getLocation()
	if err != nil {
		t.Fatalf("env location: %v", err)
	}
	if loc.String() != "UTC" {
		t.Errorf("env location = %q, want UTC", loc)
	}

	t.Setenv("SD_TIMEZONE", "Not/AZone")
	if _, err := getLocation(); err == nil {
		t.Error("expected error for unknown zone")
	}
}
