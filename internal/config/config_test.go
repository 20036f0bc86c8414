package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "fundsight")
}

func writeConfig(t *testing.T, cfgDir, body string) {
	t.Helper()
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	tempConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Thresholds.DelinquencyDays != 60 {
		t.Errorf("DelinquencyDays = %d, want 60", cfg.Thresholds.DelinquencyDays)
	}
	if cfg.Thresholds.DaysInMonth != 30 {
		t.Errorf("DaysInMonth = %d, want 30", cfg.Thresholds.DaysInMonth)
	}
	if !cfg.Budget.IncludeUnbudgeted {
		t.Error("IncludeUnbudgeted default = false, want true")
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != 587 {
		t.Errorf("SMTP default = %s:%d, want smtp.gmail.com:587", cfg.SMTP.Host, cfg.SMTP.Port)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if !reflect.DeepEqual(cfg.Keywords, DefaultKeywords()) {
		t.Errorf("Keywords = %+v, want defaults", cfg.Keywords)
	}
	if !cfg.Report.Sections.Summary || !cfg.Report.Sections.SignatureBlock {
		t.Errorf("Sections = %+v, want everything enabled", cfg.Report.Sections)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tempConfigHome(t)

	cfg := DefaultConfig()
	cfg.General.Client = "Harbor Community Trust"
	cfg.General.DataDir = "/srv/fundsight/harbor"
	cfg.General.Preparer = "J. Alvarez, Treasurer"
	cfg.Thresholds.DelinquencyDays = 30
	cfg.Budget.IncludeUnbudgeted = false
	cfg.SMTP.Recipient = "board@example.org"
	cfg.Keywords.Personnel = append(cfg.Keywords.Personnel, "Stipend")

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.General.Client != cfg.General.Client {
		t.Errorf("Client = %q, want %q", got.General.Client, cfg.General.Client)
	}
	if got.General.Preparer != cfg.General.Preparer {
		t.Errorf("Preparer = %q, want %q", got.General.Preparer, cfg.General.Preparer)
	}
	if got.Thresholds.DelinquencyDays != 30 {
		t.Errorf("DelinquencyDays = %d, want 30", got.Thresholds.DelinquencyDays)
	}
	if got.Budget.IncludeUnbudgeted {
		t.Error("IncludeUnbudgeted survived as true, want false")
	}
	if got.SMTP.Recipient != "board@example.org" {
		t.Errorf("Recipient = %q, want board@example.org", got.SMTP.Recipient)
	}
	if !reflect.DeepEqual(got.Keywords, cfg.Keywords) {
		t.Errorf("Keywords = %+v, want %+v", got.Keywords, cfg.Keywords)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfgDir := tempConfigHome(t)
	writeConfig(t, cfgDir, "[general]\nclient = \"Harbor Community Trust\"\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.General.Client != "Harbor Community Trust" {
		t.Errorf("Client = %q, want Harbor Community Trust", cfg.General.Client)
	}
	if cfg.Thresholds.DelinquencyDays != 60 {
		t.Errorf("DelinquencyDays = %d, want default 60", cfg.Thresholds.DelinquencyDays)
	}
	if !reflect.DeepEqual(cfg.Keywords, DefaultKeywords()) {
		t.Errorf("Keywords = %+v, want defaults", cfg.Keywords)
	}
}

func TestLoad_PartialKeywordsKeepDefaults(t *testing.T) {
	cfgDir := tempConfigHome(t)
	writeConfig(t, cfgDir, "[keywords]\npersonnel = [\"Stipend\"]\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Keywords.Personnel) != 1 || cfg.Keywords.Personnel[0] != "Stipend" {
		t.Errorf("Personnel = %v, want [Stipend]", cfg.Keywords.Personnel)
	}
	if !reflect.DeepEqual(cfg.Keywords.Program, DefaultKeywords().Program) {
		t.Errorf("Program = %v, want defaults", cfg.Keywords.Program)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	cfgDir := tempConfigHome(t)
	writeConfig(t, cfgDir, "[thresholds]\ndelinquency_days = -5\n")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a negative delinquency threshold")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad theme", func(c *Config) { c.Appearance.Theme = "solarized" }, true},
		{"bad recipient", func(c *Config) { c.SMTP.Recipient = "not-an-address" }, true},
		{"bad port", func(c *Config) { c.SMTP.Port = 70000 }, true},
		{"days in month too large", func(c *Config) { c.Thresholds.DaysInMonth = 45 }, true},
		{"empty theme ok", func(c *Config) { c.Appearance.Theme = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("Validate accepted an invalid config")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestGetDataDir(t *testing.T) {
	t.Setenv("FUNDSIGHT_DATA_DIR", "")
	_ = os.Unsetenv("FUNDSIGHT_DATA_DIR")

	cfg := DefaultConfig()
	if got := GetDataDir(cfg); got != "data" {
		t.Errorf("fallback = %q, want data", got)
	}

	cfg.General.DataDir = "/srv/fundsight"
	if got := GetDataDir(cfg); got != "/srv/fundsight" {
		t.Errorf("config value = %q, want /srv/fundsight", got)
	}

	t.Setenv("FUNDSIGHT_DATA_DIR", "/mnt/override")
	if got := GetDataDir(cfg); got != "/mnt/override" {
		t.Errorf("env override = %q, want /mnt/override", got)
	}
}

func TestLoadEnv_ConfigDirFallback(t *testing.T) {
	cfgDir := tempConfigHome(t)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	env := "FUNDSIGHT_SMTP_USERNAME=reports@example.org\nFUNDSIGHT_SMTP_PASSWORD=s3cret\n"
	if err := os.WriteFile(filepath.Join(cfgDir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	_ = os.Unsetenv("FUNDSIGHT_SMTP_USERNAME")
	_ = os.Unsetenv("FUNDSIGHT_SMTP_PASSWORD")
	t.Cleanup(func() {
		_ = os.Unsetenv("FUNDSIGHT_SMTP_USERNAME")
		_ = os.Unsetenv("FUNDSIGHT_SMTP_PASSWORD")
	})

	LoadEnv()

	if got := GetSMTPUsername(); got != "reports@example.org" {
		t.Errorf("username = %q, want reports@example.org", got)
	}
	if got := GetSMTPPassword(); got != "s3cret" {
		t.Errorf("password = %q, want s3cret", got)
	}
}

func TestExists(t *testing.T) {
	cfgDir := tempConfigHome(t)

	if Exists() {
		t.Error("Exists reported true before any config was written")
	}

	writeConfig(t, cfgDir, "[general]\nclient = \"x\"\n")

	if !Exists() {
		t.Error("Exists reported false after writing a config")
	}
}
