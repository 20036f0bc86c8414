package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/fundsight/fundsight/internal/model"
)

// Config holds all fundsight configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Keywords   Keywords         `toml:"keywords"`
	Thresholds ThresholdConfig  `toml:"thresholds"`
	Budget     BudgetConfig     `toml:"budget"`
	Report     ReportConfig     `toml:"report"`
	SMTP       SMTPConfig       `toml:"smtp"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Client   string `toml:"client"`
	DataDir  string `toml:"data_dir,omitempty"`
	Preparer string `toml:"preparer,omitempty"`
}

// ThresholdConfig holds the numeric knobs for delinquency and liquidity.
type ThresholdConfig struct {
	DelinquencyDays int `toml:"delinquency_days" validate:"gte=0"`
	DaysInMonth     int `toml:"days_in_month" validate:"gte=0,lte=31"`
}

// BudgetConfig holds budget reconciliation settings.
type BudgetConfig struct {
	IncludeUnbudgeted bool `toml:"include_unbudgeted"`
}

// ReportConfig holds board-report composition settings.
type ReportConfig struct {
	Sections model.SectionConfig `toml:"sections"`
	Notes    string              `toml:"notes,omitempty"`
}

// SMTPConfig holds report delivery settings. Credentials never live here;
// they come from the environment (FUNDSIGHT_SMTP_USERNAME/PASSWORD).
type SMTPConfig struct {
	Host      string `toml:"host" validate:"omitempty,hostname"`
	Port      int    `toml:"port" validate:"gte=0,lte=65535"`
	From      string `toml:"from,omitempty" validate:"omitempty,email"`
	Recipient string `toml:"recipient,omitempty" validate:"omitempty,email"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" validate:"omitempty,oneof=flexoki-dark flexoki-light"`
}

// TUIConfig holds dashboard behavior settings.
type TUIConfig struct {
	RefreshIntervalSec int `toml:"refresh_interval_sec" validate:"gte=0"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Keywords: DefaultKeywords(),
		Thresholds: ThresholdConfig{
			DelinquencyDays: 60,
			DaysInMonth:     30,
		},
		Budget: BudgetConfig{
			IncludeUnbudgeted: true,
		},
		Report: ReportConfig{
			Sections: model.DefaultSections(),
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			RefreshIntervalSec: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fundsight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fundsight")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the semantic constraints the TOML decoder cannot express.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LoadEnv pulls a .env file into the environment if one exists, checking
// the working directory first and the config directory second. Absence is
// not an error.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}
	_ = godotenv.Load(filepath.Join(ConfigDir(), ".env"))
}

// GetDataDir resolves the data directory: env var first, then config,
// then ./data.
func GetDataDir(cfg Config) string {
	if dir := os.Getenv("FUNDSIGHT_DATA_DIR"); dir != "" {
		return dir
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return "data"
}

// GetSMTPUsername returns the SMTP username from the environment.
func GetSMTPUsername() string {
	return os.Getenv("FUNDSIGHT_SMTP_USERNAME")
}

// GetSMTPPassword returns the SMTP password from the environment.
func GetSMTPPassword() string {
	return os.Getenv("FUNDSIGHT_SMTP_PASSWORD")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
