package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/fliptime/internal/logger"
)

// Zone is one entry of the timezone picker.
type Zone struct {
	// Name is the label shown in the picker.
	Name string `yaml:"name"`
	// ID is the IANA zone identifier.
	ID string `yaml:"id"`
}

// Assets describes the offline asset manifest.
type Assets struct {
	// BaseURL resolves relative manifest entries such as "./index.html".
	BaseURL string `yaml:"base_url" env:"FLIPTIME_ASSETS_BASE_URL"`
	// CacheDir is where prefetched files are stored.
	CacheDir string `yaml:"cache_dir" env:"FLIPTIME_ASSETS_DIR"`
	// URLs is the list of assets to prefetch.
	URLs []string `yaml:"urls"`
	// Timeout bounds each download.
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds the settings of the fliptime binary.
// User preferences (timezone, theme, format) live in the settings store, not here.
type Config struct {
	// DataDir holds the settings and alarm records.
	DataDir string `yaml:"data_dir" env:"FLIPTIME_DATA_DIR"`
	// LogFile receives logs while the terminal UI owns the screen.
	LogFile string `yaml:"log_file" env:"FLIPTIME_LOG_FILE"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"FLIPTIME_LOG_LEVEL"`
	// TickInterval is the clock cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// FlipDuration is how long a card flip animation lasts.
	FlipDuration time.Duration `yaml:"flip_duration"`
	// FlashDuration is how long the alarm flash lasts.
	FlashDuration time.Duration `yaml:"flash_duration"`
	// DisableWakeLock skips the keep-display-awake request.
	DisableWakeLock bool `yaml:"disable_wake_lock" env:"FLIPTIME_DISABLE_WAKE_LOCK"`
	// Timezones populates the timezone picker.
	Timezones []Zone `yaml:"timezones"`
	// Assets is the offline asset manifest.
	Assets Assets `yaml:"assets"`
}

const (
	// DefaultConfigFilename is the config file looked up when no path is given.
	DefaultConfigFilename = "fliptime.yaml"

	// DefaultLogFilename is the log file name inside the data directory.
	DefaultLogFilename = "fliptime.log"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultTickInterval is the clock cadence.
	DefaultTickInterval = time.Second

	// DefaultFlipDuration matches the card flip animation length.
	DefaultFlipDuration = 500 * time.Millisecond

	// DefaultFlashDuration is the alarm flash length.
	DefaultFlashDuration = 500 * time.Millisecond

	// DefaultAssetTimeout bounds each asset download.
	DefaultAssetTimeout = 30 * time.Second

	// DefaultFilePermissions is the file permission for config files.
	DefaultFilePermissions = 0o600

	// appDirName is the per-user directory name.
	appDirName = "fliptime"

	// assetsDirName is the asset cache directory inside the data directory.
	assetsDirName = "assets"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeDuration is returned for negative durations.
	errNegativeDuration = errors.New("duration must not be negative")
	// errUnknownLogLevel is returned for unparsable log levels.
	errUnknownLogLevel = errors.New("unknown log level")
	// errZoneWithoutID is returned for picker entries without an identifier.
	errZoneWithoutID = errors.New("timezone entry without id")
)

// DefaultTimezones is the picker list shipped with the clock.
func DefaultTimezones() []Zone {
	return []Zone{
		{Name: "台北 (GMT+8)", ID: "Asia/Taipei"},
		{Name: "東京 (GMT+9)", ID: "Asia/Tokyo"},
		{Name: "紐約 (GMT-5)", ID: "America/New_York"},
		{Name: "倫敦 (GMT+0)", ID: "Europe/London"},
		{Name: "UTC", ID: "UTC"},
	}
}

// DefaultAssetURLs is the offline asset manifest of the web build.
func DefaultAssetURLs() []string {
	return []string{
		"./",
		"./index.html",
		"./index.css",
		"./index.js",
		"./manifest.json",
		"https://cdn.jsdelivr.net/npm/dayjs@1/dayjs.min.js",
		"https://cdn.jsdelivr.net/npm/dayjs@1/plugin/utc.js",
		"https://cdn.jsdelivr.net/npm/dayjs@1/plugin/timezone.js",
		"https://cdn.jsdelivr.net/npm/lunar-javascript@1.6.12/lunar.min.js",
		"https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.0/css/all.min.css",
	}
}

// DefaultDataDir returns the per-user data directory, or a local one when the
// user config directory is unknown.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "." + appDirName
	}

	return filepath.Join(dir, appDirName)
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from path, applies FLIPTIME_* environment overrides
// and validates the result. A missing file at the default path yields defaults.
func Load(path string) (*Config, error) {
	isDefaultPath := path == ""
	if isDefaultPath {
		path = DefaultConfigFilename
	}

	var cfg Config

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && isDefaultPath:
		logger.Logger().Debugw("No config file, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path in YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate fills defaults for unset fields and checks the rest.
//
//nolint:cyclop // A flat list of field checks reads best.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, DefaultLogFilename)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	durations := []struct {
		name  string
		value *time.Duration
		def   time.Duration
	}{
		{name: "tick_interval", value: &cfg.TickInterval, def: DefaultTickInterval},
		{name: "flip_duration", value: &cfg.FlipDuration, def: DefaultFlipDuration},
		{name: "flash_duration", value: &cfg.FlashDuration, def: DefaultFlashDuration},
		{name: "assets.timeout", value: &cfg.Assets.Timeout, def: DefaultAssetTimeout},
	}

	for _, d := range durations {
		if *d.value < 0 {
			return fmt.Errorf("%s: %w", d.name, errNegativeDuration)
		}

		if *d.value == 0 {
			*d.value = d.def
		}
	}

	if len(cfg.Timezones) == 0 {
		cfg.Timezones = DefaultTimezones()
	}

	for i, zone := range cfg.Timezones {
		if zone.ID == "" {
			return fmt.Errorf("timezones[%d]: %w", i, errZoneWithoutID)
		}

		if zone.Name == "" {
			cfg.Timezones[i].Name = zone.ID
		}
	}

	if cfg.Assets.CacheDir == "" {
		cfg.Assets.CacheDir = filepath.Join(cfg.DataDir, assetsDirName)
	}

	if len(cfg.Assets.URLs) == 0 {
		cfg.Assets.URLs = DefaultAssetURLs()
	}

	if cfg.Assets.BaseURL == "" {
		return nil
	}

	if _, err := url.ParseRequestURI(cfg.Assets.BaseURL); err != nil {
		return fmt.Errorf("invalid assets base URL: %w", err)
	}

	return nil
}

// SetDataDir moves the data directory. The log file and asset cache follow it
// when they still point at their defaults inside the old one.
func (c *Config) SetDataDir(dir string) {
	if dir == "" || dir == c.DataDir {
		return
	}

	if c.LogFile == "" || c.LogFile == filepath.Join(c.DataDir, DefaultLogFilename) {
		c.LogFile = filepath.Join(dir, DefaultLogFilename)
	}

	if c.Assets.CacheDir == "" || c.Assets.CacheDir == filepath.Join(c.DataDir, assetsDirName) {
		c.Assets.CacheDir = filepath.Join(dir, assetsDirName)
	}

	c.DataDir = dir
}

// ZoneIndex returns the picker position of timezone, or -1.
func (c *Config) ZoneIndex(timezone string) int {
	for i, zone := range c.Timezones {
		if zone.ID == timezone {
			return i
		}
	}

	return -1
}

// PickerZones returns the picker list, appending timezone when it is not listed
// so a zone chosen through the CLI still shows up in the picker.
func (c *Config) PickerZones(timezone string) []Zone {
	zones := make([]Zone, len(c.Timezones), len(c.Timezones)+1)
	copy(zones, c.Timezones)

	if timezone != "" && c.ZoneIndex(timezone) < 0 {
		zones = append(zones, Zone{Name: timezone, ID: timezone})
	}

	return zones
}
