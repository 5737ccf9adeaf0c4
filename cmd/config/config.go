package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"climate-monitor/internal/infra/utils"
	"climate-monitor/internal/monitor/domain"

	"github.com/spf13/viper"
)

const (
	DefaultPath = "config.json"
	envPrefix   = "climate_monitor"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid config file")
	ErrNotJSONPath    = errors.New("config path must end in .json")
)

// AppConfig is the whole configuration file. The monitor settings live at
// the top level of the JSON object; the optional integrations are nested.
type AppConfig struct {
	MonitorConfig `mapstructure:",squash"`

	LogLevel  string          `mapstructure:"log_level" json:"log_level"`
	MQTT      MQTTConfig      `mapstructure:"mqtt" json:"mqtt"`
	Database  DatabaseConfig  `mapstructure:"database" json:"database"`
	HTTP      HTTPConfig      `mapstructure:"http" json:"http"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" json:"telemetry"`
	Report    ReportConfig    `mapstructure:"report" json:"report"`
}

type MonitorConfig struct {
	ArduinoPort   string  `mapstructure:"arduino_port" json:"arduino_port"`
	BaudRate      int     `mapstructure:"baud_rate" json:"baud_rate"`
	SerialTimeout float64 `mapstructure:"serial_timeout" json:"serial_timeout"`

	TempHotThreshold      float64 `mapstructure:"temp_hot_threshold" json:"temp_hot_threshold"`
	TempColdThreshold     float64 `mapstructure:"temp_cold_threshold" json:"temp_cold_threshold"`
	HumidityHighThreshold float64 `mapstructure:"humidity_high_threshold" json:"humidity_high_threshold"`
	HumidityLowThreshold  float64 `mapstructure:"humidity_low_threshold" json:"humidity_low_threshold"`

	TempMin float64 `mapstructure:"temp_min" json:"temp_min"`
	TempMax float64 `mapstructure:"temp_max" json:"temp_max"`
	HumMin  float64 `mapstructure:"hum_min" json:"hum_min"`
	HumMax  float64 `mapstructure:"hum_max" json:"hum_max"`

	LogFile    string `mapstructure:"log_file" json:"log_file"`
	AppLogFile string `mapstructure:"app_log_file" json:"app_log_file"`

	ReadingInterval float64 `mapstructure:"reading_interval" json:"reading_interval"`
}

type MQTTConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Broker   string `mapstructure:"broker" json:"broker"`
	ClientID string `mapstructure:"client_id" json:"client_id"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	Topic    string `mapstructure:"topic" json:"topic"`
	Encoding string `mapstructure:"encoding" json:"encoding"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

type HTTPConfig struct {
	Enabled        bool     `mapstructure:"enabled" json:"enabled"`
	Address        string   `mapstructure:"address" json:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
}

type ReportConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Schedule string `mapstructure:"schedule" json:"schedule"`
	Timezone string `mapstructure:"timezone" json:"timezone"`
}

var defaults = map[string]any{
	"arduino_port":            "COM3",
	"baud_rate":               9600,
	"serial_timeout":          1.0,
	"temp_hot_threshold":      78.0,
	"temp_cold_threshold":     60.0,
	"humidity_high_threshold": 60.0,
	"humidity_low_threshold":  30.0,
	"temp_min":                -40.0,
	"temp_max":                140.0,
	"hum_min":                 0.0,
	"hum_max":                 100.0,
	"log_file":                "temperature_log.csv",
	"app_log_file":            "app.log",
	"reading_interval":        5.0,

	"log_level": "info",

	"mqtt.enabled":   false,
	"mqtt.broker":    "tcp://localhost:1883",
	"mqtt.client_id": "climate-monitor",
	"mqtt.username":  "",
	"mqtt.password":  "",
	"mqtt.topic":     "climate-monitor/readings",
	"mqtt.encoding":  "json",

	"database.driver": "",
	"database.dsn":    "",

	"http.enabled":         false,
	"http.address":         ":3000",
	"http.allowed_origins": []string{"http://localhost:5173"},

	"telemetry.enabled":  false,
	"telemetry.endpoint": "localhost:4317",

	"report.enabled":  false,
	"report.schedule": "0 * * * *",
	"report.timezone": "Local",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Default returns the built-in configuration with environment overrides
// applied.
func Default() AppConfig {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Errorf("decoding built-in defaults: %w", err))
	}
	return cfg
}

// Load reads the JSON file at path. The returned configuration is always
// usable: when the file is missing, malformed or fails validation the
// defaults are returned together with an error wrapping ErrConfigNotFound
// or ErrInvalidConfig for the caller to log.
func Load(path string) (AppConfig, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	cfg, err := decode(v)
	if err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

func decode(v *viper.Viper) (AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Save writes the configuration as a JSON object that Load reads back
// unchanged. The file name must carry the .json extension.
func (c AppConfig) Save(path string) error {
	if filepath.Ext(path) != ".json" {
		return fmt.Errorf("%w: %s", ErrNotJSONPath, path)
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("staging config: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}

	return nil
}

func (c AppConfig) Validate() error {
	if err := c.Ranges().Validate(); err != nil {
		return err
	}
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud_rate must be positive, got %d", c.BaudRate)
	}
	if c.SerialTimeout < 0 || c.ReadingInterval < 0 {
		return errors.New("serial_timeout and reading_interval must not be negative")
	}
	if c.Report.Enabled {
		if err := utils.ValidateTimezone(c.Report.Timezone); err != nil {
			return err
		}
	}
	return nil
}

func (c MonitorConfig) Ranges() domain.ValidRanges {
	return domain.ValidRanges{
		TempMin: c.TempMin,
		TempMax: c.TempMax,
		HumMin:  c.HumMin,
		HumMax:  c.HumMax,
	}
}

func (c MonitorConfig) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		TempHot:      c.TempHotThreshold,
		TempCold:     c.TempColdThreshold,
		HumidityHigh: c.HumidityHighThreshold,
		HumidityLow:  c.HumidityLowThreshold,
	}
}

func (c MonitorConfig) SerialTimeoutDuration() time.Duration {
	return seconds(c.SerialTimeout)
}

func (c MonitorConfig) ReadingIntervalDuration() time.Duration {
	return seconds(c.ReadingInterval)
}

func seconds(value float64) time.Duration {
	return time.Duration(value * float64(time.Second))
}
