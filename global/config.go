package global

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Conf global config
var Conf Config

const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

type Config struct {
	Mode       string           `yaml:"mode"`
	API        APIConfig        `yaml:"api"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
}

type APIConfig struct {
	BaseURL string `yaml:"baseUrl"`
	// Timeout of 0 means calls never time out
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
}

type StorageConfig struct {
	// Type is one of memory, file, redis, s3
	Type string `yaml:"type"`
	// Path is the directory used by the file storage
	Path string `yaml:"path"`
	// Namespace separates collections of different users sharing a remote storage
	Namespace string      `yaml:"namespace"`
	Redis     RedisConfig `yaml:"redis"`
	S3        S3Config    `yaml:"s3"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	Username string `yaml:"username"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Key      string `yaml:"key"`
	Secret   string `yaml:"secret"`
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Prefix   string `yaml:"prefix"`
}

type AuthConfig struct {
	// how long "account created" is displayed before returning to login
	SignupReturnDelay time.Duration `yaml:"signupReturnDelay"`
}

type PrometheusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// DefaultConfig is used for every value missing from conf.yaml
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return Config{
		Mode: ModeRelease,
		API: APIConfig{
			BaseURL:   "https://api.mailcampaign.io",
			UserAgent: "go-campaign-console/1.0.0",
		},
		Storage: StorageConfig{
			Type:      "file",
			Path:      home + "/.campaign-console",
			Namespace: "default",
			Redis:     RedisConfig{Host: "localhost", Port: 6379},
		},
		Auth:       AuthConfig{SignupReturnDelay: 3 * time.Second},
		Prometheus: PrometheusConfig{Listen: "localhost:9464"},
	}
}

// LoadConfig reads the yaml file on top of the defaults. A missing file is not an error.
// CONSOLE_API_URL and CONSOLE_STORAGE override the file.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return conf, err
		}
		if err == nil {
			if yErr := yaml.Unmarshal(data, &conf); yErr != nil {
				return conf, yErr
			}
		}
	}
	if apiURL := os.Getenv("CONSOLE_API_URL"); apiURL != "" {
		conf.API.BaseURL = apiURL
	}
	if storageType := os.Getenv("CONSOLE_STORAGE"); storageType != "" {
		conf.Storage.Type = storageType
	}
	return conf, nil
}
