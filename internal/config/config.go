package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BackendURL     string
	BackendToken   string
	RequestTimeout time.Duration
	ServerPort     string
	KafkaBrokers   []string
	KafkaTopic     string
	LogLevel       string
	LogFormat      string
}

var (
	AppConfig     Config
	configLoaded  bool
	configLoadMux sync.Mutex
)

// viper key -> environment variable
var envBindings = map[string]string{
	"backend.url":     "BACKEND_URL",
	"backend.token":   "BACKEND_TOKEN",
	"backend.timeout": "REQUEST_TIMEOUT",
	"server.port":     "SERVER_PORT",
	"kafka.brokers":   "KAFKA_BROKERS",
	"kafka.topic":     "KAFKA_TOPIC",
	"log.level":       "LOG_LEVEL",
	"log.format":      "LOG_FORMAT",
}

func init() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("backend.url", "http://localhost:3000/api")
	viper.SetDefault("backend.token", "")
	viper.SetDefault("backend.timeout", "10s")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("kafka.brokers", "")
	viper.SetDefault("kafka.topic", "product-changes")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from configPath (if present) and the
// environment. Flags bound with viper.BindPFlag take precedence over both.
func LoadConfig(configPath string) error {
	configLoadMux.Lock()
	defer configLoadMux.Unlock()

	if configLoaded {
		return nil // Config already loaded, no need to read again
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(viper.GetString("backend.timeout"))
	if err != nil {
		return fmt.Errorf("invalid backend.timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}

	backendURL := strings.TrimRight(viper.GetString("backend.url"), "/")
	if backendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}

	AppConfig = Config{
		BackendURL:     backendURL,
		BackendToken:   viper.GetString("backend.token"),
		RequestTimeout: timeout,
		ServerPort:     viper.GetString("server.port"),
		KafkaBrokers:   splitList(viper.GetString("kafka.brokers")),
		KafkaTopic:     viper.GetString("kafka.topic"),
		LogLevel:       viper.GetString("log.level"),
		LogFormat:      viper.GetString("log.format"),
	}

	configLoaded = true
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func GetConfig() *Config {
	return &AppConfig
}

// SetBackendURL points the client at another server, e.g. a stub started on
// a random port.
func SetBackendURL(url string) {
	configLoadMux.Lock()
	defer configLoadMux.Unlock()

	AppConfig.BackendURL = strings.TrimRight(url, "/")
}

func ResetConfig() {
	configLoadMux.Lock()
	defer configLoadMux.Unlock()

	configLoaded = false
	AppConfig = Config{}
	viper.Reset()
	setDefaults()
}
