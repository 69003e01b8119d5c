package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// TextSourceStatic selects the canned recognizer.
	TextSourceStatic = "static"
	// TextSourceRemote selects the HTTP OCR engine client.
	TextSourceRemote = "remote"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, text recognition
// and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`
	// LogLevel overrides the environment's default log level (debug, info, warn, error)
	LogLevel string `env:"LOG_LEVEL" yaml:"logLevel"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxUploadBytes caps the size of an uploaded label image
		MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" env-default:"10485760" yaml:"maxUploadBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the browser origins allowed to call the API; "*" allows any
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" yaml:"allowedOrigins"`
	} `yaml:"http"`

	// TextSource selects and configures the OCR engine
	TextSource struct {
		// Kind is either "static" or "remote"
		Kind string `env:"TEXT_SOURCE_KIND" env-default:"static" yaml:"kind"`
		// Endpoint is the remote engine's recognize URL
		Endpoint string `env:"TEXT_SOURCE_ENDPOINT" yaml:"endpoint"`
		// Token is an optional bearer token for the remote engine
		Token string `env:"TEXT_SOURCE_TOKEN" yaml:"token"`
		// Languages are recognition hints passed to the remote engine
		Languages []string `env:"TEXT_SOURCE_LANGUAGES" env-default:"en,ko" yaml:"languages"`
		// Timeout bounds a single call to the remote engine
		Timeout time.Duration `env:"TEXT_SOURCE_TIMEOUT" env-default:"20s" yaml:"timeout"`
		// MaxConcurrent bounds the number of in-flight remote engine calls
		MaxConcurrent int64 `env:"TEXT_SOURCE_MAX_CONCURRENT" env-default:"4" yaml:"maxConcurrent"`
	} `yaml:"textSource"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Validate reports configuration combinations that cannot work.
func (c *Config) Validate() error {
	switch c.TextSource.Kind {
	case TextSourceStatic:
	case TextSourceRemote:
		if c.TextSource.Endpoint == "" {
			return errors.New("textSource.endpoint is required for the remote text source")
		}
	default:
		return fmt.Errorf("unknown text source kind %q", c.TextSource.Kind)
	}

	return nil
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist, configuration is read from the environment only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
