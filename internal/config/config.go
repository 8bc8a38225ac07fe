// Package config handles loading and validating the speechfn configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// lambdaRuntimeEnv is set by the AWS Lambda runtime in every function container.
const lambdaRuntimeEnv = "AWS_LAMBDA_RUNTIME_API"

// Config is the root configuration for speechfn.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	TTS        TTSConfig        `mapstructure:"tts"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthEnabled  bool `mapstructure:"health_enabled"`
	HealthPort     int  `mapstructure:"health_port"`
	GRPCHealthPort int  `mapstructure:"grpc_health_port"` // 0 disables the gRPC health service
}

// TransportsConfig holds the configuration for each trigger source.
type TransportsConfig struct {
	Lambda LambdaConfig `mapstructure:"lambda"`
	HTTP   HTTPConfig   `mapstructure:"http"`
}

// LambdaConfig configures the AWS Lambda runtime transport.
type LambdaConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// HTTPConfig configures the local HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// TTSConfig selects and configures the text-to-speech backend.
type TTSConfig struct {
	Backend string       `mapstructure:"backend"` // "polly" or "google"
	Polly   PollyConfig  `mapstructure:"polly"`
	Google  GoogleConfig `mapstructure:"google"`
}

// PollyConfig holds Amazon Polly settings.
// Region and credentials otherwise come from the standard AWS chain.
type PollyConfig struct {
	Region       string `mapstructure:"region"`
	Voice        string `mapstructure:"voice"`         // Polly VoiceId, e.g. "Joanna"
	OutputFormat string `mapstructure:"output_format"` // "mp3"
	Engine       string `mapstructure:"engine"`        // "standard", "neural" or empty for the voice default
}

// GoogleConfig holds Google Cloud Text-to-Speech settings.
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	Language        string `mapstructure:"language"` // BCP-47, e.g. "en-US"
	Voice           string `mapstructure:"voice"`    // e.g. "en-US-Standard-C"
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, text
	File       string `mapstructure:"file"`        // optional rotating log file
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotation threshold for File
	MaxBackups int    `mapstructure:"max_backups"`
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./speechfn.yaml, ./configs/speechfn.yaml, /etc/speechfn/speechfn.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, os.Getenv(lambdaRuntimeEnv) != "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("speechfn")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/speechfn")
	}

	// Environment variables: SPEECHFN_TTS_POLLY_VOICE, SPEECHFN_LOGGING_LEVEL, etc.
	v.SetEnvPrefix("SPEECHFN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.TTS.Google.CredentialsFile = resolveEnvRef(cfg.TTS.Google.CredentialsFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, inLambda bool) {
	v.SetDefault("server.health_enabled", !inLambda)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.grpc_health_port", 0)
	v.SetDefault("transports.lambda.enabled", inLambda)
	v.SetDefault("transports.http.enabled", !inLambda)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("tts.backend", "polly")
	v.SetDefault("tts.polly.region", "")
	v.SetDefault("tts.polly.voice", "Joanna")
	v.SetDefault("tts.polly.output_format", "mp3")
	v.SetDefault("tts.polly.engine", "")
	v.SetDefault("tts.google.credentials_file", "")
	v.SetDefault("tts.google.language", "en-US")
	v.SetDefault("tts.google.voice", "en-US-Standard-C")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 64)
	v.SetDefault("logging.max_backups", 3)
}

// Validate checks values viper cannot constrain on its own.
func (c *Config) Validate() error {
	switch c.TTS.Backend {
	case "polly", "google":
	default:
		return fmt.Errorf("unknown tts backend %q", c.TTS.Backend)
	}
	if c.TTS.Polly.OutputFormat != "mp3" {
		// Responses are always labelled audio/mpeg.
		return fmt.Errorf("unsupported output format %q: only mp3 is served", c.TTS.Polly.OutputFormat)
	}
	if !c.Transports.Lambda.Enabled && !c.Transports.HTTP.Enabled {
		return fmt.Errorf("no transports enabled: enable lambda or http")
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}
