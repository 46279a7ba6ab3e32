package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port int
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret string
		TokenTTL  time.Duration
	}
	Scheduler struct {
		Enabled    bool
		JobTimeout time.Duration
		LogPath    string
	}
	Notify struct {
		Slack struct {
			Token   string
			Channel string
		}
		Email struct {
			SMTPHost    string
			SMTPPort    int
			From        string
			Password    string
			ToReceivers []string
		}
	}
}

// LoadConfig loads the configuration from config.yaml
func LoadConfig() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.path", "data/salespoint.db")
	viper.SetDefault("auth.jwtsecret", "change-me-in-production")
	viper.SetDefault("auth.tokenttl", 24*time.Hour)
	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.jobtimeout", 2*time.Minute)
	viper.SetDefault("scheduler.logpath", "logs/scheduler.log")

	// The scheduler gate is commonly flipped per environment without
	// editing the config file.
	viper.BindEnv("scheduler.enabled", "ENABLE_SCHEDULER")
	viper.BindEnv("auth.jwtsecret", "JWT_SECRET")

	var config Config

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, write one with the defaults
			if err := os.MkdirAll("data", 0755); err != nil {
				fmt.Printf("Warning: Failed to create data directory: %v\n", err)
			}
			if err := viper.SafeWriteConfig(); err != nil {
				fmt.Printf("Warning: Failed to write default config: %v\n", err)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Printf("Error unmarshaling config: %v\n", err)
	}

	// Env overrides arrive as strings; coerce the gate explicitly.
	config.Scheduler.Enabled = viper.GetBool("scheduler.enabled")

	return &config
}
