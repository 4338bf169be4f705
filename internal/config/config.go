// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL         string `mapstructure:"url"`
		AutoMigrate bool   `mapstructure:"auto_migrate"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Telegram struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"telegram"`
	RateLimit struct {
		// Messages 件 / Window あたりを超える投稿を抑制する。0 なら無効
		Messages int           `mapstructure:"messages"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rate_limit"`
	Spam struct {
		// フィンガープリントのソルトを入れ替える間隔
		TokenLifetime time.Duration `mapstructure:"token_lifetime"`
	} `mapstructure:"spam"`
	// モデレーター許可リスト (TelegramユーザーID)
	Moderators []int64 `mapstructure:"moderators"`
	Log        struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var Cfg Config

// IsModerator は許可リストに基づいてモデレーター判定を行います
func (c *Config) IsModerator(userID int64) bool {
	return slices.Contains(c.Moderators, userID)
}

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_TELEGRAM_TOKEN)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("telegram.token", "TELEGRAM_TOKEN")
	viper.BindEnv("database.url", "DATABASE_URL")

	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("rate_limit.messages", DefaultRateLimitMessages)
	viper.SetDefault("rate_limit.window", DefaultRateLimitWindow)
	viper.SetDefault("spam.token_lifetime", DefaultTokenLifetime)
	viper.SetDefault("database.auto_migrate", true)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if Cfg.Telegram.Token == "" {
		return fmt.Errorf("config: telegram.token is required (TELEGRAM_TOKEN)")
	}
	if Cfg.Database.URL == "" {
		return fmt.Errorf("config: database.url is required (DATABASE_URL)")
	}
	if Cfg.RateLimit.Messages < 0 {
		return fmt.Errorf("config: rate_limit.messages must not be negative")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Rate Limit: %d messages / %s", Cfg.RateLimit.Messages, Cfg.RateLimit.Window)
	log.Printf("Spam Token Lifetime: %s", Cfg.Spam.TokenLifetime)
	log.Printf("Moderators: %d", len(Cfg.Moderators))

	return nil
}
