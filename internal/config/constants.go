// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "lessons-bot"
	AppVersion = "1.2.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultRateLimitMessages = 5
	DefaultRateLimitWindow   = "10m"
	DefaultTokenLifetime     = "24h"
)
