package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Admin    AdminConfig
	Telegram TelegramConfig
	Order    OrderConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type ServerConfig struct {
	Addr        string
	SessionFile string // persisted session cache, survives restarts
}

type AdminConfig struct {
	Password string // shared static passphrase, classroom-grade only
	Name     string // display name shown to students
}

type TelegramConfig struct {
	Token       string // empty disables the notifier
	AdminChatID int64
}

type OrderConfig struct {
	MaxPrice int64 // default budget cap per student
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	maxPrice, _ := strconv.ParseInt(getEnv("MAX_PRICE", "170"), 10, 64)
	chatID, _ := strconv.ParseInt(getEnv("ADMIN_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "classorder"),
		},
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":8080"),
			SessionFile: getEnv("SESSION_FILE", "sessions.json"),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", "admin"),
			Name:     getEnv("ADMIN_NAME", "小老師"),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TOKEN", ""),
			AdminChatID: chatID,
		},
		Order: OrderConfig{
			MaxPrice: maxPrice,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
