package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string   `mapstructure:"PORT"`
	DatabasePath                  string   `mapstructure:"DATABASE_PATH"`
	PublicURL                     string   `mapstructure:"PUBLIC_URL"`
	EventName                     string   `mapstructure:"EVENT_NAME"`
	JWTSecret                     string   `mapstructure:"JWT_SECRET"`
	GoogleClientID                string   `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret            string   `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL             string   `mapstructure:"GOOGLE_REDIRECT_URL"`
	HostEmails                    []string `mapstructure:"HOST_EMAILS"`
	SeedHostEmail                 string   `mapstructure:"SEED_HOST_EMAIL"`
	SeedHostPassword              string   `mapstructure:"SEED_HOST_PASSWORD"`
	SMTPHost                      string   `mapstructure:"SMTP_HOST"`
	SMTPPort                      int      `mapstructure:"SMTP_PORT"`
	SMTPUsername                  string   `mapstructure:"SMTP_USERNAME"`
	SMTPPassword                  string   `mapstructure:"SMTP_PASSWORD"`
	EmailFrom                     string   `mapstructure:"EMAIL_FROM"`
	DiscordBotToken               string   `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string   `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "wedding.db")
	viper.SetDefault("PUBLIC_URL", "http://127.0.0.1:8080")
	viper.SetDefault("EVENT_NAME", "Nuestra Boda")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "http://127.0.0.1:8080/auth/google/callback")
	viper.SetDefault("SMTP_PORT", 587)

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("GOOGLE_CLIENT_ID")
	viper.BindEnv("GOOGLE_CLIENT_SECRET")
	viper.BindEnv("GOOGLE_REDIRECT_URL")
	viper.BindEnv("HOST_EMAILS")
	viper.BindEnv("SEED_HOST_EMAIL")
	viper.BindEnv("SEED_HOST_PASSWORD")
	viper.BindEnv("SMTP_HOST")
	viper.BindEnv("SMTP_USERNAME")
	viper.BindEnv("SMTP_PASSWORD")
	viper.BindEnv("EMAIL_FROM")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
