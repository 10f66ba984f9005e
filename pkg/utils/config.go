package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
	Auction  AuctionSettings
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type BookingConfig struct {
	// GraceMinutes is how long a pending booking still counts as live for
	// display reads, and how long the sweeper leaves it alone.
	GraceMinutes         int
	SweepIntervalSeconds int
	ConfirmMaxAttempts   int
}

type AuctionSettings struct {
	// DropIntervalHours is the fallback when the stored auction config
	// carries no interval.
	DropIntervalHours int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_GRACE_MINUTES", 5)
	viper.SetDefault("SWEEP_INTERVAL_SECONDS", 60)
	viper.SetDefault("CONFIRM_MAX_ATTEMPTS", 3)
	viper.SetDefault("AUCTION_DROP_INTERVAL_HOURS", 1)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			GraceMinutes:         viper.GetInt("BOOKING_GRACE_MINUTES"),
			SweepIntervalSeconds: viper.GetInt("SWEEP_INTERVAL_SECONDS"),
			ConfirmMaxAttempts:   viper.GetInt("CONFIRM_MAX_ATTEMPTS"),
		},
		Auction: AuctionSettings{
			DropIntervalHours: viper.GetInt("AUCTION_DROP_INTERVAL_HOURS"),
		},
	}

	return config, nil
}
