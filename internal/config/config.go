package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBPort             string
	AppPort            string
	AppEnv             string
	JWTSecret          string
	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string
	CloudinaryURL      string
	ClientURL          string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBPort:             os.Getenv("DB_PORT"),
		AppPort:            os.Getenv("APP_PORT"),
		AppEnv:             os.Getenv("APP_ENV"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		PayPalBaseURL:      os.Getenv("PAYPAL_API_URL"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		CloudinaryURL:      os.Getenv("CLOUDINARY_URL"),
		ClientURL:          os.Getenv("CLIENT_URL"),
	}

	if cfg.PayPalBaseURL == "" {
		cfg.PayPalBaseURL = "https://api-m.sandbox.paypal.com"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "5000"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
