package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	AppEnv            string
	DatabaseURL       string
	JWTSecret         string
	RazorpayKeyID     string
	RazorpayKeySecret string
	ImageKitKey       string
	ImageKitUploadURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getenv("PORT", "5000"),
		AppEnv:            os.Getenv("APP_ENV"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		ImageKitKey:       os.Getenv("IMAGEKIT_PRIVATE_KEY"),
		ImageKitUploadURL: getenv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
	}

	if cfg.DatabaseURL == "" || cfg.JWTSecret == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
