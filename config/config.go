package config

import (
	"os"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	OpenAI     OpenAIConfig
	Firebase   FirebaseConfig
	Cloudinary CloudinaryConfig
	Xendit     XenditConfig
	Premium    PremiumConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type OpenAIConfig struct {
	APIKey         string
	ChatModel      string
	WhisperModel   string
	RequestTimeout time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type XenditConfig struct {
	BaseURL       string
	SecretKey     string
	CallbackToken string
	SuccessURL    string
}

// PremiumConfig prices the subscription invoice created via the gateway.
type PremiumConfig struct {
	PriceCents int64
	Duration   time.Duration
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout: 10 * time.Second,
			// Chat endpoints wait on the language model, so the write
			// timeout must outlive OpenAI.RequestTimeout.
			WriteTimeout: 90 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DB_DSN", "duit:duit@tcp(localhost:3306)/duit?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "duit",
		},
		OAuth: OAuthConfig{
			GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  getenv("GOOGLE_REDIRECT_URL", "http://localhost:8080/api/v1/auth/google/callback"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         os.Getenv("OPENAI_API_KEY"),
			ChatModel:      getenv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			WhisperModel:   getenv("OPENAI_WHISPER_MODEL", "whisper-1"),
			RequestTimeout: 60 * time.Second,
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		},
		Xendit: XenditConfig{
			BaseURL:       getenv("XENDIT_BASE_URL", "https://api.xendit.co"),
			SecretKey:     os.Getenv("XENDIT_SECRET_KEY"),
			CallbackToken: os.Getenv("XENDIT_CALLBACK_TOKEN"),
			SuccessURL:    getenv("XENDIT_SUCCESS_URL", "http://localhost:8080/payment/success"),
		},
		Premium: PremiumConfig{
			PriceCents: 1000000, // IDR 10,000.00
			Duration:   30 * 24 * time.Hour,
		},
	}
}
