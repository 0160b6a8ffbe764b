package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Database
	DBUrl string

	// Auth: verification only, the issuer holds the private key.
	RSAPublicKey *rsa.PublicKey

	// Ticket intake
	RecaptchaSecretKey string

	SeedDemoData bool
}

const AppName = "jj-apartments-backend"

// LoadConfig reads the environment (plus a local .env when present) and
// fails fast on anything required.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; relying on process environment")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		utils.Logger.WithError(err).Fatal("RSA_PUBLIC_KEY_BASE64 is not valid base64")
	}
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	recaptchaSecret := os.Getenv("RECAPTCHA_SECRET_KEY")
	if recaptchaSecret == "" {
		utils.Logger.Fatal("RECAPTCHA_SECRET_KEY env var is missing")
	}

	return &Config{
		AppName:            AppName,
		AppPort:            appPort,
		AppUrl:             appUrl,
		DBUrl:              dbURL,
		RSAPublicKey:       pubKey,
		RecaptchaSecretKey: recaptchaSecret,
		SeedDemoData:       os.Getenv("SEED_DEMO_DATA") == "true",
	}
}
