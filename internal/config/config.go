package config

import (
	"crypto/rsa"
	"log"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTPublicKey   *rsa.PublicKey
	DatabaseURL    string
	Port           string
	RedisAddress   string
	RedisPassword  string
	AllowedOrigins []string
	EventType      string
}

func Load() *Config {
	// .env is a local development convenience; deployed environments
	// inject variables directly.
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, reading environment directly")
	}

	publicKeyPath := os.Getenv("PUBLIC_KEY_PATH")
	if publicKeyPath == "" {
		publicKeyPath = "/etc/certs/public.pem"
	}
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisAddress := os.Getenv("REDIS_ADDRESS")
	if redisAddress == "" {
		redisAddress = "localhost:6379"
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	eventType := os.Getenv("ADMISSION_EVENT_TYPE")
	if eventType == "" {
		eventType = "tenant.admitted"
	}

	return &Config{
		JWTPublicKey:   publicKey,
		DatabaseURL:    dbURL,
		Port:           port,
		RedisAddress:   redisAddress,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: origins,
		EventType:      eventType,
	}
}

// Token issuance lives in the dormhub identity service; this service only
// verifies, so it needs the public half of the key pair.
func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyData)
	if err != nil {
		return nil, err
	}
	return publicKey, nil
}
