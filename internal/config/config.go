package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AWS struct {
	Region        string
	Table         string
	UsernameIndex string
	FlaggedIndex  string
	Endpoint      string // optional, for dynamodb-local
}

type Spotify struct {
	ClientID     string
	ClientSecret string
	AccountsURL  string
	APIURL       string
	PageBaseURL  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Config struct {
	ServerPort    int
	AWS           AWS
	Spotify       Spotify
	MinIO         MinIO
	JWTSecretKey  string
	TokenDuration time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadAWS() AWS {
	return AWS{
		Region:        getEnv("AWS_REGION", "us-east-2"),
		Table:         getEnv("DYNAMO_TABLE", "Songboard"),
		UsernameIndex: getEnv("DYNAMO_USERNAME_INDEX", "class-username-index"),
		FlaggedIndex:  getEnv("DYNAMO_FLAGGED_INDEX", "class-isFlagged-index"),
		Endpoint:      getEnv("DYNAMO_ENDPOINT", ""),
	}
}

func LoadSpotify() Spotify {
	return Spotify{
		ClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		ClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		AccountsURL:  getEnv("SPOTIFY_ACCOUNTS_URL", "https://accounts.spotify.com"),
		APIURL:       getEnv("SPOTIFY_API_URL", "https://api.spotify.com"),
		PageBaseURL:  getEnv("SONGS_PAGE_BASE_URL", "http://localhost:8080/songs"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "profile-images"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		AWS:           LoadAWS(),
		Spotify:       LoadSpotify(),
		MinIO:         LoadMinIO(),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		TokenDuration: parseDuration(getEnv("TOKEN_DURATION", "24h"), 24*time.Hour),
	}
}
