package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath     string
	JWTPublicKeyPath      string
	AccessTokenExpiryMin  int
	RefreshTokenExpiryDays int

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion      string
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Accounts      string
	Verifications string
	Budgets       string
	Categories    string
	Expenses      string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Accounts:      getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
			Budgets:       getEnv("DYNAMO_TABLE_BUDGETS", "budgets"),
			Categories:    getEnv("DYNAMO_TABLE_CATEGORIES", "categories"),
			Expenses:      getEnv("DYNAMO_TABLE_EXPENSES", "expenses"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "expense-tracker-receipts"),

		JWTPrivateKeyPath:      getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:       getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		AccessTokenExpiryMin:   getEnvInt("ACCESS_TOKEN_EXPIRY_MIN", 15),
		RefreshTokenExpiryDays: getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
