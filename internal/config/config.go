package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Tokens / issuer
	Issuer         string
	TokenTTL       time.Duration
	PrivateKeyPath string
	PublicKeyPath  string
	SigningKeyID   string

	// OTP
	OtpTTL      time.Duration
	OtpStore    string // "memory" or "postgres"
	DatabaseURL string
	ExposeOtp   bool // dev only: echo the code in the OTP response

	// Downstream services
	UserDirectoryURL string
	KafkaBrokers     []string
	KafkaTopic       string

	// HTTP
	Addr string
}

func Load() Config {
	cfg := Config{
		Issuer:         getenv("ISSUER", "http://localhost:8085"),
		TokenTTL:       getdur("TOKEN_TTL", 15*time.Minute),
		PrivateKeyPath: must("PRIVATE_KEY_PATH"),
		PublicKeyPath:  must("PUBLIC_KEY_PATH"),
		SigningKeyID:   getenv("SIGNING_KEY_ID", "kid-1"),

		OtpTTL:    getdur("OTP_TTL", 10*time.Minute),
		OtpStore:  getenv("OTP_STORE", "memory"),
		ExposeOtp: getbool("EXPOSE_OTP", false),

		UserDirectoryURL: must("USER_DIRECTORY_URL"),
		KafkaTopic:       getenv("KAFKA_TOPIC", "notifications"),

		Addr: getenv("ADDR", ":8085"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if cfg.OtpStore == "postgres" {
		cfg.DatabaseURL = must("DATABASE_URL")
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("missing required env", "key", k)
		os.Exit(1)
	}
	return v
}
