package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort          = "8080"
	defaultOrderEventsTopic = "order.events"
	defaultWhatsAppNumber   = "+6285820247769"
	defaultCORSOrigin       = "http://localhost:3000"
	defaultStoreName        = "KEBAB SAYANK"
	defaultStoreAddress     = "Jl. Karang Menjangan No.75, Airlangga, Kec. Gubeng, Surabaya, Jawa Timur 60286"
	defaultStorePhone       = "0858-2024-7769"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	JWTSecret         string
	InternalSecretKey string

	RedisAddr        string
	KafkaBrokers     []string
	OrderEventsTopic string

	WhatsAppNumber string
	CORSOrigin     string

	StoreName    string
	StoreAddress string
	StorePhone   string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    getEnv("APP_PORT", defaultAppPort),
		AppEnv:     os.Getenv("APP_ENV"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),

		RedisAddr:        os.Getenv("REDIS_ADDR"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", defaultOrderEventsTopic),

		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", defaultWhatsAppNumber),
		CORSOrigin:     getEnv("CORS_ORIGIN", defaultCORSOrigin),

		StoreName:    getEnv("STORE_NAME", defaultStoreName),
		StoreAddress: getEnv("STORE_ADDRESS", defaultStoreAddress),
		StorePhone:   getEnv("STORE_PHONE", defaultStorePhone),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma separated value, dropping empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
