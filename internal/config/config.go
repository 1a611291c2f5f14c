package config

import "os"

// Config holds all runtime configuration for the scoring service
type Config struct {
	MongoURI string
	MongoDB  string

	RedisAddr string

	Port string

	// Paths to the trained model artifacts
	ModelPath    string
	EncodersPath string

	// Staff dashboard credentials
	StaffUsername string
	StaffPassword string
	JWTSecret     string
}

// Load reads configuration from the environment with local-dev defaults
func Load() *Config {
	return &Config{
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnvOrDefault("MONGO_DB", "futured"),
		RedisAddr:     getEnvOrDefault("REDIS_URI", "localhost:6379"),
		Port:          getEnvOrDefault("PORT", "8080"),
		ModelPath:     getEnvOrDefault("MODEL_PATH", "modelo_entrenado/modelo.json"),
		EncodersPath:  getEnvOrDefault("ENCODERS_PATH", "modelo_entrenado/label_encoders.json"),
		StaffUsername: getEnvOrDefault("STAFF_USERNAME", "admin"),
		StaffPassword: getEnvOrDefault("STAFF_PASSWORD", "password123"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "super-secret-key-change-in-production"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
