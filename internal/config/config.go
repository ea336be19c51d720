// Package config provides configuration helpers for voicekit commands.
package config

import (
	"os"
)

// Defaults for the bridge daemon.
const (
	DefaultPort      = "8090"
	DefaultRedisAddr = "localhost:6379"
)

// Port returns the HTTP port from PORT env var or the default.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// RedisAddr returns the Redis address from REDIS_ADDR env var or the default.
// An empty REDIS_ADDR with VOICEKIT_NO_REDIS=1 disables the Redis session store.
func RedisAddr() string {
	if a := os.Getenv("REDIS_ADDR"); a != "" {
		return a
	}
	return DefaultRedisAddr
}

// RedisPassword returns the Redis password from REDIS_PASSWORD env var.
func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}

// GeminiAPIKey returns the Gemini API key from GEMINI_API_KEY env var.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// OpenAIAPIKey returns the OpenAI API key from OPENAI_API_KEY env var.
func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LogLevel returns the log level from LOG_LEVEL env var or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}
