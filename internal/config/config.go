// Package config carrega a configuração do serviço a partir do ambiente.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config parâmetros do servidor HTTP, do cliente do backend e da telemetria
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// API de entidades do backend; BackendBaseURL vazio seleciona o
	// armazenamento em memória.
	BackendBaseURL string
	BackendAppID   string
	BackendAPIKey  string

	ServiceName   string
	OTLPEndpoint  string
	TracingEnable bool

	// Credenciais de bootstrap da primeira conta admin.
	AdminUsername string
	AdminPassword string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(n) * time.Second
}

// Load lê a configuração do ambiente aplicando os padrões.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":9091"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
		BackendBaseURL:  getenv("BACKEND_BASE_URL", ""),
		BackendAppID:    getenv("BACKEND_APP_ID", ""),
		BackendAPIKey:   getenv("BACKEND_API_KEY", ""),
		ServiceName:     getenv("SERVICE_NAME", "novoteste"),
		OTLPEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		TracingEnable:   boolenv("TRACING_ENABLED", false),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getenv("ADMIN_PASSWORD", ""),
	}
}
