// Package config loads process configuration from the environment once at
// startup. The rest of the program receives values from here and never reads
// env state directly.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DefaultModel  string
	OllamaBaseURL string
	GroqAPIKey    string
	GeminiAPIKey  string
	Sandbox       SandboxConfig
}

type SandboxConfig struct {
	Interpreter string
	Timeout     time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	switch {
	case port == "":
		port = ":8080"
	case !strings.HasPrefix(port, ":"):
		port = ":" + port
	}

	return &Config{
		Port:          port,
		DefaultModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("TORCHLINT_MODEL")), "ollama:deepseek-coder"),
		OllamaBaseURL: firstNonEmpty(strings.TrimSpace(os.Getenv("OLLAMA_BASE_URL")), "http://localhost:11434"),
		GroqAPIKey:    strings.TrimSpace(os.Getenv("GROQ_API_KEY")),
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Sandbox:       loadSandboxConfig(),
	}
}

func loadSandboxConfig() SandboxConfig {
	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SANDBOX_TIMEOUT_SECONDS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return SandboxConfig{
		Interpreter: firstNonEmpty(strings.TrimSpace(os.Getenv("SANDBOX_PYTHON")), "python3"),
		Timeout:     timeout,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
