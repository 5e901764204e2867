package main

import (
	"flag"
	"log"
	"net/http"
	"strings"

	"torchlint/internal/config"
	"torchlint/internal/llm"
	"torchlint/internal/server"
)

func main() {
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg := config.Load()
	if p := strings.TrimSpace(*port); p != "" {
		if !strings.HasPrefix(p, ":") {
			p = ":" + p
		}
		cfg.Port = p
	}

	registry, err := llm.NewDefaultRegistry(cfg.DefaultModel, cfg.OllamaBaseURL, cfg.GroqAPIKey, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("llm registry: %v", err)
	}
	defer registry.Close()

	handler := server.New(server.NewChatHandler(registry))
	log.Printf("torchlintd listening on %s (default model %s)", cfg.Port, cfg.DefaultModel)
	if err := http.ListenAndServe(cfg.Port, handler); err != nil {
		log.Fatal(err)
	}
}
