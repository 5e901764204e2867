package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"torchlint/internal/analyzer"
	"torchlint/internal/chat"
	"torchlint/internal/config"
	"torchlint/internal/llm"
	"torchlint/internal/sandbox"
	"torchlint/internal/workspace"
)

func main() {
	chatPrompt := flag.String("chat", "", "send a chat request about the given files instead of analyzing")
	model := flag.String("model", "", "model selector, e.g. ollama:deepseek-coder or gemini:gemini-2.0-flash")
	apply := flag.Bool("apply", false, "write suggested file changes back to disk")
	verify := flag.Bool("verify", false, "execute the file and compare stdout against -expect")
	expect := flag.String("expect", "", "expected stdout for -verify")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: torchlint [-chat prompt] [-model selector] [-apply] [-verify -expect out] <file.py> [file.py ...]")
		os.Exit(2)
	}

	cfg := config.Load()

	switch {
	case *chatPrompt != "":
		runChat(cfg, *chatPrompt, *model, flag.Args(), *apply)
	case *verify:
		runVerify(cfg, flag.Arg(0), *expect)
	default:
		runAnalyze(flag.Arg(0))
	}
}

func runAnalyze(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	issues, err := analyzer.Analyze(source)
	if err != nil {
		if errors.Is(err, analyzer.ErrSyntax) {
			log.Fatalf("cannot analyze %s: %v", path, err)
		}
		log.Fatal(err)
	}
	fmt.Println(analyzer.Format(issues))
}

func runChat(cfg *config.Config, prompt, model string, paths []string, apply bool) {
	registry, err := llm.NewDefaultRegistry(cfg.DefaultModel, cfg.OllamaBaseURL, cfg.GroqAPIKey, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("llm registry: %v", err)
	}
	defer registry.Close()

	ws, err := workspace.New(".")
	if err != nil {
		log.Fatalf("workspace: %v", err)
	}
	files := make([]chat.FileContext, 0, len(paths))
	for _, p := range paths {
		fc, err := ws.ReadContext(p)
		if err != nil {
			log.Fatalf("read %s: %v", p, err)
		}
		files = append(files, fc)
	}

	ctx := context.Background()
	var env chat.Envelope
	cli, err := registry.Resolve(ctx, model)
	if err != nil {
		env = chat.Envelope{Type: chat.TypeError, Content: "model backend unavailable: " + err.Error()}
	} else {
		env = chat.BuildEnvelope(ctx, prompt, files, cli.Generate)
	}

	out, _ := json.MarshalIndent(env, "", "  ")
	fmt.Println(string(out))

	if apply && env.Type == chat.TypeMultiFileChange {
		n, err := ws.Apply(env.Changes)
		if err != nil {
			log.Fatalf("applied %d of %d changes: %v", n, len(env.Changes), err)
		}
		log.Printf("applied %d file change(s)", n)
	}
}

func runVerify(cfg *config.Config, path, expect string) {
	code, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	runner := sandbox.New(cfg.Sandbox.Interpreter, cfg.Sandbox.Timeout)
	fmt.Println(runner.Run(context.Background(), string(code), expect))
}
