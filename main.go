package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"social_post_generator/config"
	"social_post_generator/generator"
	"social_post_generator/server"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config.yaml")
	addr := flag.String("addr", "", "http listen address (overrides PORT)")
	mock := flag.Bool("mock", false, "use the offline mock model instead of OpenAI")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	if *verbose {
		setupLogger(slog.LevelDebug)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mock {
		cfg.Mock = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	agent, err := buildAgent(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	srv, err := server.New(agent)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := *addr
	if listen == "" {
		listen = ":" + cfg.Port
	}
	slog.Info("starting web server",
		"addr", listen,
		"environment", cfg.Environment,
		"model", cfg.LLM.Model,
		"mock", cfg.Mock,
		"research", cfg.LLM.ResearchEnabled && !cfg.Mock,
	)
	if err := srv.Routes().Start(listen); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// buildAgent creates the single OpenAI client shared by generation and research.
func buildAgent(cfg config.Config) (*generator.Agent, error) {
	if cfg.Mock {
		gen, err := generator.NewGenerator(generator.MockLLM{})
		if err != nil {
			return nil, err
		}
		return generator.NewAgent(gen, nil)
	}

	settings := &generator.LLMSettings{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		ResearchModel:  cfg.LLM.ResearchModel,
		Temperature:    cfg.LLM.Temperature,
		MaxTokens:      cfg.LLM.MaxTokens,
		RequestTimeout: cfg.LLM.Timeout,
		MaxRetries:     cfg.LLM.MaxRetries,
	}
	client, err := generator.NewOpenAIClient(settings)
	if err != nil {
		return nil, err
	}
	llm, err := generator.NewOpenAILLM(client, settings)
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewGenerator(llm)
	if err != nil {
		return nil, err
	}

	var researcher *generator.Researcher
	if cfg.LLM.ResearchEnabled {
		searcher, err := generator.NewOpenAISearcher(client, settings)
		if err != nil {
			return nil, err
		}
		researcher = generator.NewResearcher(searcher)
	}
	return generator.NewAgent(gen, researcher)
}
