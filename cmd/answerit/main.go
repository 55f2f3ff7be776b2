// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/answerit"
	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/corpus/badger"
	"github.com/poiesic/answerit/match"
)

func main() {
	app := &cli.App{
		Name:  "answerit",
		Usage: "Canned-answer matching for support chat queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Resolve a query to an answer through the full pipeline",
				ArgsUsage: "<query>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to the corpus file (JSON or YAML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Conversation context attached to the query",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.BoolFlag{
						Name:  "no-ai",
						Usage: "Disable embedding and generation, lexical matching only",
					},
					&cli.BoolFlag{
						Name:  "quality",
						Usage: "Prefer answer quality over latency",
					},
					&cli.DurationFlag{
						Name:  "budget",
						Usage: "Latency budget for model tier selection",
					},
					&cli.BoolFlag{
						Name:  "generative",
						Usage: "Enable the generated-answer fallback",
					},
				},
			},
			{
				Name:      "classify",
				Usage:     "Run relevance classification without matching",
				ArgsUsage: "<query>",
				Action:    classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to the corpus file (JSON or YAML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Conversation context attached to the query",
					},
				},
			},
			{
				Name:   "warm",
				Usage:  "Pre-compute and persist category vectors for one tier",
				Action: warmCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "tier",
						Usage: "Model tier to warm (light, heavy)",
						Value: "light",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "light-model",
						Usage: "Embedding model for the light tier",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "heavy-model",
						Usage: "Embedding model for the heavy tier",
						Value: "mxbai-embed-large",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func askCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	opts := []answerit.Option{
		answerit.WithAIConfig(ai.NewConfig(ai.WithHost(c.String("host")))),
	}
	if c.Bool("no-ai") {
		opts = append(opts, answerit.WithoutAI())
	}
	if c.Bool("generative") {
		opts = append(opts, answerit.WithGenerativeFallback(true))
	}

	engine, err := answerit.New(corpus.NewFileStore(c.String("corpus")), opts...)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer engine.Close()

	var findOpts []match.FindOption
	if queryContext := c.String("context"); queryContext != "" {
		findOpts = append(findOpts, match.WithContext(queryContext))
	}
	if c.Bool("quality") {
		findOpts = append(findOpts, match.WithQualityPriority())
	}
	if budget := c.Duration("budget"); budget > 0 {
		findOpts = append(findOpts, match.WithLatencyBudget(budget))
	}

	started := time.Now()
	result := engine.FindAnswer(context.Background(), query, findOpts...)
	elapsed := time.Since(started)

	fmt.Println(result.Answer)
	fmt.Fprintf(os.Stderr, "\nsource=%s score=%.3f category=%s elapsed=%s\n",
		result.Source, result.Score, result.Category, elapsed)
	return nil
}

func classifyCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	// Classification is lexical; no provider needed.
	engine, err := answerit.New(corpus.NewFileStore(c.String("corpus")), answerit.WithoutAI())
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer engine.Close()

	result := engine.Classify(query, c.String("context"))

	fmt.Printf("relevant:   %t\n", result.IsRelevant)
	fmt.Printf("confidence: %.3f\n", result.Confidence)
	fmt.Printf("level:      %s\n", result.Level)
	fmt.Printf("method:     %s\n", result.Method)
	if len(result.Categories) > 0 {
		fmt.Printf("categories: %s\n", strings.Join(result.Categories, ", "))
	}
	if result.Redirect != "" {
		fmt.Printf("redirect:   %s\n", result.Redirect)
	}
	return nil
}

func warmCommand(c *cli.Context) error {
	tier := ai.ModelTier(strings.ToLower(c.String("tier")))
	if !tier.Valid() {
		return fmt.Errorf("invalid tier %q: must be one of light, heavy", c.String("tier"))
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	store, err := badger.NewStore(backend)
	if err != nil {
		return fmt.Errorf("failed to create corpus store: %w", err)
	}
	vectors, err := badger.NewVectorRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create vector repository: %w", err)
	}

	cfg := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithLightEmbeddingModel(c.String("light-model")),
		ai.WithHeavyEmbeddingModel(c.String("heavy-model")),
	)

	engine, err := answerit.New(store,
		answerit.WithAIConfig(cfg),
		answerit.WithVectorRepository(vectors))
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer engine.Close()

	started := time.Now()
	if err := engine.WarmUp(context.Background(), tier); err != nil {
		return fmt.Errorf("warmup failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "warmed %d categories for tier %s in %s\n",
		engine.Corpus().Len(), tier, time.Since(started))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
