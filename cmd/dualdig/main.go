// Package main is the entry point for DualDig.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/dualdig/internal/game"
	"github.com/samdwyer/dualdig/internal/mapgen"
	"github.com/samdwyer/dualdig/internal/telemetry"
)

var cfg game.Config

var rootCmd = &cobra.Command{
	Use:   "dualdig",
	Short: "Dig through a procedurally generated arena",
	Long: `DualDig generates a bounded arena with a safe home base and lets you dig
through it in the terminal. Terrain is drawn with dual-grid autotiling.`,
	RunE: run,
}

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	bindFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bindFlags registers flags, taking defaults from DUALDIG_* env vars.
func bindFlags(cmd *cobra.Command) {
	seed, err := strconv.ParseInt(envOr("DUALDIG_SEED", "0"), 10, 64)
	if err != nil {
		log.Printf("Warning: ignoring DUALDIG_SEED: %v", err)
		seed = 0
	}

	flags := cmd.Flags()
	flags.Int64Var(&cfg.Seed, "seed", seed, "random seed (0 = time based)")
	flags.StringVar(&cfg.Strategy, "strategy", envOr("DUALDIG_STRATEGY", mapgen.DefaultStrategy.String()),
		"map strategy: belljar, simplebox, openfield, maze, cavern")
	flags.BoolVar(&cfg.Strict, "strict", os.Getenv("DUALDIG_STRICT") == "true", "link every pocket to the spawn")
	flags.IntVar(&cfg.Width, "width", mapgen.DefaultWidth, "arena width")
	flags.IntVar(&cfg.Height, "height", mapgen.DefaultHeight, "arena height")
}

func run(cmd *cobra.Command, args []string) error {
	if _, err := mapgen.ParseStrategy(cfg.Strategy); err != nil {
		log.Printf("Warning: %v, using %s", err, mapgen.DefaultStrategy)
	}

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Game will run without observability")
		telemetry.Disable()
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	g, err := game.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	return g.Run(ctx)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DUALDIG_API_KEY")
	if apiKey == "" {
		return
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	dataset := os.Getenv("HONEYCOMB_DUALDIG_DATASET")
	if dataset == "" {
		dataset = "dualdig"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
