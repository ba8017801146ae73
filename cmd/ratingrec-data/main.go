// Ratingrec - Collaborative Filtering Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingrec

// Command ratingrec-data works with ratingrec datasets offline.
//
//	ratingrec-data generate --users 200 --items 40 --out dataset.json
//	ratingrec-data recommend --dataset dataset.json 1=5 4=2 7=0
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ratingrec/internal/dataset"
	"github.com/tomtom215/ratingrec/internal/dataset/synthetic"
	"github.com/tomtom215/ratingrec/internal/logging"
	"github.com/tomtom215/ratingrec/internal/recommend"
)

var rootCommand = &cobra.Command{
	Use:   "ratingrec-data",
	Short: "Generate datasets and run one-off recommendations.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cfg := logging.DefaultConfig()
		cfg.Format = "console"
		cfg.Output = os.Stderr
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Level = "debug"
		}
		logging.Init(cfg)
	},
}

var generateCommand = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic dataset as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, _ := cmd.Flags().GetInt("users")
		items, _ := cmd.Flags().GetInt("items")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		catalog, corpus, err := synthetic.Generate(synthetic.Config{Users: users, Items: items, Seed: seed})
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(out, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeFn()

		if err := dataset.Write(w, catalog, corpus); err != nil {
			return fmt.Errorf("write dataset: %w", err)
		}
		logging.Info().Int("items", len(catalog)).Int("users", len(corpus)).Str("out", out).Msg("dataset written")
		return nil
	},
}

var recommendCommand = &cobra.Command{
	Use:   "recommend [item_id=score ...]",
	Short: "Print recommendations for the given ratings",
	Long:  "Each argument is item_id=score. A score of 0 means no selection and is ignored.",
	RunE: func(cmd *cobra.Command, args []string) error {
		selections, err := parseSelections(args)
		if err != nil {
			return err
		}
		ratings, err := recommend.FromSelections(selections)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("dataset")
		loader := dataset.Config{Source: dataset.SourceFile, Path: path}
		if path == "" {
			def := synthetic.DefaultConfig()
			loader = dataset.Config{Source: dataset.SourceSynthetic, Users: def.Users, Items: def.Items, Seed: def.Seed}
		}

		ctx := cmd.Context()
		store, err := dataset.Load(ctx, loader)
		if err != nil {
			return err
		}

		cfg := recommend.DefaultConfig()
		cfg.Neighbors, _ = cmd.Flags().GetInt("neighbors")
		cfg.Limit, _ = cmd.Flags().GetInt("limit")
		policy, _ := cmd.Flags().GetString("policy")
		cfg.Policy = recommend.AggregationPolicy(strings.ToLower(policy))

		engine, err := recommend.NewEngine(store, cfg, logging.Logger())
		if err != nil {
			return err
		}

		var result interface{}
		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			result, err = engine.Explain(ctx, ratings)
		} else {
			result, err = engine.Recommend(ctx, ratings)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// parseSelections turns "id=score" arguments into a selection map.
func parseSelections(args []string) (map[int]int, error) {
	out := make(map[int]int, len(args))
	for _, arg := range args {
		idStr, scoreStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("rating %q: want item_id=score", arg)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idStr))
		if err != nil {
			return nil, fmt.Errorf("rating %q: item id: %w", arg, err)
		}
		score, err := strconv.Atoi(strings.TrimSpace(scoreStr))
		if err != nil {
			return nil, fmt.Errorf("rating %q: score: %w", arg, err)
		}
		out[id] = score
	}
	return out, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			logging.Error().Err(err).Str("path", path).Msg("close output")
		}
	}, nil
}

func init() {
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log level")

	def := synthetic.DefaultConfig()
	generateCommand.Flags().Int("users", def.Users, "number of synthetic users")
	generateCommand.Flags().Int("items", def.Items, "catalog size")
	generateCommand.Flags().Int64("seed", def.Seed, "random seed")
	generateCommand.Flags().StringP("out", "o", "", "output file (default stdout)")

	engine := recommend.DefaultConfig()
	recommendCommand.Flags().StringP("dataset", "d", "", "dataset JSON file (default synthetic demo data)")
	recommendCommand.Flags().Int("neighbors", engine.Neighbors, "number of neighbors (K)")
	recommendCommand.Flags().Int("limit", engine.Limit, "number of recommendations (N)")
	recommendCommand.Flags().String("policy", string(engine.Policy), "aggregation policy: weighted or sum")
	recommendCommand.Flags().Bool("explain", false, "include the contributing neighbors")

	rootCommand.AddCommand(generateCommand, recommendCommand)
}

func main() {
	if err := rootCommand.ExecuteContext(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("failed to execute")
	}
}
