package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/config"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/dataset"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/debug"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/evaluation"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/export"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/matching"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/normalize"
	"github.com/FabianFrckmnn/string-similarity-algorithms/internal/web"
)

var configPath string

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("loading .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "matcher",
		Short: "Approximate record linkage over text attributes",
		Long:  `Matches query records against a reference corpus under six interchangeable string-similarity algorithms and evaluates classification quality against human-validated ground truth.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "matching.toml", "path to the TOML configuration file")

	rootCmd.AddCommand(createMatchCmd())
	rootCmd.AddCommand(createEvaluateCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createPingCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// createMatchCmd creates the matching subcommand.
func createMatchCmd() *cobra.Command {
	var (
		algorithmName string
		fileName      string
		columns       []string
		useSample     bool
	)

	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Run similarity matching over the configured units of work",
		Long:  `Loads the reference corpus and query files, runs the selected algorithm(s) per configured (file, column) unit and exports each result table for validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			units := cfg.Match
			if fileName != "" {
				units = []config.Unit{{File: fileName, Columns: columns}}
			}
			if useSample && len(units) == 0 {
				units = []config.Unit{{File: "sample", Columns: []string{"STREET"}}}
			}
			if len(units) == 0 {
				return fmt.Errorf("no units of work: configure [[match]] entries or pass --file/--columns")
			}

			algorithms, err := selectAlgorithms(algorithmName)
			if err != nil {
				return err
			}

			reference, err := loadReference(cmd.Context(), cfg, useSample)
			if err != nil {
				return err
			}
			dataset.DeriveConvenienceColumns(reference)

			store, err := export.OpenStore(cfg.StoreDir())
			if err != nil {
				return err
			}
			defer store.Close()

			for _, unit := range units {
				if err := runUnit(cmd.Context(), cfg, store, reference, unit, algorithms, useSample); err != nil {
					log.Printf("unit %s failed: %v", unit.File, err)
				}
			}
			return nil
		},
	}

	matchCmd.Flags().StringVar(&algorithmName, "algorithm", "all", "algorithm to run (levenshtein|jaccard|dice|ngram|regex|tfidf|all)")
	matchCmd.Flags().StringVar(&fileName, "file", "", "query file to match, overriding the configured units")
	matchCmd.Flags().StringSliceVar(&columns, "columns", []string{"STREET", "FULLNAME"}, "columns to match when --file is given")
	matchCmd.Flags().BoolVar(&useSample, "sample", false, "use the built-in sample datasets instead of database and files")
	return matchCmd
}

// selectAlgorithms resolves the --algorithm flag to a name list.
func selectAlgorithms(name string) ([]string, error) {
	if name == "all" {
		return matching.Names(), nil
	}
	for _, known := range matching.Names() {
		if name == known {
			return []string{name}, nil
		}
	}
	return nil, fmt.Errorf("unknown algorithm %q (valid: %s, all)", name, strings.Join(matching.Names(), ", "))
}

// loadReference acquires the reference corpus from the sample data or the
// configured Postgres table.
func loadReference(ctx context.Context, cfg *config.Config, useSample bool) (*dataset.Table, error) {
	if useSample {
		return dataset.SampleReference(), nil
	}
	source, err := dataset.OpenPostgres()
	if err != nil {
		return nil, fmt.Errorf("connecting to reference database: %w", err)
	}
	defer source.Close()
	return source.ReferenceTable(ctx, cfg.ReferenceTable, cfg.ReferenceColumns)
}

// runUnit drives every selected algorithm over one (file, columns) unit.
func runUnit(ctx context.Context, cfg *config.Config, store *export.Store,
	reference *dataset.Table, unit config.Unit, algorithms []string, useSample bool) error {

	var queries *dataset.Table
	var err error
	if useSample {
		queries = dataset.SampleQueries()
	} else {
		queries, err = dataset.ReadCSV(filepath.Join(cfg.RawDir(), unit.File))
		if err != nil {
			return err
		}
	}
	dataset.DeriveConvenienceColumns(queries)

	for _, column := range unit.Columns {
		dataColumn := dataset.ColumnAlias(column)

		referenceValues, ok := reference.Column(dataColumn)
		if !ok {
			log.Printf("unit %s: reference corpus has no column %s, skipping", unit.File, dataColumn)
			continue
		}
		queryValues, ok := queries.Column(column)
		if !ok {
			log.Printf("unit %s: query set has no column %s, skipping", unit.File, column)
			continue
		}

		log.Printf("matching %s column %s (%d references, %d queries)",
			unit.File, column, len(referenceValues), len(queryValues))

		corpus := normalize.Records(referenceValues)
		querySet := normalize.Records(queryValues)

		for _, name := range algorithms {
			algo, err := matching.New(name, cfg.Thresholds.For(name))
			if err != nil {
				return err
			}
			runner := matching.NewRunner(algo, cfg.Workers, cfg.Debug)

			results, failures, stats, err := runner.Run(ctx, corpus, querySet)
			if err != nil {
				log.Printf("unit %s column %s algorithm %s failed: %v", unit.File, column, name, err)
				continue
			}
			debug.Output(cfg.Debug, "%s/%s/%s: %d failures", unit.File, column, name, len(failures))

			path, err := export.ExportForValidation(cfg.ValidationDir(), unit.File, dataColumn, name, results)
			if err != nil {
				return err
			}
			log.Printf("%s: %d/%d accepted, exported to %s", name, stats.Accepted, stats.Queries, path)

			run := export.NewRunRecord(unit.File, dataColumn, name, stats)
			if err := store.SaveRun(ctx, run, results); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
		}
	}
	return nil
}

// createEvaluateCmd creates the evaluation subcommand.
func createEvaluateCmd() *cobra.Command {
	var datasets []string

	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score validated result tables per algorithm per dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := export.OpenStore(cfg.StoreDir())
			if err != nil {
				return err
			}
			defer store.Close()

			for _, name := range datasets {
				table, err := loadEvaluationData(cfg, name)
				if err != nil {
					return err
				}
				if table.Rows() == 0 {
					log.Printf("no validated data for dataset %s, skipping", name)
					continue
				}

				report := evaluation.Evaluate(name, table, matching.Names())
				if len(report.Metrics) == 0 {
					log.Printf("no scorable algorithm for dataset %s, skipping", name)
					continue
				}

				path, err := export.ExportEvalData(cfg.DataDir, cfg.ConfusionMatrixDir(), report, matching.Names())
				if err != nil {
					return err
				}
				if err := store.SaveMetrics(cmd.Context(), name, report.Metrics); err != nil {
					return err
				}
				log.Printf("dataset %s: scored %d algorithms, results in %s",
					name, len(report.Metrics), path)
			}
			return nil
		},
	}

	evaluateCmd.Flags().StringSliceVar(&datasets, "datasets", []string{"STREET", "FULLNAME", "BOTH"}, "dataset names to evaluate")
	return evaluateCmd
}

// loadEvaluationData loads the validated table for one dataset name. BOTH is
// the vertical concatenation of STREET and FULLNAME.
func loadEvaluationData(cfg *config.Config, name string) (*dataset.Table, error) {
	if name == "BOTH" {
		street, err := export.LoadValidated(cfg.ValidationDir(), "STREET")
		if err != nil {
			return nil, err
		}
		fullname, err := export.LoadValidated(cfg.ValidationDir(), "FULLNAME")
		if err != nil {
			return nil, err
		}
		street.Append(fullname)
		return street, nil
	}
	return export.LoadValidated(cfg.ValidationDir(), name)
}

// createServeCmd creates the review API subcommand.
func createServeCmd() *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stored runs and metrics as a JSON review API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := export.OpenStore(cfg.StoreDir())
			if err != nil {
				return err
			}
			defer store.Close()

			return web.NewServer(addr, store).Start()
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return serveCmd
}

// createPingCmd creates a command to test store and database connectivity.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test run-store and reference-database connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := export.OpenStore(cfg.StoreDir())
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("run store unreachable: %w", err)
			}
			fmt.Printf("run store ok: %s\n", store.Path())

			if os.Getenv("PGHOST") == "" {
				fmt.Println("PGHOST not set, skipping reference database check")
				return nil
			}
			source, err := dataset.OpenPostgres()
			if err != nil {
				return fmt.Errorf("reference database unreachable: %w", err)
			}
			defer source.Close()
			fmt.Println("reference database ok")
			return nil
		},
	}
}
