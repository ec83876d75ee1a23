package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"crackcrawl/db"
	"crackcrawl/internal/config"
	"crackcrawl/internal/model"
	"crackcrawl/internal/pipeline"
	"crackcrawl/internal/quality"
	"crackcrawl/internal/repository"
	"crackcrawl/pkg/crack"

	"github.com/spf13/cobra"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	root := &cobra.Command{
		Use:   "crawler",
		Short: "Character catalog collection pipeline",
	}
	root.AddCommand(initDBCmd(cfg), fetchCmd(cfg), qualityCheckCmd(cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(cfg config.Config) {
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
}

func initDBCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create tables and seed categories (idempotent)",
		Run: func(cmd *cobra.Command, args []string) {
			slog.Info("database init started", "script", cfg.InitSQLPath)

			script, err := os.ReadFile(cfg.InitSQLPath)
			if err != nil {
				log.Fatalf("error reading init script: %v", err)
			}

			connect(cfg)
			defer db.Close()

			repo := repository.NewCharacterRepository(db.DB)
			if err := repo.InitSchema(string(script)); err != nil {
				log.Fatalf("error initializing database: %v", err)
			}

			slog.Info("database init complete")
		},
	}
}

func fetchCmd(cfg config.Config) *cobra.Command {
	var genre string
	var limit int

	cmd := &cobra.Command{
		Use:   "fetch-genre-characters",
		Short: "Collect top-liked characters for one genre",
		Run: func(cmd *cobra.Command, args []string) {
			connect(cfg)
			defer db.Close()

			p := pipeline.New(crack.NewClient(cfg.CrackAPIBaseURL), repository.NewCharacterRepository(db.DB))

			result, err := p.FetchGenreCharacters(genre, limit)
			if err != nil {
				log.Fatalf("error resolving genre: %v", err)
			}

			reportResult(cfg, result)
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "genre name to collect")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of characters to collect")
	cmd.MarkFlagRequired("genre")

	return cmd
}

func qualityCheckCmd(cfg config.Config) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "quality-check",
		Short: "Audit the collected data for one date",
		Run: func(cmd *cobra.Command, args []string) {
			targetDate := time.Now()
			if date != "" {
				parsed, err := time.Parse("2006-01-02", date)
				if err != nil {
					log.Fatalf("invalid --date %q, expected YYYY-MM-DD: %v", date, err)
				}
				targetDate = parsed
			}

			connect(cfg)
			defer db.Close()

			auditor := quality.NewAuditor(repository.NewQualityRepository(db.DB))

			report, err := auditor.Audit(targetDate)
			if err != nil {
				log.Fatalf("error running quality check: %v", err)
			}

			quality.LogReport(report)
			notify(cfg, report)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "target date (YYYY-MM-DD), defaults to today")

	return cmd
}

// reportResult hands the per-genre outcome to the orchestrator's queues when
// redis is configured. Queue errors are logged and swallowed: the collection
// itself already succeeded or failed on its own terms.
func reportResult(cfg config.Config, result pipeline.Result) {
	if cfg.RedisURL == "" {
		return
	}

	if err := db.ConnectRedis(cfg.RedisURL); err != nil {
		slog.Error("error connecting to Redis", "error", err)
		return
	}
	defer db.CloseRedis()

	payload, _ := json.Marshal(result)
	if err := db.PushToQueue(db.NotifyQueueKey, string(payload)); err != nil {
		slog.Error("error pushing to notify queue", "error", err, "genre", result.Genre)
	}

	switch result.Status {
	case pipeline.StatusFetchFailed, pipeline.StatusWriteFailed:
		if err := db.PushToQueue(db.FailedGenreQueueKey, result.Genre); err != nil {
			slog.Error("error pushing to failed queue", "error", err, "genre", result.Genre)
		}
	}
}

func notify(cfg config.Config, report *model.QualityReport) {
	if cfg.RedisURL == "" {
		return
	}

	if err := db.ConnectRedis(cfg.RedisURL); err != nil {
		slog.Error("error connecting to Redis", "error", err)
		return
	}
	defer db.CloseRedis()

	payload, _ := json.Marshal(map[string]interface{}{
		"event":      "quality_report",
		"date":       report.TargetDate.Format("2006-01-02"),
		"total":      report.TotalCount,
		"categories": report.CategoryCount,
		"warnings":   report.Warnings,
	})
	if err := db.PushToQueue(db.NotifyQueueKey, string(payload)); err != nil {
		slog.Error("error pushing to notify queue", "error", err)
	}
}
