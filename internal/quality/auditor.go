package quality

import (
	"fmt"
	"log/slog"
	"time"

	"crackcrawl/internal/model"
)

type Store interface {
	CountCollected(targetDate time.Time) (int, error)
	CountDistinctCategories(targetDate time.Time) (int, error)
	NullFieldCounts(targetDate time.Time) (model.NullCounts, error)
	CollectionTimeRange(targetDate time.Time) (*time.Time, *time.Time, error)
	GenreCounts(targetDate time.Time) ([]model.GenreStat, error)
}

type Auditor struct {
	store Store
}

func NewAuditor(store Store) *Auditor {
	return &Auditor{store: store}
}

// Audit computes the quality report for one collection date. It only reads;
// nothing is corrected. Threshold breaches become warnings inside the
// report, never errors — an error return means the queries themselves could
// not execute, in which case no partial report is produced.
func (a *Auditor) Audit(targetDate time.Time) (*model.QualityReport, error) {
	totalCount, err := a.store.CountCollected(targetDate)
	if err != nil {
		return nil, fmt.Errorf("quality audit: %w", err)
	}

	categoryCount, err := a.store.CountDistinctCategories(targetDate)
	if err != nil {
		return nil, fmt.Errorf("quality audit: %w", err)
	}

	nullCounts, err := a.store.NullFieldCounts(targetDate)
	if err != nil {
		return nil, fmt.Errorf("quality audit: %w", err)
	}

	first, last, err := a.store.CollectionTimeRange(targetDate)
	if err != nil {
		return nil, fmt.Errorf("quality audit: %w", err)
	}

	genreStats, err := a.store.GenreCounts(targetDate)
	if err != nil {
		return nil, fmt.Errorf("quality audit: %w", err)
	}

	report := &model.QualityReport{
		TargetDate:     targetDate,
		TotalCount:     totalCount,
		CategoryCount:  categoryCount,
		NullCounts:     nullCounts,
		GenreStats:     genreStats,
		FirstCollected: first,
		LastCollected:  last,
	}
	report.Warnings = Classify(report)

	return report, nil
}

// Classify checks a report against the volume and completeness thresholds.
// Null image and message counts stay informational: those fields are too
// often empty upstream to gate on.
func Classify(report *model.QualityReport) []string {
	var warnings []string

	if report.TotalCount < model.MinExpectedTotal {
		warnings = append(warnings, fmt.Sprintf(
			"low volume: collected %d characters, expected at least %d",
			report.TotalCount, model.MinExpectedTotal))
	}

	if report.CategoryCount < model.MinExpectedCategories {
		warnings = append(warnings, fmt.Sprintf(
			"missing genres: %d categories collected, expected %d",
			report.CategoryCount, model.MinExpectedCategories))
	}

	if report.NullCounts.Names > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d characters with missing names", report.NullCounts.Names))
	}

	if report.NullCounts.Descriptions > model.MaxNullDescriptions {
		warnings = append(warnings, fmt.Sprintf(
			"%d characters with missing descriptions (allowed up to %d)",
			report.NullCounts.Descriptions, model.MaxNullDescriptions))
	}

	return warnings
}

// LogReport emits the full report the way the collection summary is logged:
// one line per concern, structured fields.
func LogReport(report *model.QualityReport) {
	slog.Info("data quality report",
		"date", report.TargetDate.Format("2006-01-02"),
		"total", report.TotalCount,
		"categories", report.CategoryCount,
		"null_names", report.NullCounts.Names,
		"null_descriptions", report.NullCounts.Descriptions,
		"null_images", report.NullCounts.Images,
		"null_messages", report.NullCounts.Messages,
	)

	if report.FirstCollected != nil && report.LastCollected != nil {
		slog.Info("collection time range",
			"first", report.FirstCollected.Format(time.RFC3339),
			"last", report.LastCollected.Format(time.RFC3339),
		)
	}

	for _, stat := range report.GenreStats {
		slog.Info("genre collection count", "genre", stat.GenreName, "count", stat.Count)
	}

	for _, warning := range report.Warnings {
		slog.Warn("quality threshold breached", "warning", warning)
	}

	if len(report.Warnings) == 0 {
		slog.Info("all quality thresholds passed")
	}
}
