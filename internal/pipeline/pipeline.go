package pipeline

import (
	"fmt"
	"log/slog"

	"crackcrawl/internal/model"
	"crackcrawl/pkg/crack"
)

// Per-genre outcome statuses. Everything except a storage failure is
// contained here: one genre going bad never aborts its siblings.
const (
	StatusOK           = "ok"
	StatusUnknownGenre = "unknown_genre"
	StatusFetchFailed  = "fetch_failed"
	StatusNoRecords    = "no_records"
	StatusWriteFailed  = "write_failed"
)

type Fetcher interface {
	Fetch(genreCode string, limit int) ([]crack.RawCharacter, error)
}

type Store interface {
	CategoryMap() (map[string]model.Category, error)
	UpsertBatch(characters []model.Character) (int, error)
}

// Result summarizes one fetch-genre-characters invocation. It is what gets
// handed to the orchestrator's notification queue.
type Result struct {
	Genre    string `json:"genre"`
	Status   string `json:"status"`
	Fetched  int    `json:"fetched"`
	Inserted int    `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

type Pipeline struct {
	fetcher Fetcher
	store   Store
}

func New(fetcher Fetcher, store Store) *Pipeline {
	return &Pipeline{fetcher: fetcher, store: store}
}

// FetchGenreCharacters runs the full per-genre sequence: resolve the genre,
// fetch its top-liked characters, normalize each record, and upsert the
// batch. Upstream and write failures are logged and reflected in the Result;
// the returned error is non-nil only when category resolution itself fails,
// which is fatal to the whole invocation.
func (p *Pipeline) FetchGenreCharacters(genre string, limit int) (Result, error) {
	slog.Info("collection started", "genre", genre, "limit", limit)

	categories, err := p.store.CategoryMap()
	if err != nil {
		return Result{}, fmt.Errorf("resolve genre %q: %w", genre, err)
	}

	category, ok := categories[genre]
	if !ok {
		known := make([]string, 0, len(categories))
		for name := range categories {
			known = append(known, name)
		}
		slog.Error("unsupported genre", "genre", genre, "known_genres", known)
		return Result{Genre: genre, Status: StatusUnknownGenre}, nil
	}

	rawCharacters, err := p.fetcher.Fetch(category.Code, limit)
	if err != nil {
		slog.Error("fetch failed, skipping genre", "genre", genre, "error", err)
		return Result{Genre: genre, Status: StatusFetchFailed, Error: err.Error()}, nil
	}

	if len(rawCharacters) == 0 {
		slog.Warn("no characters returned", "genre", genre)
		return Result{Genre: genre, Status: StatusNoRecords}, nil
	}

	characters := make([]model.Character, 0, len(rawCharacters))
	for _, raw := range rawCharacters {
		characters = append(characters, crack.Normalize(raw, category.ID))
	}

	inserted, err := p.store.UpsertBatch(characters)
	if err != nil {
		slog.Error("batch insert failed, genre rolled back", "genre", genre, "error", err)
		return Result{
			Genre:   genre,
			Status:  StatusWriteFailed,
			Fetched: len(rawCharacters),
			Error:   err.Error(),
		}, nil
	}

	slog.Info("collection complete",
		"genre", genre,
		"fetched", len(rawCharacters),
		"inserted", inserted,
		"duplicates_skipped", len(rawCharacters)-inserted,
	)

	return Result{
		Genre:    genre,
		Status:   StatusOK,
		Fetched:  len(rawCharacters),
		Inserted: inserted,
	}, nil
}
