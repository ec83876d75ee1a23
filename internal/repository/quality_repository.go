package repository

import (
	"database/sql"
	"time"

	"crackcrawl/internal/model"
)

// QualityRepository runs the read-only aggregate queries behind the daily
// data-quality audit. Dates compare against DATE(collected_at), so a target
// date selects the full collection day regardless of run time.
type QualityRepository struct {
	db *sql.DB
}

func NewQualityRepository(db *sql.DB) *QualityRepository {
	return &QualityRepository{db: db}
}

func dateArg(targetDate time.Time) string {
	return targetDate.Format("2006-01-02")
}

func (r *QualityRepository) CountCollected(targetDate time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM characters
		WHERE DATE(collected_at) = $1::date
	`, dateArg(targetDate)).Scan(&count)
	return count, err
}

func (r *QualityRepository) CountDistinctCategories(targetDate time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(DISTINCT category_id) FROM characters
		WHERE DATE(collected_at) = $1::date
	`, dateArg(targetDate)).Scan(&count)
	return count, err
}

// NullFieldCounts tallies rows whose required-ish fields are null or empty.
// The four counts are independent; one row can be counted in several.
func (r *QualityRepository) NullFieldCounts(targetDate time.Time) (model.NullCounts, error) {
	var counts model.NullCounts
	err := r.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN character_name IS NULL OR character_name = '' THEN 1 END),
			COUNT(CASE WHEN character_description IS NULL OR character_description = '' THEN 1 END),
			COUNT(CASE WHEN character_image_url IS NULL OR character_image_url = '' THEN 1 END),
			COUNT(CASE WHEN initial_message IS NULL OR initial_message = '' THEN 1 END)
		FROM characters
		WHERE DATE(collected_at) = $1::date
	`, dateArg(targetDate)).Scan(&counts.Names, &counts.Descriptions, &counts.Images, &counts.Messages)
	return counts, err
}

// CollectionTimeRange returns the earliest and latest collected_at for the
// date, or nils when nothing was collected.
func (r *QualityRepository) CollectionTimeRange(targetDate time.Time) (*time.Time, *time.Time, error) {
	var first, last sql.NullTime
	err := r.db.QueryRow(`
		SELECT MIN(collected_at), MAX(collected_at)
		FROM characters
		WHERE DATE(collected_at) = $1::date
	`, dateArg(targetDate)).Scan(&first, &last)
	if err != nil {
		return nil, nil, err
	}

	var firstPtr, lastPtr *time.Time
	if first.Valid {
		firstPtr = &first.Time
	}
	if last.Valid {
		lastPtr = &last.Time
	}
	return firstPtr, lastPtr, nil
}

// GenreCounts returns the per-genre collection counts for the date, sorted
// descending. Every known category appears, zero-count ones included.
func (r *QualityRepository) GenreCounts(targetDate time.Time) ([]model.GenreStat, error) {
	rows, err := r.db.Query(`
		SELECT cc.category_name, COUNT(c.id)
		FROM character_categories cc
		LEFT JOIN characters c ON cc.id = c.category_id
			AND DATE(c.collected_at) = $1::date
		GROUP BY cc.category_name
		ORDER BY COUNT(c.id) DESC, cc.category_name
	`, dateArg(targetDate))

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []model.GenreStat
	for rows.Next() {
		var s model.GenreStat
		if err := rows.Scan(&s.GenreName, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
