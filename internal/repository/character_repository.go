package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"crackcrawl/internal/model"

	"github.com/lib/pq"
)

// upsertChunkSize bounds the number of rows per INSERT statement. Each
// UpsertBatch call still commits as one transaction regardless of chunking.
const upsertChunkSize = 100

type CharacterRepository struct {
	db *sql.DB
}

func NewCharacterRepository(db *sql.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CategoryMap loads the full category table keyed by genre name. Genre names
// are unique, so the map is lossless.
func (r *CharacterRepository) CategoryMap() (map[string]model.Category, error) {
	rows, err := r.db.Query(`
		SELECT id, category_code, category_name
		FROM character_categories
	`)

	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[string]model.Category)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("load categories: %w", err)
		}
		categories[c.Name] = c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	return categories, nil
}

// UpsertBatch inserts normalized characters with duplicate-key tolerance:
// rows whose (character_name, category_id) pair already exists are silently
// skipped. The whole batch is one transaction; any driver error rolls back
// every row. Returns the number of rows actually inserted.
func (r *CharacterRepository) UpsertBatch(characters []model.Character) (int, error) {
	if len(characters) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("upsert characters: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for start := 0; start < len(characters); start += upsertChunkSize {
		end := start + upsertChunkSize
		if end > len(characters) {
			end = len(characters)
		}
		chunk := characters[start:end]

		res, err := tx.Exec(buildUpsertQuery(len(chunk)), upsertArgs(chunk)...)
		if err != nil {
			return 0, fmt.Errorf("upsert characters: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("upsert characters: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("upsert characters: %w", err)
	}

	return inserted, nil
}

func buildUpsertQuery(rows int) string {
	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO characters
		(character_name, category_id, character_description, target_audience,
		 chat_type, tags, character_image_url, initial_message, creator_nickname)
		VALUES `)

	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
	}

	sb.WriteString(" ON CONFLICT (character_name, category_id) DO NOTHING")
	return sb.String()
}

func upsertArgs(characters []model.Character) []interface{} {
	args := make([]interface{}, 0, len(characters)*9)
	for _, c := range characters {
		args = append(args,
			c.Name, c.CategoryID, c.Description, c.TargetAudience,
			c.ChatType, pq.Array(c.Tags), c.ImageURL, c.InitialMessage, c.CreatorNickname,
		)
	}
	return args
}

func (r *CharacterRepository) GetCharacters(limit int, offset int) ([]model.StoredCharacter, error) {
	rows, err := r.db.Query(`
		SELECT id, character_name, category_id,
			COALESCE(character_description, ''), COALESCE(target_audience, ''),
			COALESCE(chat_type, ''), COALESCE(tags, '{}'),
			COALESCE(character_image_url, ''), COALESCE(initial_message, ''),
			COALESCE(creator_nickname, ''), collected_at
		FROM characters
		ORDER BY collected_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []model.StoredCharacter
	for rows.Next() {
		var c model.StoredCharacter
		err := rows.Scan(
			&c.ID, &c.Name, &c.CategoryID, &c.Description, &c.TargetAudience,
			&c.ChatType, pq.Array(&c.Tags), &c.ImageURL, &c.InitialMessage,
			&c.CreatorNickname, &c.CollectedAt,
		)
		if err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return characters, nil
}

func (r *CharacterRepository) GetCharactersTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM characters
	`).Scan(&total)
	return total, err
}

func (r *CharacterRepository) GetAllCategories() ([]model.Category, error) {
	rows, err := r.db.Query(`
		SELECT id, category_code, category_name
		FROM character_categories
		ORDER BY category_name
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// InitSchema executes the schema-setup script in one transaction. The script
// is idempotent, so re-running it against an initialized database is safe.
func (r *CharacterRepository) InitSchema(script string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(script); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	return tx.Commit()
}
