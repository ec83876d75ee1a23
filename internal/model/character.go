package model

import "time"

type Category struct {
	ID   int64
	Code string
	Name string
}

// Character is one normalized catalog record, ready for insertion. String
// fields are never null: absent upstream values degrade to "" and Tags to an
// empty slice during normalization.
type Character struct {
	Name            string
	CategoryID      int64
	Description     string
	TargetAudience  string
	ChatType        string
	Tags            []string
	ImageURL        string
	InitialMessage  string
	CreatorNickname string
}

// StoredCharacter is a persisted row: a Character plus the server-assigned
// id and insert timestamp.
type StoredCharacter struct {
	Character
	ID          int64
	CollectedAt time.Time
}
