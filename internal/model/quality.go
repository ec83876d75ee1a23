package model

import "time"

// Expected daily volumes: nine genres at twenty characters each. The total
// threshold sits below the nominal 180 to tolerate a partially thin day
// without paging anyone. Descriptions are optional upstream, so a handful of
// empty ones is normal.
const (
	MinExpectedTotal      = 150
	MinExpectedCategories = 9
	MaxNullDescriptions   = 5
)

type NullCounts struct {
	Names        int
	Descriptions int
	Images       int
	Messages     int
}

type GenreStat struct {
	GenreName string
	Count     int
}

// QualityReport is the output of one audit pass over a single collection
// date. Warnings carry threshold breaches; the audit itself never fails on
// a breach.
type QualityReport struct {
	TargetDate     time.Time
	TotalCount     int
	CategoryCount  int
	NullCounts     NullCounts
	GenreStats     []GenreStat
	FirstCollected *time.Time
	LastCollected  *time.Time
	Warnings       []string
}
