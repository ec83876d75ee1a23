package handler

type CharacterResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CategoryID      int64    `json:"category_id"`
	Description     string   `json:"description"`
	TargetAudience  string   `json:"target_audience"`
	ChatType        string   `json:"chat_type"`
	Tags            []string `json:"tags"`
	ImageURL        string   `json:"image_url"`
	InitialMessage  string   `json:"initial_message"`
	CreatorNickname string   `json:"creator_nickname"`
	CollectedAt     string   `json:"collected_at"`
}

type CharacterFeedResponse struct {
	Characters []CharacterResponse `json:"characters"`
	Total      int                 `json:"total"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type NullCountsResponse struct {
	Names        int `json:"names"`
	Descriptions int `json:"descriptions"`
	Images       int `json:"images"`
	Messages     int `json:"messages"`
}

type GenreStatResponse struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

type QualityReportResponse struct {
	Date           string              `json:"date"`
	TotalCount     int                 `json:"total_count"`
	CategoryCount  int                 `json:"category_count"`
	NullCounts     NullCountsResponse  `json:"null_counts"`
	GenreStats     []GenreStatResponse `json:"genre_stats"`
	FirstCollected string              `json:"first_collected,omitempty"`
	LastCollected  string              `json:"last_collected,omitempty"`
	Warnings       []string            `json:"warnings"`
}
