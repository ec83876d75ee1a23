package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"crackcrawl/internal/model"

	"github.com/gin-gonic/gin"
)

type CharacterStore interface {
	GetCharacters(limit, offset int) ([]model.StoredCharacter, error)
	GetCharactersTotal() (int, error)
	GetAllCategories() ([]model.Category, error)
}

type QualityAuditor interface {
	Audit(targetDate time.Time) (*model.QualityReport, error)
}

type CharacterHandler struct {
	repository CharacterStore
	auditor    QualityAuditor
}

func NewCharacterHandler(repository CharacterStore, auditor QualityAuditor) *CharacterHandler {
	return &CharacterHandler{repository: repository, auditor: auditor}
}

func (h *CharacterHandler) GetCharacters(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	characters, err := h.repository.GetCharacters(limit, offset)
	if err != nil {
		slog.Error("error fetching characters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetCharactersTotal()
	if err != nil {
		slog.Error("error fetching character total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var characterRes []CharacterResponse
	for _, ch := range characters {
		characterRes = append(characterRes, CharacterResponse{
			ID:              ch.ID,
			Name:            ch.Name,
			CategoryID:      ch.CategoryID,
			Description:     ch.Description,
			TargetAudience:  ch.TargetAudience,
			ChatType:        ch.ChatType,
			Tags:            ch.Tags,
			ImageURL:        ch.ImageURL,
			InitialMessage:  ch.InitialMessage,
			CreatorNickname: ch.CreatorNickname,
			CollectedAt:     ch.CollectedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, CharacterFeedResponse{
		Characters: characterRes,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
	})
}

func (h *CharacterHandler) GetCategories(c *gin.Context) {
	categories, err := h.repository.GetAllCategories()
	if err != nil {
		slog.Error("error fetching categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var res []CategoryResponse
	for _, cat := range categories {
		res = append(res, CategoryResponse{
			ID:   cat.ID,
			Code: cat.Code,
			Name: cat.Name,
		})
	}

	c.JSON(http.StatusOK, res)
}

func (h *CharacterHandler) GetQualityReport(c *gin.Context) {
	targetDate := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	report, err := h.auditor.Audit(targetDate)
	if err != nil {
		slog.Error("error running quality audit", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := QualityReportResponse{
		Date:          report.TargetDate.Format("2006-01-02"),
		TotalCount:    report.TotalCount,
		CategoryCount: report.CategoryCount,
		NullCounts: NullCountsResponse{
			Names:        report.NullCounts.Names,
			Descriptions: report.NullCounts.Descriptions,
			Images:       report.NullCounts.Images,
			Messages:     report.NullCounts.Messages,
		},
		Warnings: report.Warnings,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	for _, stat := range report.GenreStats {
		res.GenreStats = append(res.GenreStats, GenreStatResponse{
			Genre: stat.GenreName,
			Count: stat.Count,
		})
	}

	if report.FirstCollected != nil {
		res.FirstCollected = report.FirstCollected.Format(time.RFC3339)
	}
	if report.LastCollected != nil {
		res.LastCollected = report.LastCollected.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, res)
}

func (h *CharacterHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetCharactersTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
