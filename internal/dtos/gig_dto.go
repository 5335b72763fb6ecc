package dtos

import (
	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/justsurfingit/gig-builder/internal/services"
	"github.com/justsurfingit/gig-builder/internal/textdiff"
)

type ImproveRequest struct {
	Section        string     `json:"section" binding:"required"`
	Content        string     `json:"content"`
	GigDescription models.Gig `json:"gigDescription"`
}

type ImproveResponse struct {
	Text        string          `json:"text"`
	Section     string          `json:"section"`
	Suggestion  string          `json:"suggestion"`
	Explanation string          `json:"explanation"`
	Differences []textdiff.Span `json:"differences"`
}

type ConvertRequest struct {
	Text string `json:"text" binding:"required"`
}

type ChatRequest struct {
	Messages       []services.ChatMessage `json:"messages" binding:"required,min=1"`
	GigDescription models.Gig             `json:"gigDescription"`
}

// ChatResponse leaves section and suggestion null when the reply does not
// target a section.
type ChatResponse struct {
	Text       string  `json:"text"`
	Section    *string `json:"section"`
	Suggestion *string `json:"suggestion"`
}

type DiffRequest struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	// Mode is "hierarchical" (default) or "character".
	Mode string `json:"mode"`
}

type DiffResponse struct {
	Mode        textdiff.Mode   `json:"mode"`
	Changed     bool            `json:"changed"`
	Differences []textdiff.Span `json:"differences"`
}

type PreviewRequest struct {
	GigDescription models.Gig `json:"gigDescription"`
	Format         string     `json:"format"`
	Output         string     `json:"output"`
}

type ValidateResponse struct {
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing"`
}
