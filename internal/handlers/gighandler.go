package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/gig-builder/internal/dtos"
	"github.com/justsurfingit/gig-builder/internal/middleware"
	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/justsurfingit/gig-builder/internal/sections"
	"github.com/justsurfingit/gig-builder/internal/services"
	"github.com/justsurfingit/gig-builder/internal/textdiff"
	"github.com/pkg/errors"
)

// GigHandler serves the gig builder API.
type GigHandler struct {
	LLMService        *services.LLMService
	SuggestionService *services.SuggestionService
	PreviewService    *services.PreviewService
	Sections          *sections.Registry
}

func NewGigHandler(llm *services.LLMService, suggestions *services.SuggestionService, preview *services.PreviewService) *GigHandler {
	return &GigHandler{
		LLMService:        llm,
		SuggestionService: suggestions,
		PreviewService:    preview,
		Sections:          sections.Default(),
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListSections is GET /sections
func (h *GigHandler) ListSections(c *gin.Context) {
	c.JSON(http.StatusOK, h.Sections.List())
}

// GetSection is GET /sections/:id
func (h *GigHandler) GetSection(c *gin.Context) {
	s, ok := h.Sections.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Improve is POST /improve
func (h *GigHandler) Improve(c *gin.Context) {
	h.suggest(c, h.SuggestionService.Suggest)
}

// Enhance is POST /enhance
func (h *GigHandler) Enhance(c *gin.Context) {
	h.suggest(c, h.SuggestionService.Enhance)
}

type suggestFunc = func(context.Context, services.SuggestionRequest) (*services.Suggestion, error)

func (h *GigHandler) suggest(c *gin.Context, fn suggestFunc) {
	var req dtos.ImproveRequest
	if !bindJSON(c, &req) {
		return
	}

	sugg, err := fn(c.Request.Context(), services.SuggestionRequest{
		Section: req.Section,
		Content: req.Content,
		Gig:     req.GigDescription,
	})
	switch {
	case errors.Is(err, services.ErrUnknownSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown section: " + req.Section})
		return
	case errors.Is(err, services.ErrNoSuggestion):
		c.JSON(http.StatusBadGateway, gin.H{"error": "The AI response could not be understood"})
		return
	case err != nil:
		failed(c, err)
		return
	}

	c.JSON(http.StatusOK, dtos.ImproveResponse{
		Text:        sugg.Raw,
		Section:     sugg.Section,
		Suggestion:  sugg.SuggestedUpdate,
		Explanation: sugg.Explanation,
		Differences: sugg.Differences,
	})
}

// ConvertTextToGig is POST /convert-text-to-gig
func (h *GigHandler) ConvertTextToGig(c *gin.Context) {
	var req dtos.ConvertRequest
	if !bindJSON(c, &req) {
		return
	}

	gig, err := h.LLMService.ConvertTextToGig(c.Request.Context(), req.Text)
	if err != nil {
		failed(c, err)
		return
	}
	c.JSON(http.StatusOK, gig)
}

// Chat is POST /chat
func (h *GigHandler) Chat(c *gin.Context) {
	var req dtos.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.LLMService.Chat(c.Request.Context(), req.Messages, req.GigDescription)
	if err != nil {
		failed(c, err)
		return
	}

	resp := dtos.ChatResponse{Text: reply.Text}
	if reply.Suggestion != "" {
		resp.Section = &reply.Section
		resp.Suggestion = &reply.Suggestion
	}
	c.JSON(http.StatusOK, resp)
}

// Diff is POST /diff
func (h *GigHandler) Diff(c *gin.Context) {
	var req dtos.DiffRequest
	if !bindJSON(c, &req) {
		return
	}
	mode, err := textdiff.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown diff mode: " + req.Mode})
		return
	}

	spans := mode.Run(req.Original, req.Suggested)
	c.JSON(http.StatusOK, dtos.DiffResponse{
		Mode:        mode,
		Changed:     textdiff.Changed(spans),
		Differences: spans,
	})
}

// Preview is POST /preview
func (h *GigHandler) Preview(c *gin.Context) {
	var req dtos.PreviewRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.PreviewService.Render(req.GigDescription, req.Format, req.Output)
	if errors.Is(err, services.ErrUnknownFormat) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		failed(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Validate is POST /validate
func (h *GigHandler) Validate(c *gin.Context) {
	var gig models.Gig
	if !bindJSON(c, &gig) {
		return
	}
	missing := h.Sections.Missing(gig)
	c.JSON(http.StatusOK, dtos.ValidateResponse{Valid: len(missing) == 0, Missing: missing})
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid JSON payload"
	}
	switch verrs[0].Field() {
	case "Section":
		return "Section is required"
	case "Text":
		return "Text content is required"
	case "Messages":
		return "Messages are required"
	}
	return verrs[0].Error()
}

// failed logs err and answers with a generic 500.
func failed(c *gin.Context, err error) {
	log.Printf("❌ %s %s (request %s): %v", c.Request.Method, c.FullPath(), c.GetString(middleware.RequestIDKey), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process your request"})
}
