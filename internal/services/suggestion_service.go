package services

import (
	"context"
	"log"

	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/justsurfingit/gig-builder/internal/sections"
	"github.com/justsurfingit/gig-builder/internal/textdiff"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownSection is returned for a section id that is not in the registry.
	ErrUnknownSection = errors.New("unknown section")
	// ErrNoSuggestion is returned when the model reply holds no usable update.
	ErrNoSuggestion = errors.New("model reply contained no suggestion")
)

const (
	defaultExplanation  = "AI-generated suggestion for improving this section."
	enhancedExplanation = "Enhanced AI-generated suggestion for improving this section."
)

// SuggestionRequest asks for a rewrite of one section. When Content is empty
// the section's current value in Gig is used.
type SuggestionRequest struct {
	Section string
	Content string
	Gig     models.Gig
}

// Suggestion is a proposed rewrite with its diff against the current text.
type Suggestion struct {
	Section         string
	Raw             string
	SuggestedUpdate string
	Explanation     string
	Differences     []textdiff.Span
}

type SuggestionService struct {
	LLM      *LLMService
	Sections *sections.Registry
}

func NewSuggestionService(llm *LLMService) *SuggestionService {
	return &SuggestionService{LLM: llm, Sections: sections.Default()}
}

// Suggest proposes a rewrite of req.Section using the rest of the gig as
// context.
func (s *SuggestionService) Suggest(ctx context.Context, req SuggestionRequest) (*Suggestion, error) {
	return s.suggest(ctx, req, req.Gig, defaultExplanation)
}

// Enhance is like Suggest but hides the section's current value from the gig
// context, so the model writes from the supplied content alone.
func (s *SuggestionService) Enhance(ctx context.Context, req SuggestionRequest) (*Suggestion, error) {
	return s.suggest(ctx, req, req.Gig.Without(req.Section), enhancedExplanation)
}

func (s *SuggestionService) suggest(ctx context.Context, req SuggestionRequest, gigCtx models.Gig, fallback string) (*Suggestion, error) {
	if _, ok := s.Sections.Get(req.Section); !ok {
		return nil, errors.Wrapf(ErrUnknownSection, "%q", req.Section)
	}

	content := req.Content
	if content == "" {
		content, _ = req.Gig.Get(req.Section)
	}

	update, raw, err := s.LLM.ImproveSection(ctx, req.Section, content, gigCtx)
	if err != nil {
		return nil, err
	}
	if update == nil || update.SuggestedUpdate == "" {
		log.Printf("❌ [Section: %s] could not parse model reply: %.200s", req.Section, raw)
		return nil, ErrNoSuggestion
	}

	explanation := update.Explanation
	if explanation == "" {
		explanation = fallback
	}

	sugg := &Suggestion{
		Section:         req.Section,
		Raw:             raw,
		SuggestedUpdate: update.SuggestedUpdate,
		Explanation:     explanation,
		Differences:     textdiff.Diff(content, update.SuggestedUpdate),
	}
	log.Printf("✅ [Section: %s] suggestion ready (%d diff spans)", req.Section, len(sugg.Differences))
	return sugg, nil
}
