package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/justsurfingit/gig-builder/internal/config"
	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/justsurfingit/gig-builder/internal/sections"
	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyCompletion is returned when the model answers with no choices.
var ErrEmptyCompletion = errors.New("llm returned no choices")

const maxCompletionTokens = 2048

type LLMService struct {
	Client   llms.Model
	Sections *sections.Registry

	// MaxInputChars truncates free text before it is sent to the model.
	MaxInputChars int
	RetryAttempts int
	RetryDelay    time.Duration
}

// SectionUpdate is the structured reply to an improve or chat request.
type SectionUpdate struct {
	Section         string `json:"section"`
	SuggestedUpdate string `json:"suggested_update"`
	Explanation     string `json:"explanation"`
}

// ChatMessage is one turn of a conversation shown in the chat sidebar.
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// ChatReply is the model's answer to a chat turn. Section and Suggestion are
// empty when the reply does not target a section.
type ChatReply struct {
	Text       string
	Section    string
	Suggestion string
}

// NewLLMService creates the provider client selected by cfg.
func NewLLMService(ctx context.Context, cfg *config.Config) (*LLMService, error) {
	var (
		client llms.Model
		err    error
	)
	switch cfg.Provider {
	case config.ProviderGoogleAI:
		client, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	default:
		client, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s client", cfg.Provider)
	}
	log.Printf("🤖 LLM client ready: %s/%s", cfg.Provider, cfg.Model)
	return NewLLMServiceWithClient(client, cfg.MaxInputChars), nil
}

// NewLLMServiceWithClient wraps an existing model.
func NewLLMServiceWithClient(client llms.Model, maxInputChars int) *LLMService {
	return &LLMService{
		Client:        client,
		Sections:      sections.Default(),
		MaxInputChars: maxInputChars,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

const gigOverview = `You are an AI assistant helping a user create a professional gig description for a freelance project.

The gig description has the following sections:
• Title: A clear, specific title for the job
• Summary: A concise overview of the project
• Company Background: Context about the company and industry
• Deliverables: Tangible outputs expected from the freelancer
• Required Skills: Technical skills and relevant experience required
• Budget: Budget range and payment terms
• Timeline: Project schedule and key milestones
• Communication: Preferred communication methods
• Ownership: Who will own the finished work and IP
• Confidentiality: NDA requirements and confidentiality concerns
• Additional Notes: Any other relevant information`

const updateFormat = `

Respond with a JSON object only, with these keys:
- "section": name of the gig description section being updated
- "suggested_update": the suggested text for that section
- "explanation": a brief explanation of why the suggestion improves the gig description`

const extractionPrompt = `You are an AI assistant that extracts structured job posting information from user-provided text. Your task is to identify and return relevant details in the following fields. If you are unable to find relevant details for the field, return null:

title – A clear and specific title for the job.
summary – A concise overview of the project, including its goals and scope.
companyBackground – Context about the company and the industry it operates in.
deliverables – Tangible outputs or outcomes expected from the freelancer.
skills – Technical skills, tools, or relevant experience required for the role.
budget – Budget range and/or payment terms.
timeline – Project duration, deadlines, and any key milestones.
communication – Preferred methods and frequency of communication.
ownership – Who will own the finished work and any associated intellectual property.
confidentiality – NDA requirements or other confidentiality expectations.
notes – Any other relevant information not captured above.

Respond with a JSON object only, using exactly the field names above as keys and a string or null as each value.
Do not hallucinate or fabricate details not supported by the input.`

func gigContext(g models.Gig, heading string) string {
	filled := g.Filled()
	if len(filled) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n\n" + heading + "\n")
	for _, e := range filled {
		fmt.Fprintf(&sb, "\n%s: %s", e.ID, e.Value)
	}
	return sb.String()
}

// ImproveSection asks the model to rewrite one section. It returns the parsed
// update (nil if the reply could not be understood) along with the raw reply.
func (s *LLMService) ImproveSection(ctx context.Context, section, content string, gig models.Gig) (*SectionUpdate, string, error) {
	title := s.Sections.Title(section)
	system := gigOverview +
		fmt.Sprintf("\n\nThe user wants help with the %q section. Provide a well-formatted, professional improvement to this section. Format lists as bullet points starting with • for better readability when appropriate.", title) +
		gigContext(gig, "Current gig description:") +
		updateFormat

	if strings.TrimSpace(content) == "" {
		content = "This section is currently empty."
	}
	user := fmt.Sprintf("Please improve the %s section of my gig description. Here's the current content:\n\n%s", title, content)

	raw, err := s.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}, 1)
	if err != nil {
		return nil, "", errors.Wrap(err, "improve section")
	}
	return ParseSectionUpdate(raw, s.Sections), raw, nil
}

// ConvertTextToGig extracts a structured gig from free text.
func (s *LLMService) ConvertTextToGig(ctx context.Context, text string) (models.Gig, error) {
	if s.MaxInputChars > 0 {
		text = truncate(text, s.MaxInputChars)
	}

	raw, err := s.generate(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, extractionPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}, 0.7)
	if err != nil {
		return models.Gig{}, errors.Wrap(err, "convert text")
	}

	var fields map[string]*string
	if err := json.Unmarshal([]byte(stripFence(raw)), &fields); err != nil {
		return models.Gig{}, errors.Wrapf(err, "decoding extracted gig %q", raw)
	}
	return models.GigFromNullable(fields), nil
}

// Chat continues a conversation about the gig.
func (s *LLMService) Chat(ctx context.Context, history []ChatMessage, gig models.Gig) (*ChatReply, error) {
	system := gigOverview +
		"\n\nProvide helpful, professional suggestions to improve the gig description. If appropriate, format lists as bullet points starting with • for better readability. Be concise but thorough in your responses." +
		gigContext(gig, "Current gig description:") +
		updateFormat

	messages := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, system)}
	for _, m := range history {
		role := llms.ChatMessageTypeAI
		if m.Sender == "user" {
			role = llms.ChatMessageTypeHuman
		}
		messages = append(messages, llms.TextParts(role, m.Text))
	}

	raw, err := s.generate(ctx, messages, 1)
	if err != nil {
		return nil, errors.Wrap(err, "chat")
	}
	reply := &ChatReply{Text: raw}
	if u := ParseSectionUpdate(raw, s.Sections); u != nil {
		reply.Section = u.Section
		reply.Suggestion = u.SuggestedUpdate
	}
	return reply, nil
}

func (s *LLMService) generate(ctx context.Context, messages []llms.MessageContent, temperature float64) (string, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxCompletionTokens),
		llms.WithTopP(1),
		llms.WithFrequencyPenalty(0),
		llms.WithPresencePenalty(0),
		llms.WithJSONMode(),
	}

	var resp *llms.ContentResponse
	err := retry(ctx, s.RetryAttempts, s.RetryDelay, func() error {
		var e error
		resp, e = s.Client.GenerateContent(ctx, messages, opts...)
		return e
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

var fenced = regexp.MustCompile("(?s)```(.*?)```")

// ParseSectionUpdate decodes a model reply.
//
// A JSON reply is accepted only when it names both a section and a suggested
// update. A reply that is not JSON falls back to the first fenced code block,
// with the section guessed from the surrounding prose. Anything else is nil.
func ParseSectionUpdate(raw string, reg *sections.Registry) *SectionUpdate {
	var u SectionUpdate
	if err := json.Unmarshal([]byte(raw), &u); err == nil {
		if u.Section != "" && u.SuggestedUpdate != "" {
			return &u
		}
		return nil
	}

	m := fenced.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	return &SectionUpdate{
		Section:         reg.MatchKeyword(raw),
		SuggestedUpdate: strings.TrimSpace(m[1]),
	}
}

// stripFence removes a ```json ... ``` wrapper some models add in JSON mode.
func stripFence(raw string) string {
	m := fenced.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	body := strings.TrimSpace(m[1])
	return strings.TrimSpace(strings.TrimPrefix(body, "json"))
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
