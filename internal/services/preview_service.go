package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/justsurfingit/gig-builder/internal/sections"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
)

// Preview formats.
const (
	FormatStandard = "standard"
	FormatMinimal  = "minimal"
	FormatDetailed = "detailed"
)

// Preview outputs.
const (
	OutputMarkdown = "markdown"
	OutputText     = "text"
	OutputHTML     = "html"
)

const notSpecified = "Not specified"

var ErrUnknownFormat = errors.New("unknown preview format")

type Preview struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type PreviewService struct {
	Sections *sections.Registry
	md       goldmark.Markdown
}

func NewPreviewService() *PreviewService {
	return &PreviewService{Sections: sections.Default(), md: goldmark.New()}
}

// Render lays out g as a document. Empty format and output default to
// standard markdown.
func (s *PreviewService) Render(g models.Gig, format, output string) (*Preview, error) {
	if format == "" {
		format = FormatStandard
	}
	if output == "" {
		output = OutputMarkdown
	}
	if format != FormatStandard && format != FormatMinimal && format != FormatDetailed {
		return nil, errors.Wrapf(ErrUnknownFormat, "format %q", format)
	}

	title := strings.TrimSpace(g.Title)
	if title == "" {
		title = "Untitled"
	}
	base := "Job Description - " + title

	switch output {
	case OutputMarkdown:
		return &Preview{Filename: base + ".md", ContentType: "text/markdown; charset=utf-8", Content: s.markdown(g, format)}, nil
	case OutputText:
		return &Preview{Filename: base + ".txt", ContentType: "text/plain; charset=utf-8", Content: s.text(g, format)}, nil
	case OutputHTML:
		var buf bytes.Buffer
		if err := s.md.Convert([]byte(s.markdown(g, format)), &buf); err != nil {
			return nil, errors.Wrap(err, "rendering html")
		}
		return &Preview{Filename: base + ".html", ContentType: "text/html; charset=utf-8", Content: buf.String()}, nil
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "output %q", output)
}

type block struct {
	title       string
	description string
	body        string
}

func (s *PreviewService) blocks(g models.Gig, format string) []block {
	var out []block
	for _, sec := range s.Sections.List() {
		v, _ := g.Get(sec.ID)
		v = strings.TrimSpace(v)
		if v == "" {
			if format == FormatMinimal {
				continue
			}
			v = notSpecified
		}
		b := block{title: sec.Title, body: v}
		if format == FormatDetailed {
			b.description = sec.Description
		}
		out = append(out, b)
	}
	return out
}

func (s *PreviewService) markdown(g models.Gig, format string) string {
	var sb strings.Builder
	for i, b := range s.blocks(g, format) {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", b.title)
		if b.description != "" {
			fmt.Fprintf(&sb, "*%s*\n\n", b.description)
		}
		// Hard line breaks keep bullet lists typed with "•" on separate lines.
		sb.WriteString(strings.ReplaceAll(b.body, "\n", "  \n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (s *PreviewService) text(g models.Gig, format string) string {
	var sb strings.Builder
	for i, b := range s.blocks(g, format) {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.title + "\n")
		if b.description != "" {
			sb.WriteString(b.description + "\n")
		}
		sb.WriteString(b.body + "\n")
	}
	return sb.String()
}
