// Package sections holds the registry of gig form sections: their display
// metadata, which ones are required, and the keywords used to recognise them
// in free-form model output.
package sections

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/justsurfingit/gig-builder/internal/models"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed sections.yaml
var defaultYAML []byte

// Section describes one field of the gig form.
type Section struct {
	ID          string `yaml:"id" json:"id"`
	Keyword     string `yaml:"keyword" json:"-"`
	Title       string `yaml:"title" json:"title"`
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	Description string `yaml:"description" json:"description"`
	Example     string `yaml:"example" json:"example"`
	TextArea    bool   `yaml:"textArea" json:"textArea"`
	Required    bool   `yaml:"required" json:"required"`
}

// Registry is an ordered, read-only set of sections.
type Registry struct {
	list []Section
	byID map[string]int
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the registry built into the binary.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(defaultYAML)
		if err != nil {
			panic(err)
		}
		defaultReg = r
	})
	return defaultReg
}

// Load parses a YAML list of sections. Every id must be a known gig section
// and appear at most once.
func Load(b []byte) (*Registry, error) {
	var list []Section
	if err := yaml.Unmarshal(b, &list); err != nil {
		return nil, errors.Wrap(err, "parsing sections")
	}

	var gig models.Gig
	r := &Registry{list: list, byID: make(map[string]int, len(list))}
	for i, s := range list {
		if _, ok := gig.Get(s.ID); !ok {
			return nil, errors.Errorf("unknown section id %q", s.ID)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, errors.Errorf("duplicate section id %q", s.ID)
		}
		r.byID[s.ID] = i
	}
	return r, nil
}

// List returns every section in form order.
func (r *Registry) List() []Section {
	return append([]Section(nil), r.list...)
}

func (r *Registry) Get(id string) (Section, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Section{}, false
	}
	return r.list[i], true
}

func (r *Registry) IsRequired(id string) bool {
	s, ok := r.Get(id)
	return ok && s.Required
}

// Title returns the display title for id, or id itself when unknown.
func (r *Registry) Title(id string) string {
	if s, ok := r.Get(id); ok {
		return s.Title
	}
	return id
}

// Missing returns the ids of required sections that are blank in g.
func (r *Registry) Missing(g models.Gig) []string {
	missing := []string{}
	for _, s := range r.list {
		if !s.Required {
			continue
		}
		if v, _ := g.Get(s.ID); strings.TrimSpace(v) == "" {
			missing = append(missing, s.ID)
		}
	}
	return missing
}

// MatchKeyword guesses which section a model reply is about. The first section
// whose keyword appears as "for <keyword>" or "<keyword> section" wins. It
// returns "" when nothing matches.
func (r *Registry) MatchKeyword(text string) string {
	lower := strings.ToLower(text)
	for _, s := range r.list {
		kw := strings.ToLower(s.Keyword)
		if kw == "" {
			continue
		}
		if strings.Contains(lower, "for "+kw) || strings.Contains(lower, kw+" section") {
			return s.ID
		}
	}
	return ""
}
