package models

import "strings"

// Section ids, in the order the gig form presents them.
const (
	SectionTitle             = "title"
	SectionSummary           = "summary"
	SectionCompanyBackground = "companyBackground"
	SectionDeliverables      = "deliverables"
	SectionSkills            = "skills"
	SectionBudget            = "budget"
	SectionTimeline          = "timeline"
	SectionCommunication     = "communication"
	SectionOwnership         = "ownership"
	SectionConfidentiality   = "confidentiality"
	SectionNotes             = "notes"
)

// Gig is a freelance job posting split into named sections.
type Gig struct {
	Title             string `json:"title"`
	Summary           string `json:"summary"`
	CompanyBackground string `json:"companyBackground"`
	Deliverables      string `json:"deliverables"`
	Skills            string `json:"skills"`
	Budget            string `json:"budget"`
	Timeline          string `json:"timeline"`
	Communication     string `json:"communication"`
	Ownership         string `json:"ownership"`
	Confidentiality   string `json:"confidentiality"`
	Notes             string `json:"notes"`
}

// Entry is one section of a gig.
type Entry struct {
	ID    string
	Value string
}

func (g *Gig) fields() []struct {
	id string
	p  *string
} {
	return []struct {
		id string
		p  *string
	}{
		{SectionTitle, &g.Title},
		{SectionSummary, &g.Summary},
		{SectionCompanyBackground, &g.CompanyBackground},
		{SectionDeliverables, &g.Deliverables},
		{SectionSkills, &g.Skills},
		{SectionBudget, &g.Budget},
		{SectionTimeline, &g.Timeline},
		{SectionCommunication, &g.Communication},
		{SectionOwnership, &g.Ownership},
		{SectionConfidentiality, &g.Confidentiality},
		{SectionNotes, &g.Notes},
	}
}

// SectionIDs lists every section id in form order.
func SectionIDs() []string {
	var g Gig
	fs := g.fields()
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.id
	}
	return ids
}

// Get returns the content of section id.
func (g Gig) Get(id string) (string, bool) {
	for _, f := range g.fields() {
		if f.id == id {
			return *f.p, true
		}
	}
	return "", false
}

// Set replaces the content of section id. It reports false for unknown ids.
func (g *Gig) Set(id, value string) bool {
	for _, f := range g.fields() {
		if f.id == id {
			*f.p = value
			return true
		}
	}
	return false
}

// Entries returns every section in form order, including empty ones.
func (g Gig) Entries() []Entry {
	fs := g.fields()
	out := make([]Entry, len(fs))
	for i, f := range fs {
		out[i] = Entry{ID: f.id, Value: *f.p}
	}
	return out
}

// Filled returns the sections whose content is not blank.
func (g Gig) Filled() []Entry {
	var out []Entry
	for _, e := range g.Entries() {
		if strings.TrimSpace(e.Value) != "" {
			out = append(out, e)
		}
	}
	return out
}

// Without returns a copy of g with section id cleared.
func (g Gig) Without(id string) Gig {
	g.Set(id, "")
	return g
}

// GigFromNullable builds a Gig from a decoded JSON object whose values may be
// null. Nulls and unknown keys are dropped.
func GigFromNullable(m map[string]*string) Gig {
	var g Gig
	for id, v := range m {
		if v != nil {
			g.Set(id, *v)
		}
	}
	return g
}
