package mention

import (
	"strings"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Resolver maps mentions onto spreadsheet entities.
type Resolver struct {
	// Precedence is the namespace search order; the first namespace with a
	// case-insensitive name match wins. Empty means models.EntityTypes.
	Precedence []models.EntityType
}

// Parse resolves the mentions in text with the default precedence:
// named ranges, then tables, then sheets.
func Parse(text string, meta *models.SpreadsheetMetadata) []models.ContextEntity {
	return Resolver{}.Parse(text, meta)
}

// Parse scans text and resolves each distinct mention against meta.
//
// Mentions are deduplicated on their case-folded text before resolution, so a
// repeated mention is dropped even when the first occurrence resolved to
// nothing. Mentions that match no namespace are ignored. The result keeps
// first-seen order.
func (r Resolver) Parse(text string, meta *models.SpreadsheetMetadata) []models.ContextEntity {
	tokens := Scan(text)
	if len(tokens) == 0 || meta == nil {
		return nil
	}

	precedence := r.Precedence
	if len(precedence) == 0 {
		precedence = models.EntityTypes
	}

	var out []models.ContextEntity
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		key := tok.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		for _, typ := range precedence {
			if name, rng, ok := lookup(meta, typ, key); ok {
				out = append(out, models.ContextEntity{Raw: tok.Raw, Name: name, Type: typ, Range: rng})
				break
			}
		}
	}
	return out
}

// lookup finds the entity named key (case-folded) in one namespace.
func lookup(meta *models.SpreadsheetMetadata, typ models.EntityType, key string) (name, rng string, ok bool) {
	switch typ {
	case models.EntityNamedRange:
		for _, nr := range meta.NamedRanges {
			if strings.ToLower(nr.Name) == key {
				return nr.Name, nr.Range, true
			}
		}
	case models.EntityTable:
		for _, t := range meta.Tables {
			if strings.ToLower(t.Name) == key {
				return t.Name, t.Range, true
			}
		}
	case models.EntitySheet:
		for _, s := range meta.Sheets {
			if strings.ToLower(s.Title) == key {
				// Quoted so titles with spaces or apostrophes stay valid A1;
				// plain titles are unchanged.
				return s.Title, a1.QuoteSheetName(s.Title), true
			}
		}
	}
	return "", "", false
}

// Candidate is an entity a user may mention.
type Candidate struct {
	// Label is the canonical entity name.
	Label string
	// Type is the entity namespace.
	Type models.EntityType
	// Mention is the text that resolves to the entity, quoted when needed.
	// Empty when the name cannot be written as a mention.
	Mention string
}

// Candidates lists every mentionable entity: sheets, then named ranges, then tables.
func Candidates(meta *models.SpreadsheetMetadata) []Candidate {
	if meta == nil {
		return nil
	}
	out := make([]Candidate, 0, len(meta.Sheets)+len(meta.NamedRanges)+len(meta.Tables))
	for _, s := range meta.Sheets {
		out = append(out, Candidate{Label: s.Title, Type: models.EntitySheet, Mention: Format(s.Title)})
	}
	for _, nr := range meta.NamedRanges {
		out = append(out, Candidate{Label: nr.Name, Type: models.EntityNamedRange, Mention: Format(nr.Name)})
	}
	for _, t := range meta.Tables {
		out = append(out, Candidate{Label: t.Name, Type: models.EntityTable, Mention: Format(t.Name)})
	}
	return out
}

// Format renders name as a mention that Scan reads back as name. Quoted
// mentions have no escapes, so a name containing both quote characters has
// no mention form and yields "".
func Format(name string) string {
	switch {
	case isWord(name):
		return "@" + name
	case !strings.Contains(name, `"`):
		return `@"` + name + `"`
	case !strings.Contains(name, "'"):
		return "@'" + name + "'"
	}
	return ""
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}
