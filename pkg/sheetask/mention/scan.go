// Package mention extracts @-mentions from free-form text and resolves them
// against spreadsheet metadata.
//
// Mention grammar:
//
//	mention = "@" ( dquoted | squoted | word )
//	dquoted = `"` 1*( any char except `"` ) `"`
//	squoted = "'" 1*( any char except "'" ) "'"
//	word    = 1*( ASCII letter | digit | "_" )
//
// Alternatives are tried in that order; scanning is left to right and
// matches never overlap.
package mention

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@("[^"]+"|'[^']+'|\w+)`)

// Token is one mention found in the input.
type Token struct {
	// Raw is the literal matched text, including the @ and any quotes.
	Raw string
	// Name is the mention text with surrounding quotes removed.
	Name string
	// Offset is the byte offset of the @ in the input.
	Offset int
}

// Key returns the case-folded lookup key.
func (t Token) Key() string {
	return strings.ToLower(t.Name)
}

// Quoted reports whether the mention used a quoted form.
func (t Token) Quoted() bool {
	return len(t.Raw) > 1 && (t.Raw[1] == '"' || t.Raw[1] == '\'')
}

// Scan returns every mention in text in order of appearance, duplicates included.
func Scan(text string) []Token {
	matches := mentionPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		body := text[m[2]:m[3]]
		if c := body[0]; c == '"' || c == '\'' {
			body = body[1 : len(body)-1]
		}
		tokens = append(tokens, Token{
			Raw:    text[m[0]:m[1]],
			Name:   body,
			Offset: m[0],
		})
	}
	return tokens
}
