// Package serialize renders resolved spreadsheet references as the XML-shaped
// context document embedded in model prompts.
package serialize

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/a1"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// DefaultMaxRows is the number of data rows kept per reference.
const DefaultMaxRows = 200

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape makes s safe for XML text and attribute values.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Options configures the document.
type Options struct {
	// MaxRows caps the data rows emitted per reference. Zero means DefaultMaxRows.
	MaxRows int
}

// Document serializes resolved with the default options.
func Document(resolved []models.ResolvedContext, meta *models.SpreadsheetMetadata) string {
	return Options{}.Document(resolved, meta)
}

// Document renders every non-empty reference inside a single <spreadsheet>
// root carrying the spreadsheet title.
//
// Row 0 of each reference's data is its header row. Empty headers and empty
// cells are omitted, as are rows with no non-empty cell. When a reference has
// more than MaxRows data rows, only the first MaxRows are written and a
// <truncated> element records the true total.
func (o Options) Document(resolved []models.ResolvedContext, meta *models.SpreadsheetMetadata) string {
	title := ""
	if meta != nil {
		title = meta.Title
	}

	var b strings.Builder
	b.WriteString(`<spreadsheet title="`)
	b.WriteString(Escape(title))
	b.WriteString("\">\n")
	for i := range resolved {
		o.writeReference(&b, &resolved[i])
	}
	b.WriteString("</spreadsheet>")
	return b.String()
}

func (o Options) maxRows() int {
	if o.MaxRows > 0 {
		return o.MaxRows
	}
	return DefaultMaxRows
}

func (o Options) writeReference(b *strings.Builder, ref *models.ResolvedContext) {
	if len(ref.Data) == 0 {
		return
	}

	headers := ref.Data[0]
	rows := ref.Data[1:]
	total := len(rows)
	limit := o.maxRows()
	truncated := total > limit
	if truncated {
		rows = rows[:limit]
	}

	b.WriteString(`  <reference name="`)
	b.WriteString(Escape(ref.Name))
	b.WriteString(`" type="`)
	b.WriteString(ref.Type.String())
	b.WriteString(`" range="`)
	b.WriteString(Escape(ref.Range))
	b.WriteString("\">\n")

	if hasValue(headers) {
		b.WriteString("    <schema>\n")
		for col, header := range headers {
			if header == "" {
				continue
			}
			b.WriteString(`      <column index="`)
			b.WriteString(a1.IndexToLetter(col))
			b.WriteString(`" header="`)
			b.WriteString(Escape(header))
			b.WriteString("\" />\n")
		}
		b.WriteString("    </schema>\n")
	}

	open := false
	for i, row := range rows {
		if !hasValue(row) {
			continue
		}
		if !open {
			b.WriteString("    <data>\n")
			open = true
		}
		b.WriteString(`      <row index="`)
		b.WriteString(strconv.Itoa(i + 2))
		b.WriteString("\">\n")
		for col, cell := range row {
			if cell == "" {
				continue
			}
			b.WriteString(`        <cell col="`)
			b.WriteString(a1.IndexToLetter(col))
			b.WriteString(`">`)
			b.WriteString(Escape(cell))
			b.WriteString("</cell>\n")
		}
		b.WriteString("      </row>\n")
	}
	if open {
		b.WriteString("    </data>\n")
	}

	if truncated {
		n := strconv.Itoa(limit)
		b.WriteString(`    <truncated rows="`)
		b.WriteString(n)
		b.WriteString(`" total="`)
		b.WriteString(strconv.Itoa(total))
		b.WriteString(`" reason="Row limit exceeded. First `)
		b.WriteString(n)
		b.WriteString(" data rows included.\" />\n")
	}

	b.WriteString("  </reference>\n")
}

func hasValue(row []string) bool {
	for _, v := range row {
		if v != "" {
			return true
		}
	}
	return false
}
