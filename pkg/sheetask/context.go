package sheetask

import (
	"context"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Context is the assembled prompt context for one question.
type Context struct {
	// Entities are the resolved mentions in first-seen order.
	Entities []models.ContextEntity
	// Document is the serialized context document.
	Document string
}

// BuildContext parses the mentions in text, fetches their data from src and
// serializes the result.
func BuildContext(ctx context.Context, src Source, spreadsheetID string, meta *models.SpreadsheetMetadata, text string, opts Options) (*Context, error) {
	if meta == nil {
		return nil, ErrNoMetadata
	}
	entities := opts.resolver().Parse(text, meta)
	resolved, err := Gather(ctx, src, spreadsheetID, entities)
	if err != nil {
		return nil, err
	}
	return &Context{
		Entities: entities,
		Document: opts.serializer().Document(resolved, meta),
	}, nil
}
