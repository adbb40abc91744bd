// Package sheetask resolves @-mentions in a question into spreadsheet data and
// assembles the context document sent to a language model.
package sheetask

import (
	"github.com/ukaji3/sheetask-go/pkg/sheetask/mention"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/serialize"
)

// Options configures context assembly.
type Options struct {
	// MaxRows caps the data rows serialized per reference.
	// Zero means serialize.DefaultMaxRows.
	MaxRows int
	// Precedence is the namespace order used to resolve mentions.
	// Empty means named ranges, then tables, then sheets.
	Precedence []models.EntityType
	// DryRun skips the model call and answers with the assembled context.
	DryRun bool
}

// DefaultOptions returns default assembly options.
func DefaultOptions() Options {
	return Options{
		MaxRows:    serialize.DefaultMaxRows,
		Precedence: models.EntityTypes,
	}
}

func (o Options) resolver() mention.Resolver {
	return mention.Resolver{Precedence: o.Precedence}
}

func (o Options) serializer() serialize.Options {
	return serialize.Options{MaxRows: o.MaxRows}
}
