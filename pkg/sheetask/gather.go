package sheetask

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Source supplies spreadsheet metadata and cell values.
type Source interface {
	// Metadata returns the sheets, named ranges and tables of a spreadsheet.
	Metadata(ctx context.Context, spreadsheetID string) (*models.SpreadsheetMetadata, error)
	// Values returns the cell values of an A1 range, row-major; an empty
	// range yields an empty grid.
	Values(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// Gather fetches the data of every entity concurrently, one request per
// entity. The result has the same order as entities. If any fetch fails the
// others are cancelled and no partial result is returned.
func Gather(ctx context.Context, src Source, spreadsheetID string, entities []models.ContextEntity) ([]models.ResolvedContext, error) {
	out := make([]models.ResolvedContext, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entities {
		g.Go(func() error {
			data, err := src.Values(gctx, spreadsheetID, e.Range)
			if err != nil {
				return &FetchError{Address: e.Range, Err: err}
			}
			out[i] = models.ResolvedContext{ContextEntity: e, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
