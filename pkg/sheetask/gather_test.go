package sheetask

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

func TestGatherKeepsOrder(t *testing.T) {
	src := testSource()
	entities := []models.ContextEntity{
		{Raw: "@expenses", Name: "Expenses", Type: models.EntityTable, Range: "'Raw Data'!A1:C4"},
		{Raw: "@Totals", Name: "Totals", Type: models.EntityNamedRange, Range: "Summary!B2:B5"},
		{Raw: "@Summary", Name: "Summary", Type: models.EntitySheet, Range: "Summary"},
	}

	got, err := Gather(context.Background(), src, "sheet-id", entities)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, rc := range got {
		assert.Equal(t, entities[i], rc.ContextEntity)
		assert.Equal(t, src.data[entities[i].Range], rc.Data)
	}
	assert.ElementsMatch(t, []string{"'Raw Data'!A1:C4", "Summary!B2:B5", "Summary"}, src.fetched)
}

func TestGatherFailureDropsPartialResult(t *testing.T) {
	src := testSource()
	src.fail = map[string]error{"Summary!B2:B5": errBoom}
	entities := []models.ContextEntity{
		{Name: "Expenses", Type: models.EntityTable, Range: "'Raw Data'!A1:C4"},
		{Name: "Totals", Type: models.EntityNamedRange, Range: "Summary!B2:B5"},
	}

	got, err := Gather(context.Background(), src, "sheet-id", entities)
	require.Error(t, err)
	assert.Nil(t, got)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Summary!B2:B5", ferr.Address)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "failed to fetch range Summary!B2:B5: boom", err.Error())
}

func TestGatherEmpty(t *testing.T) {
	got, err := Gather(context.Background(), testSource(), "sheet-id", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
