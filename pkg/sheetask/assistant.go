package sheetask

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/llm"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/models"
)

// Assistant answers questions about one spreadsheet.
type Assistant struct {
	Source        Source
	SpreadsheetID string
	Dispatcher    *llm.Dispatcher
	Logger        *zap.Logger
	Options       Options

	mu   sync.Mutex
	meta *models.SpreadsheetMetadata
}

// Answer is the outcome of one submission.
type Answer struct {
	// Submission identifies the submission in logs.
	Submission string
	Model      llm.Model
	Context    *Context
	Text       string
}

func (a *Assistant) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// Refresh loads the spreadsheet metadata. The result is held until the next
// Refresh.
func (a *Assistant) Refresh(ctx context.Context) (*models.SpreadsheetMetadata, error) {
	meta, err := a.Source.Metadata(ctx, a.SpreadsheetID)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	a.mu.Lock()
	a.meta = meta
	a.mu.Unlock()

	a.logger().Debug("metadata loaded",
		zap.String("title", meta.Title),
		zap.Int("sheets", len(meta.Sheets)),
		zap.Int("named_ranges", len(meta.NamedRanges)),
		zap.Int("tables", len(meta.Tables)))
	return meta, nil
}

// Metadata returns the held metadata, loading it on first use.
func (a *Assistant) Metadata(ctx context.Context) (*models.SpreadsheetMetadata, error) {
	a.mu.Lock()
	meta := a.meta
	a.mu.Unlock()
	if meta != nil {
		return meta, nil
	}
	return a.Refresh(ctx)
}

// Context assembles the context document for text without querying a model.
func (a *Assistant) Context(ctx context.Context, text string) (*Context, error) {
	meta, err := a.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	return BuildContext(ctx, a.Source, a.SpreadsheetID, meta, text, a.Options)
}

// Ask resolves the mentions in question, gathers their data and sends the
// question with its context to modelID. An empty modelID selects
// llm.DefaultModelID. In dry-run mode the assembled context is returned as
// the answer instead.
func (a *Assistant) Ask(ctx context.Context, question, modelID string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if modelID == "" {
		modelID = llm.DefaultModelID
	}
	model, err := a.Dispatcher.Resolve(modelID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := a.logger().With(zap.String("submission", id), zap.String("model", model.ID))
	start := time.Now()

	c, err := a.Context(ctx, question)
	if err != nil {
		log.Warn("context assembly failed", zap.Error(err))
		return nil, err
	}
	log.Info("context assembled",
		zap.Int("entities", len(c.Entities)),
		zap.Int("document_len", len(c.Document)),
		zap.Duration("elapsed", time.Since(start)))

	ans := &Answer{Submission: id, Model: model, Context: c}
	if a.Options.DryRun {
		ans.Text = DryRun(model.Provider, question, c.Document)
		return ans, nil
	}

	ans.Text, err = a.Dispatcher.Query(ctx, llm.Query{
		Question: question,
		Context:  c.Document,
		Model:    model.ID,
	})
	if err != nil {
		return nil, err
	}
	return ans, nil
}

// DryRun renders the stand-in answer used when no model is called.
func DryRun(provider llm.Provider, question, document string) string {
	return fmt.Sprintf("--- DRY RUN (%s) ---\n\n== Question ==\n%s\n\n== Context XML ==\n%s", provider, question, document)
}
