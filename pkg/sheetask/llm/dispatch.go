package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
)

// SystemMessage frames the assistant's role; the context document is appended to it.
const SystemMessage = `You are an AI assistant analyzing Google Sheets data. The user's spreadsheet data is provided below as XML context. Answer questions by referencing this data. Be concise.`

// SystemPrompt joins SystemMessage and the serialized context document.
func SystemPrompt(document string) string {
	return SystemMessage + "\n\n" + document
}

// Query is one question with its prepared context.
type Query struct {
	Question string
	Context  string
	Model    string
}

// Client performs a single completion call against one provider.
type Client interface {
	Complete(ctx context.Context, model, system, question string) (string, error)
}

// Backend binds a provider to the key it needs and a client constructor.
type Backend struct {
	// KeyName is the store key holding the provider's API key.
	KeyName string
	// New builds a client for the given API key.
	New func(apiKey string) (Client, error)
}

// Dispatcher routes queries to provider backends through the model registry.
type Dispatcher struct {
	Models   Registry
	Backends map[Provider]Backend
	Keys     keystore.Getter
	Logger   *zap.Logger
}

// NewDispatcher returns a Dispatcher over the default registry and backends.
func NewDispatcher(keys keystore.Getter, opts ProviderOptions, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		Models:   Registry(DefaultModels),
		Backends: DefaultBackends(opts),
		Keys:     keys,
		Logger:   logger,
	}
}

// Resolve returns the registry entry for id.
func (d *Dispatcher) Resolve(id string) (Model, error) {
	m, ok := d.Models.Lookup(id)
	if !ok {
		return Model{}, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	return m, nil
}

// Query sends q to the provider serving q.Model and returns the answer text.
// A missing key fails before any network call; a failed call is not retried.
func (d *Dispatcher) Query(ctx context.Context, q Query) (string, error) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	model, err := d.Resolve(q.Model)
	if err != nil {
		return "", err
	}
	backend, ok := d.Backends[model.Provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, model.Provider)
	}

	key, err := d.apiKey(ctx, model.Provider, backend.KeyName)
	if err != nil {
		return "", err
	}

	client, err := backend.New(key)
	if err != nil {
		return "", &ProviderError{Provider: model.Provider, Err: err}
	}

	start := time.Now()
	log.Debug("querying model",
		zap.String("provider", string(model.Provider)),
		zap.String("model", model.ID),
		zap.Int("context_len", len(q.Context)),
		zap.Int("question_len", len(q.Question)))

	answer, err := client.Complete(ctx, model.ID, SystemPrompt(q.Context), q.Question)
	if err != nil {
		log.Warn("model query failed", zap.String("model", model.ID), zap.Error(err))
		var perr *ProviderError
		if errors.As(err, &perr) {
			return "", err
		}
		return "", &ProviderError{Provider: model.Provider, Err: err}
	}
	log.Info("model answered",
		zap.String("model", model.ID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("answer_len", len(answer)))
	return answer, nil
}

func (d *Dispatcher) apiKey(ctx context.Context, p Provider, name string) (string, error) {
	if d.Keys == nil {
		return "", &MissingKeyError{Provider: p, Key: name, Err: keystore.ErrNotFound}
	}
	key, err := d.Keys.Get(ctx, name)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return "", &MissingKeyError{Provider: p, Key: name, Err: err}
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	if strings.TrimSpace(key) == "" {
		return "", &MissingKeyError{Provider: p, Key: name, Err: keystore.ErrNotFound}
	}
	return key, nil
}
