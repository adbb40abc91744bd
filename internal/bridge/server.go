// Package bridge exposes sheetask over a local WebSocket so a browser
// extension can delegate Sheets reads and model calls to it.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/pkg/sheetask"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/llm"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/source/gsheets"
)

const writeTimeout = 10 * time.Second

// Server handles bridge connections.
type Server struct {
	Source     sheetask.Source
	Dispatcher *llm.Dispatcher
	Options    sheetask.Options
	// SpreadsheetID is used when a request names none.
	SpreadsheetID string
	Logger        *zap.Logger

	upgrader websocket.Upgrader
}

// NewServer returns a Server reading from src and querying through d.
func NewServer(src sheetask.Source, d *llm.Dispatcher, opts sheetask.Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Source:     src,
		Dispatcher: d,
		Options:    opts,
		Logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     allowOrigin,
		},
	}
}

// allowOrigin admits non-browser clients and browser extensions.
func allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" ||
		strings.HasPrefix(origin, "chrome-extension://") ||
		strings.HasPrefix(origin, "moz-extension://")
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.Logger.Info("bridge listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("bridge shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := s.Logger.With(zap.String("conn", uuid.NewString()))
	log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read failed", zap.Error(err))
			}
			log.Debug("client disconnected")
			return
		}

		resp := s.Handle(ctx, data)
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("write failed", zap.String("id", resp.ID), zap.Error(err))
			return
		}
	}
}

// Handle decodes one request and produces its response.
func (s *Server) Handle(ctx context.Context, data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: fmt.Sprintf("invalid request: %v", err)}
	}

	result, err := s.dispatch(ctx, req)
	if err != nil {
		s.Logger.Debug("request failed", zap.String("id", req.ID), zap.String("type", req.Type), zap.Error(err))
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Success: true, Data: result}
}

var errUnsupported = errors.New("unsupported message type")

func (s *Server) dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Type {
	case TypeQueryLLM:
		if _, err := s.Dispatcher.Resolve(req.Model); err != nil {
			return nil, fmt.Errorf("Unknown model: %s", req.Model)
		}
		return s.Dispatcher.Query(ctx, llm.Query{
			Question: req.Question,
			Context:  req.Context,
			Model:    req.Model,
		})

	case TypeGetRangeData:
		id, err := s.spreadsheetID(req)
		if err != nil {
			return nil, err
		}
		return s.Source.Values(ctx, id, req.Range)

	case TypeGetSheetMetadata:
		id, err := s.spreadsheetID(req)
		if err != nil {
			return nil, err
		}
		return s.Source.Metadata(ctx, id)

	case TypeGetActiveSpreadsheet:
		if req.URL == "" {
			if s.SpreadsheetID != "" {
				return s.SpreadsheetID, nil
			}
			return nil, gsheets.ErrNotSpreadsheet
		}
		return gsheets.SpreadsheetID(req.URL)

	case TypeAsk:
		return s.ask(ctx, req)
	}
	return nil, errUnsupported
}

func (s *Server) ask(ctx context.Context, req Request) (*AskResult, error) {
	id, err := s.spreadsheetID(req)
	if err != nil {
		return nil, err
	}
	model := req.Model
	if model == "" {
		model = llm.DefaultModelID
	}
	if _, err := s.Dispatcher.Resolve(model); err != nil {
		return nil, fmt.Errorf("Unknown model: %s", model)
	}

	a := &sheetask.Assistant{
		Source:        s.Source,
		SpreadsheetID: id,
		Dispatcher:    s.Dispatcher,
		Logger:        s.Logger,
		Options:       s.Options,
	}
	ans, err := a.Ask(ctx, req.Question, model)
	if err != nil {
		return nil, err
	}

	mentions := make([]string, len(ans.Context.Entities))
	for i, e := range ans.Context.Entities {
		mentions[i] = e.Name
	}
	return &AskResult{
		Submission: ans.Submission,
		Model:      ans.Model.ID,
		Mentions:   mentions,
		Answer:     ans.Text,
	}, nil
}

func (s *Server) spreadsheetID(req Request) (string, error) {
	if req.SpreadsheetID != "" {
		return req.SpreadsheetID, nil
	}
	if s.SpreadsheetID != "" {
		return s.SpreadsheetID, nil
	}
	return "", errors.New("spreadsheetId is required")
}
