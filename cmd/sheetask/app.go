package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/sheetask-go/internal/config"
	"github.com/ukaji3/sheetask-go/internal/logging"
	"github.com/ukaji3/sheetask-go/pkg/sheetask"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/keystore"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/llm"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/source/gsheets"
	"github.com/ukaji3/sheetask-go/pkg/sheetask/source/xlsx"
)

// app carries the resources a command run needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	source        sheetask.Source
	spreadsheetID string

	keys    *keystore.Env
	closers []func() error
}

func loadApp(flags *rootFlags) (*app, error) {
	cfg, err := config.Load(configPath(flags))
	if err != nil {
		return nil, err
	}
	if flags.xlsxPath != "" {
		cfg.Spreadsheet.XLSX = flags.xlsxPath
	}
	if flags.spreadsheet != "" {
		cfg.Spreadsheet.ID = flags.spreadsheet
	}
	if flags.token != "" {
		cfg.Spreadsheet.AccessToken = flags.token
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, flags.verbose)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger}, nil
}

// openSource connects the configured spreadsheet. Unless needID is set, a
// Google Sheets source may be opened without a spreadsheet id, leaving the
// id to each request.
func (a *app) openSource(needID bool) error {
	if a.source != nil {
		return nil
	}
	sc := a.cfg.Spreadsheet
	if sc.XLSX != "" {
		wb, err := xlsx.Open(sc.XLSX, a.logger)
		if err != nil {
			return err
		}
		a.source = wb
		a.spreadsheetID = sc.XLSX
		a.closers = append(a.closers, wb.Close)
		return nil
	}

	ref := sc.ID
	if ref == "" {
		ref = sc.URL
	}
	var id string
	switch {
	case ref != "":
		var err error
		if id, err = gsheets.SpreadsheetID(ref); err != nil {
			return err
		}
	case needID:
		return errors.New("no spreadsheet: pass --spreadsheet or --xlsx")
	}
	if sc.AccessToken == "" {
		return fmt.Errorf("%w: pass --token or set SHEETASK_ACCESS_TOKEN", gsheets.ErrNoToken)
	}
	client := gsheets.NewClient(sc.AccessToken)
	client.BaseURL = sc.BaseURL
	client.Logger = a.logger
	a.source = client
	a.spreadsheetID = id
	return nil
}

// openKeys opens the key store, overlaid with keys from config and environment.
func (a *app) openKeys() (*keystore.Env, error) {
	if a.keys != nil {
		return a.keys, nil
	}
	db, err := keystore.OpenSQLite(a.cfg.Keystore.Path)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	a.keys = keystore.WithValues(db, a.cfg.APIKeys)
	return a.keys, nil
}

func (a *app) options(ctx context.Context, dryRun bool) (sheetask.Options, error) {
	opts, err := a.cfg.Options()
	if err != nil {
		return opts, err
	}
	if dryRun {
		opts.DryRun = true
	} else if a.keys != nil {
		opts.DryRun = opts.DryRun || keystore.Bool(ctx, a.keys, keystore.PrefDebug, false)
	}
	return opts, nil
}

// modelID picks the model: flag, then config, then the stored preference.
func (a *app) modelID(ctx context.Context, flag string) string {
	if flag != "" {
		return flag
	}
	if a.cfg.Model != "" {
		return a.cfg.Model
	}
	if a.keys != nil {
		if v, err := a.keys.Get(ctx, keystore.PrefModel); err == nil && v != "" {
			return v
		}
	}
	return llm.DefaultModelID
}

func (a *app) dispatcher() *llm.Dispatcher {
	var keys keystore.Getter
	if a.keys != nil {
		keys = a.keys
	}
	return llm.NewDispatcher(keys, a.cfg.Providers, a.logger)
}

func (a *app) assistant(opts sheetask.Options) *sheetask.Assistant {
	return &sheetask.Assistant{
		Source:        a.source,
		SpreadsheetID: a.spreadsheetID,
		Dispatcher:    a.dispatcher(),
		Logger:        a.logger,
		Options:       opts,
	}
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
