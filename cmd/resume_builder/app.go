package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/assistant"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/seed"
	"github.com/jonathan/resume-builder/internal/session"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// application is everything a command needs, built once from configuration
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	editor  *editor.Editor
	session *session.Session
	model   llm.ChatModel
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", key, err))
	}
}

// newApplication loads configuration and the starting document. The chat
// model is only connected when withModel is set.
func newApplication(ctx context.Context, withModel bool) (*application, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	ed := editor.New(nil)
	doc, err := initialDocument(cfg, ed)
	if err != nil {
		return nil, err
	}

	a := &application{cfg: cfg, logger: log, editor: ed}

	if withModel {
		a.model, err = newChatModel(ctx, cfg, log)
		if err != nil {
			if !errors.Is(err, llm.ErrNoAPIKey) {
				return nil, err
			}
			// Without a key every turn answers with the apology
			log.Warn("no API key configured; assistant is unavailable", zap.String("provider", cfg.LLM.Provider))
		}
	}

	adapter := assistant.New(a.model, ed,
		assistant.WithTimeout(cfg.Assistant.Timeout),
		assistant.WithLogger(log.Named("assistant")))
	a.session = session.New(doc,
		session.WithEditor(ed),
		session.WithAssistant(adapter),
		session.WithLogger(log.Named("session")))

	return a, nil
}

// Close releases the model client and flushes the logger
func (a *application) Close() {
	a.session.Close()
	if a.model != nil {
		if err := a.model.Close(); err != nil {
			a.logger.Warn("failed to close model client", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

// printer builds the configured export engine
func (a *application) printer(engine string) (export.Printer, error) {
	if engine == "" {
		engine = a.cfg.Export.Engine
	}
	p, err := export.New(engine, a.cfg.Export.Timeout, a.logger.Named("export"))
	if err != nil {
		return nil, err
	}
	if b, ok := p.(*export.BrowserPrinter); ok && a.cfg.Export.ChromePath != "" {
		return b.WithExecPath(a.cfg.Export.ChromePath), nil
	}
	return p, nil
}

func initialDocument(cfg *config.Config, ed *editor.Editor) (types.Document, error) {
	var doc types.Document
	var err error
	if cfg.Document.Path != "" {
		doc, err = resumefile.Load(cfg.Document.Path)
	} else {
		doc, err = seed.ByName(cfg.Document.Seed)
	}
	if err != nil {
		return types.Document{}, err
	}

	if cfg.Document.Template != "" {
		doc = ed.SetTemplate(doc, types.Template(cfg.Document.Template))
	}
	if cfg.Document.ThemeColor != "" {
		doc = ed.SetThemeColor(doc, cfg.Document.ThemeColor)
	}
	return doc, nil
}

func newChatModel(ctx context.Context, cfg *config.Config, log *zap.Logger) (llm.ChatModel, error) {
	llmCfg, err := llm.DefaultConfigFor(llm.Provider(cfg.LLM.Provider))
	if err != nil {
		return nil, err
	}
	if cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "" {
		llmCfg.BaseURL = cfg.LLM.BaseURL
	}
	return llm.NewChatModel(ctx, llmCfg, cfg.ResolveAPIKey(), log)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
