package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/abhisek/bibletrack/internal/bible"
	"github.com/abhisek/bibletrack/internal/celebrate"
	"github.com/abhisek/bibletrack/internal/config"
	"github.com/abhisek/bibletrack/internal/fetchcache"
	"github.com/abhisek/bibletrack/internal/puzzle"
	"github.com/abhisek/bibletrack/internal/refdata"
	"github.com/abhisek/bibletrack/internal/store"
	"github.com/abhisek/bibletrack/internal/tracker"
)

// engine is everything a command needs to read and change progress.
type engine struct {
	cfg    *config.Config
	log    hclog.Logger
	store  *store.Store
	writer *store.Writer
	fetch  *fetchcache.Client
	svc    *tracker.Service
}

// openEngine loads config, opens the store, and rebuilds the tracker state.
// Long-running servers log celebrations instead of printing them.
func openEngine(cmd *cobra.Command, server bool) (*engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "bibletrack",
		Level:  cfg.Level(),
		Output: cmd.ErrOrStderr(),
	})

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	fetch, err := fetchcache.New(fetchcache.Config{
		BaseURL:       cfg.AssetBaseURL,
		Timeout:       cfg.FetchTimeout,
		MemoryEntries: cfg.CacheEntries,
	}, st, logger.Named("fetch"))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("fetch client: %w", err)
	}

	canon := bible.Standard()
	var ref refdata.Provider = refdata.CanonProvider{Canon: canon}
	var warmer puzzle.Warmer
	if cfg.AssetBaseURL != "" {
		ref = refdata.NewHTTPProvider(fetch, logger.Named("refdata"))
		warmer = fetch
	}

	var cel celebrate.Celebrator = celebrate.NewTerminal(cmd.OutOrStdout())
	if server {
		cel = celebrate.Log{Logger: logger.Named("celebrate")}
	}

	writer := store.NewWriter(st, logger.Named("store"), cfg.WriteQueueSize)
	svc, err := tracker.Build(cmd.Context(), st, tracker.Deps{
		Canon:      canon,
		Persister:  writer,
		Reference:  ref,
		Celebrator: cel,
		Puzzles:    puzzle.NewPicker(cfg.PuzzlePoolSize, warmer),
		Logger:     logger.Named("tracker"),
	})
	if err != nil {
		writer.Close()
		fetch.Wait()
		st.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	return &engine{
		cfg:    cfg,
		log:    logger,
		store:  st,
		writer: writer,
		fetch:  fetch,
		svc:    svc,
	}, nil
}

// Close waits for queued writes and background fetches, then closes the store.
func (e *engine) Close() error {
	e.fetch.Wait()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.writer.Flush(ctx); err != nil {
		e.log.Warn("flush writes", "error", err)
	}
	e.writer.Close()
	return e.store.Close()
}

// withEngine runs fn with an open engine and closes it afterwards.
func withEngine(cmd *cobra.Command, fn func(e *engine) error) (err error) {
	e, err := openEngine(cmd, false)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(e)
}
