package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ukaji3/scorecard-go/internal/config"
	"github.com/ukaji3/scorecard-go/internal/logging"
	"github.com/ukaji3/scorecard-go/internal/metrics"
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/sample"
	"go.uber.org/zap"
)

// flagValues holds the persistent flags so they can be applied without cobra.
type flagValues struct {
	AsOf            string
	Lookahead       int
	Workstreams     []string
	Owners          []string
	Health          []string
	IncludeComplete bool
}

func currentFlags() flagValues {
	return flagValues{
		AsOf:            asOf,
		Lookahead:       lookahead,
		Workstreams:     workstreams,
		Owners:          owners,
		Health:          health,
		IncludeComplete: includeComplete,
	}
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// buildOptions layers the flags over the configuration file.
func buildOptions(cfg config.Config, fv flagValues) (scorecard.Options, error) {
	opts := scorecard.DefaultOptions()
	opts.LookaheadDays = cfg.LookaheadDays
	if cfg.TimelineLimit != nil {
		opts.TimelineLimit = *cfg.TimelineLimit
	}
	opts.TopRisks = cfg.TopRisks
	opts.Synonyms = cfg.Synonyms
	opts.Filter = scorecard.Filter{
		Workstreams:     cfg.Filter.Workstreams,
		Owners:          cfg.Filter.Owners,
		Health:          cfg.Filter.Health,
		IncludeComplete: cfg.Filter.IncludeComplete,
	}

	if fv.AsOf != "" {
		d, err := time.Parse("2006-01-02", fv.AsOf)
		if err != nil {
			return opts, fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", fv.AsOf)
		}
		opts.AsOf = d
	}
	if fv.Lookahead < 0 {
		return opts, fmt.Errorf("invalid --lookahead %d", fv.Lookahead)
	}
	if fv.Lookahead > 0 {
		opts.LookaheadDays = fv.Lookahead
	}
	if len(fv.Workstreams) > 0 {
		opts.Filter.Workstreams = fv.Workstreams
	}
	if len(fv.Owners) > 0 {
		opts.Filter.Owners = fv.Owners
	}
	if len(fv.Health) > 0 {
		opts.Filter.Health = fv.Health
	}
	if fv.IncludeComplete {
		opts.Filter.IncludeComplete = true
	}
	return opts, nil
}

// env is what every subcommand needs before it runs.
type env struct {
	cfg    config.Config
	opts   scorecard.Options
	logger *zap.Logger
}

func setup() (*env, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := buildOptions(cfg, currentFlags())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, opts: opts, logger: logger}, nil
}

// load reads the input workbook, or the sample data when no path is given.
func (e *env) load(args []string) (models.Scorecard, error) {
	if len(args) == 0 {
		e.logger.Info("No input given, using sample data")
		metrics.RecordLoad("sample", nil)
		return sample.Load(e.opts.Today()), nil
	}

	s, warnings, err := scorecard.LoadFile(args[0], e.opts)
	if err != nil {
		metrics.RecordLoad("invalid", nil)
		return models.Scorecard{}, fmt.Errorf("loading %s: %w", args[0], err)
	}
	metrics.RecordLoad("ok", warnings)
	logging.SheetWarnings(e.logger, args[0], warnings)
	return s, nil
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
