// Package logging builds the zap logger shared by the CLI and HTTP server.
package logging

import (
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger, or a development console logger at
// debug level when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// SheetWarnings logs each load warning with its sheet and component.
func SheetWarnings(log *zap.Logger, source string, warnings []*scorecard.SheetError) {
	for _, w := range warnings {
		log.Warn("sheet skipped or defaulted",
			zap.String("source", source),
			zap.String("sheet", w.SheetName),
			zap.String("component", w.Component),
			zap.Error(w.Err),
		)
	}
}
