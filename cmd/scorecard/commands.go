package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/scorecard-go/internal/httpserver"
	"github.com/ukaji3/scorecard-go/internal/metrics"
	"github.com/ukaji3/scorecard-go/internal/store"
	"github.com/ukaji3/scorecard-go/pkg/scorecard"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/models"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/output"
	"github.com/ukaji3/scorecard-go/pkg/scorecard/writer"
	"go.uber.org/zap"
)

func newSummarizeCmd() *cobra.Command {
	var (
		outputPath  string
		asJSON      bool
		pretty      bool
		metricsFile string
		dbURL       string
		dbSchema    string
		dbTag       string
	)

	cmd := &cobra.Command{
		Use:   "summarize [input.xlsx]",
		Short: "Print the executive summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			data, err := e.load(args)
			if err != nil {
				return err
			}
			_, sum := scorecard.Analyze(data, e.opts)
			metrics.Observe(sum)

			var out []byte
			if asJSON || pretty {
				if out, err = output.ToJSON(sum, pretty); err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				out = append(out, '\n')
			} else {
				var buf bytes.Buffer
				if err := output.WriteText(&buf, sum); err != nil {
					return err
				}
				out = buf.Bytes()
			}
			if err := writeOutput(outputPath, out); err != nil {
				return err
			}

			if metricsFile != "" {
				if err := metrics.WriteTextfile(metricsFile); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			cfg := store.Config{URL: e.cfg.DB.URL, Schema: e.cfg.DB.Schema, Tag: e.cfg.DB.Tag}
			if dbURL != "" {
				cfg.URL = dbURL
			}
			if dbSchema != "" {
				cfg.Schema = dbSchema
			}
			if dbTag != "" {
				cfg.Tag = dbTag
			}
			if cfg.URL == "" {
				return nil
			}
			return saveRun(cmd.Context(), e.logger, cfg, sum)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output (implies --json)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format")
	cmd.Flags().StringVar(&dbURL, "db", "", "Postgres URL to record the run (default: config or SCORECARD_DB_URL)")
	cmd.Flags().StringVar(&dbSchema, "db-schema", "", "Postgres schema for recorded runs")
	cmd.Flags().StringVar(&dbTag, "db-tag", "", "Label stored with the run")
	return cmd
}

func saveRun(ctx context.Context, logger *zap.Logger, cfg store.Config, sum models.Summary) error {
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer s.Close()

	id, err := s.SaveRun(ctx, sum)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	logger.Info("Recorded run", zap.String("run_id", id), zap.String("schema", cfg.Schema))
	return nil
}

func newTemplateCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write a sample workbook with every canonical sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			var buf bytes.Buffer
			if err := writer.Template(&buf, e.opts.Today()); err != nil {
				return fmt.Errorf("building template: %w", err)
			}
			return writeOutput(outputPath, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "program_scorecard_template.xlsx", "Output file path")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		outputPath   string
		summarySheet bool
	)

	cmd := &cobra.Command{
		Use:   "export [input.xlsx]",
		Short: "Write the filtered tables to a new workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			data, err := e.load(args)
			if err != nil {
				return err
			}
			s, sum := scorecard.Analyze(data, e.opts)

			var summary *models.Summary
			if summarySheet {
				summary = &sum
			}
			var buf bytes.Buffer
			if err := writer.Write(&buf, s.AllTables(), summary); err != nil {
				return fmt.Errorf("exporting workbook: %w", err)
			}
			if outputPath == "" {
				outputPath = exportName(sum.AsOf, "xlsx")
			}
			if err := writeOutput(outputPath, buf.Bytes()); err != nil {
				return err
			}
			e.logger.Info("Exported workbook", zap.String("path", outputPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: program_scorecard_YYYYMMDD.xlsx)")
	cmd.Flags().BoolVar(&summarySheet, "summary-sheet", false, "Add a Summary sheet with metrics and a health chart")
	return cmd
}

func newCSVCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "csv [input.xlsx]",
		Short: "Write the widest filtered table as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			data, err := e.load(args)
			if err != nil {
				return err
			}
			s, sum := scorecard.Analyze(data, e.opts)

			var buf bytes.Buffer
			if err := writer.WriteCSV(&buf, s.AllTables()); err != nil {
				return fmt.Errorf("exporting csv: %w", err)
			}
			if outputPath == "" {
				outputPath = exportName(sum.AsOf, "csv")
			}
			return writeOutput(outputPath, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: program_scorecard_YYYYMMDD.csv)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve uploads, exports and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			if addr == "" {
				addr = e.cfg.Server.Addr
			}

			var runs httpserver.RunStore
			if e.cfg.DB.URL != "" {
				s, err := store.Open(context.Background(), store.Config{
					URL:    e.cfg.DB.URL,
					Schema: e.cfg.DB.Schema,
					Tag:    e.cfg.DB.Tag,
				})
				if err != nil {
					return fmt.Errorf("opening run store: %w", err)
				}
				defer s.Close()
				runs = s
			}

			h := httpserver.NewHandler(e.opts, e.cfg.Server.MaxUploadMB<<20, runs, e.logger)
			router := httpserver.NewRouter(h, e.logger)
			e.logger.Info("Starting server", zap.String("addr", addr), zap.Bool("store", runs != nil))
			return router.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config server.addr or :8080)")
	return cmd
}

// exportName is program_scorecard_YYYYMMDD.<ext>.
func exportName(asOf, ext string) string {
	return fmt.Sprintf("program_scorecard_%s.%s", strings.ReplaceAll(asOf, "-", ""), ext)
}
