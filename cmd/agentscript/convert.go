package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nga-tools/agentscript/convert"
	"github.com/nga-tools/agentscript/report"
	"github.com/nga-tools/agentscript/types"
)

const scriptExtension = ".agentscript"

type convertOptions struct {
	rulesPath string
	format    string
	outDir    string
	report    bool
	stdout    bool
	jobs      int
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [flags] <definition>...",
		Short: "Convert agent definition files to agent script documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "conversion rules document (JSON or YAML)")
	cmd.Flags().StringVar(&opts.format, "format", "", "input format: json or yaml (default: detect)")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "directory for output files (default: alongside each input)")
	cmd.Flags().BoolVar(&opts.report, "report", false, "write an analysis report next to each output")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the script to stdout (single input only)")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 4, "maximum concurrent conversions")
	return cmd
}

func runConvert(ctx context.Context, root *rootOptions, opts *convertOptions, inputs []string) error {
	if opts.stdout && len(inputs) > 1 {
		return fmt.Errorf("--stdout accepts a single input, got %d", len(inputs))
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}

	runID := uuid.NewString()
	logger := root.logger().With(zap.String("run_id", runID))
	defer logger.Sync()

	rulesDoc, err := loadRulesFile(opts.rulesPath, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := convertOne(logger, opts, rulesDoc, runID, input); err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// loadRulesFile reads the optional rules document. A missing file is an
// error; a malformed document is not, it degrades to defaults.
func loadRulesFile(path string, logger *zap.Logger) (*types.ConversionRules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules document: %w", err)
	}
	return convert.LoadRules(data, convert.FormatFromPath(path), logger), nil
}

func convertOne(logger *zap.Logger, opts *convertOptions, rulesDoc *types.ConversionRules, runID, input string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = convert.FormatFromPath(input)
	}
	def, err := convert.LoadBytes(data, format, logger)
	if err != nil {
		return err
	}

	result, err := convert.Convert(def, rulesDoc, logger)
	if err != nil {
		return err
	}
	if result.AlertMessage != "" {
		logger.Warn(result.AlertMessage, zap.String("input", input))
	}

	if opts.stdout {
		fmt.Print(result.Text)
	} else {
		outPath := outputPath(opts.outDir, input, scriptExtension)
		if err := os.WriteFile(outPath, []byte(result.Text), 0o644); err != nil {
			return err
		}
		logger.Info("converted",
			zap.String("input", input),
			zap.String("output", outPath),
			zap.Int("topics", result.TopicCount),
			zap.Int("actions", result.ActionCount))
	}

	if opts.report {
		return writeReport(opts, def, result, runID, input, sniffedFormat(format, data))
	}
	return nil
}

func writeReport(opts *convertOptions, def *types.AgentDefinition, result *convert.Result, runID, input, format string) error {
	doc := report.Build(def, result.Text, report.Metadata{
		InputFormat:        format,
		TopicCount:         result.TopicCount,
		ActionCount:        result.ActionCount,
		LegacyPlaceholders: result.LegacyPlaceholders,
		AlertMessage:       result.AlertMessage,
		StatusSuffix:       result.StatusSuffix,
	})

	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := outputPath(opts.outDir, input, "."+shortRunID(runID)+".report.json")
	return os.WriteFile(path, append(blob, '\n'), 0o644)
}

// outputPath swaps the input extension for ext, placing the file in outDir
// when one is given.
func outputPath(outDir, input, ext string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, stem+ext)
}

// sniffedFormat resolves the format actually used when none was forced.
func sniffedFormat(format string, data []byte) string {
	if format != "" {
		return format
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return convert.FormatJSON
	}
	return convert.FormatYAML
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
