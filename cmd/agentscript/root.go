package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	verbose bool
	logJSON bool
}

// logger builds the process logger. Console output by default, JSON when
// requested, Debug level when verbose.
func (o *rootOptions) logger() *zap.Logger {
	var cfg zap.Config
	if o.logJSON {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if o.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "agentscript",
		Short:         "Convert agent definition documents to agent script text",
		Long:          "agentscript converts exported agent definitions (capability bundles,\npre-structured topic documents, or minimal identity documents) into the\ncanonical agent script format, with optional conversion rules overrides.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "log as JSON instead of console output")

	cmd.AddCommand(
		newConvertCmd(opts),
		newDetectCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
