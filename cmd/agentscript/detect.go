package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nga-tools/agentscript/variables"
)

type detectOptions struct {
	rulesPath string
	quiet     bool
}

func newDetectCmd(root *rootOptions) *cobra.Command {
	opts := &detectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [flags] <definition>...",
		Short: "Scan definition files for legacy variable placeholders",
		Long:  "detect reports which input files contain legacy variable placeholder\nsyntax that convert would rewrite to the canonical @variables form.\nExits non-zero when any file contains legacy placeholders.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(root, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "", "conversion rules document (JSON or YAML)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress per-file output, set the exit code only")
	return cmd
}

func runDetect(root *rootOptions, opts *detectOptions, inputs []string) error {
	logger := root.logger()
	defer logger.Sync()

	rulesDoc, err := loadRulesFile(opts.rulesPath, logger)
	if err != nil {
		return err
	}

	rw := variables.NewRewriter(rulesDoc, logger)

	found := 0
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}
		text := string(data)
		if !rw.Detect(text) {
			if !opts.quiet {
				fmt.Printf("%s: no legacy placeholders\n", input)
			}
			continue
		}
		found++
		if !opts.quiet {
			names := variables.ExtractNames(rw.Rewrite(text))
			fmt.Printf("%s: legacy placeholders found: %s\n", input, strings.Join(names, ", "))
		}
	}

	if found > 0 {
		return fmt.Errorf("%d of %d file(s) contain legacy placeholders", found, len(inputs))
	}
	return nil
}
