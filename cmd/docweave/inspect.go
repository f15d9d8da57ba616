package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docweave/internal/pipeline"
)

var inspectIROnly bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <input-file>",
	Short: "Parse a document and print its structure as JSON without rendering",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()

		conv := pipeline.NewConverter(cfg, log)
		res, err := conv.Parse(f, filepath.Base(input))
		if err != nil {
			return err
		}

		var out any = map[string]any{
			"document": res.Document,
			"report":   res.Report,
		}
		if inspectIROnly {
			out = res.Document
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectIROnly, "ir-only", false, "print only the intermediate representation")
}
