package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docweave/internal/pipeline"
)

var (
	convertOutput  string
	convertSaveIR  bool
	convertIRPath  string
	convertReport  bool
	convertRepPath string
	convertMarkLow bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-file>",
	Short: "Convert a document to .docx with heading structure inferred",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := convertOutput
		if output == "" {
			output = strings.TrimSuffix(input, filepath.Ext(input)) + ".docx"
		}
		if convertMarkLow {
			cfg.Style.MarkLowConfidence = true
		}

		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()

		out, err := os.Create(output)
		if err != nil {
			return err
		}

		conv := pipeline.NewConverter(cfg, log)
		res, err := conv.Convert(f, filepath.Base(input), out)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(output)
			return err
		}

		if convertSaveIR || convertIRPath != "" {
			irPath := convertIRPath
			if irPath == "" {
				irPath = strings.TrimSuffix(output, ".docx") + ".ir.json"
			}
			data, err := res.Document.ToJSON()
			if err != nil {
				return fmt.Errorf("serialize ir: %w", err)
			}
			if err := os.WriteFile(irPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", irPath)
		}

		if convertReport || convertRepPath != "" {
			data, err := res.Report.ToJSON()
			if err != nil {
				return fmt.Errorf("serialize report: %w", err)
			}
			if convertRepPath != "" {
				if err := os.WriteFile(convertRepPath, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", convertRepPath)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d headings, %d low-confidence)\n",
			output, headingTotal(res), len(res.Report.LowConfidence))
		return nil
	},
}

func headingTotal(res *pipeline.Result) int {
	total := 0
	for _, n := range res.Report.HeadingsByLevel {
		total += n
	}
	return total
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output .docx path (default: input name with .docx)")
	convertCmd.Flags().BoolVar(&convertSaveIR, "save-ir", false, "write the intermediate representation alongside the output")
	convertCmd.Flags().StringVar(&convertIRPath, "ir-path", "", "explicit path for the IR sidecar (implies --save-ir)")
	convertCmd.Flags().BoolVar(&convertReport, "report", false, "print the conversion report to stdout")
	convertCmd.Flags().StringVar(&convertRepPath, "report-path", "", "write the conversion report to a file")
	convertCmd.Flags().BoolVar(&convertMarkLow, "mark-low-confidence", false, "highlight low-confidence headings in the output")
}
