package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docweave/internal/pipeline"
)

var fromIROutput string

var fromIRCmd = &cobra.Command{
	Use:   "from-ir <ir-file>",
	Short: "Render a .docx from a previously saved intermediate representation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		output := fromIROutput
		if output == "" {
			output = strings.TrimSuffix(strings.TrimSuffix(input, ".json"), ".ir") + ".docx"
		}

		data, err := os.ReadFile(input)
		if err != nil {
			return err
		}

		out, err := os.Create(output)
		if err != nil {
			return err
		}

		conv := pipeline.NewConverter(cfg, log)
		doc, err := conv.FromIR(data, out)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(output)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d blocks)\n", output, len(doc.Body))
		return nil
	},
}

func init() {
	fromIRCmd.Flags().StringVarP(&fromIROutput, "output", "o", "", "output .docx path (default: IR name with .docx)")
}
