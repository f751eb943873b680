package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/admission"
	"github.com/aretw0/admission/internal/cli"
	"github.com/aretw0/admission/internal/presentation/tui"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/generator"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write the score upload template to a file",
	Long: `Generates the score upload template without the HTTP server. The spreadsheet
format is used when compiled in, otherwise CSV. Use --out - for stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := loadRuntime(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")

		gen := admission.NewGenerator(generator.WithLogger(logger))
		dest, err := cli.WriteTemplate(cmd.Context(), gen, out, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if dest != "stdout" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s template to %s\n", gen.Format(), dest)
		}
		return nil
	},
}

var templateInstructionsCmd = &cobra.Command{
	Use:   "instructions",
	Short: "Show the template instructions",
	RunE: func(cmd *cobra.Command, args []string) error {
		md := domain.NewScoreTemplate().InstructionsMarkdown()

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}

		render, err := tui.NewRenderer(80)
		if err != nil {
			return err
		}
		text, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateInstructionsCmd)
	templateCmd.Flags().StringP("out", "o", "", "Output path (default score_upload_template.<format>, - for stdout)")
	templateInstructionsCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
