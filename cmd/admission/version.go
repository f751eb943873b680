package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/admission"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of admission",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "admission version %s (%s)\n",
			strings.TrimSpace(admission.Version), admission.NewGenerator().Format())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
