package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/json2csv/internal/apperr"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of json2csv",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return apperr.Usage("version takes no arguments")
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "json2csv %s\n", version)
		},
	}
}
