// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/json2csv/internal/tabledb"
	"github.com/pdiddy/json2csv/pkg/types"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <csv-glob> <database>",
		Short: "Load converted CSV tables into a SQLite database",
		Long: `Load reads every CSV file matched by <csv-glob> and writes it to the SQLite
database at <database> as a table named after the file (without .csv, with
non-alphanumeric characters replaced by underscores). Existing tables of the
same name are replaced. Every column is stored as TEXT.`,
		Args: exactArgs(2, "<csv-glob> <database>"),
		RunE: runLoad,
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg := types.LoadConfig{Pattern: args[0], DatabasePath: args[1]}

	db, err := tabledb.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.LoadGlob(cmd.Context(), cfg.Pattern, cmd.OutOrStdout())
	return err
}
