// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/json2csv/internal/drugbank"
	"github.com/pdiddy/json2csv/pkg/types"
)

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <drugbank-xml> <output-directory>",
		Short: "Split a DrugBank XML export into JSONL tables",
		Long: `Parse streams the DrugBank XML export at <drugbank-xml> and writes one
line-delimited JSON file per table into <output-directory>: drugs, groups,
categories, synonyms, organisms, links, external_links, external_identifiers
and packagers. Every child record carries the drug's primary drugbank-id.

The output is the input of the converter:

  json2csv parse full_database.xml json/
  json2csv --postprocess 'json/*.json' csv/`,
		Args: exactArgs(2, "<drugbank-xml> <output-directory>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, v)
		},
	}
	cmd.Flags().BoolP("quiet", "q", false, "disable the progress bar")
	return cmd
}

func runParse(cmd *cobra.Command, args []string, v *viper.Viper) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	cfg := types.ParseConfig{
		Path:      args[0],
		OutputDir: args[1],
		Quiet:     quiet || v.GetBool("quiet"),
	}

	out := cmd.OutOrStdout()
	result, err := drugbank.Parse(cmd.Context(), cfg, out)
	if err != nil {
		return err
	}
	for _, t := range result.Tables {
		fmt.Fprintf(out, "wrote: %s (%d records)\n", t.Path, t.Rows)
	}
	fmt.Fprintf(out, "parsed %d drugs from %s, %d records\n", result.Drugs, cfg.Path, result.Rows())
	return nil
}
