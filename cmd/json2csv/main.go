// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the json2csv CLI. The root command
// converts every JSONL file matched by a glob into a CSV file in an output
// directory, optionally reshaping the DrugBank tables afterwards. The load
// subcommand copies CSV tables into SQLite, and the parse subcommand splits a
// DrugBank XML export into the JSONL tables the converter reads.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/json2csv/internal/apperr"
	"github.com/pdiddy/json2csv/internal/convert"
	"github.com/pdiddy/json2csv/internal/postprocess"
	"github.com/pdiddy/json2csv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "json2csv <json-glob> <output-directory>",
		Short: "Convert line-delimited JSON files into CSV files",
		Long: `json2csv reads every file matched by <json-glob> as line-delimited JSON
(one value per line) and writes one CSV per file into <output-directory>.
The CSV columns are the union of the keys seen across the file's records, in
first-seen order. Records missing a key get an empty cell.

With --postprocess, the DrugBank tables (external_links, links,
external_identifiers, organisms, packagers) are then projected, reduced to
URL hosts, and deduplicated into *_resources.csv files. --manifest replaces
the built-in DrugBank steps with a YAML manifest.

A first argument equal to a subcommand name (help, load, parse, version)
runs that subcommand. Write such a glob as ./version to convert it.`,
		Args:          exactArgs(2, "<json-glob> <output-directory>"),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, v)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./json2csv.yaml or ~/.config/json2csv/json2csv.yaml)")
	rootCmd.Flags().BoolP("quiet", "q", false, "disable the progress bar")
	rootCmd.Flags().BoolP("postprocess", "p", false, "reshape the converted DrugBank tables after conversion")
	rootCmd.Flags().StringP("manifest", "m", "", "YAML post-processing manifest (implies --postprocess)")

	for _, key := range []string{"quiet", "postprocess", "manifest"} {
		_ = v.BindPFlag(key, rootCmd.Flags().Lookup(key))
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperr.Usage("%v", err)
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newParseCmd(v))
	return rootCmd
}

// exactArgs rejects any positional count other than n with a usage error.
// cobra validates arguments before the persistent pre-run, so a bad call
// fails as usage even when the config file is broken.
func exactArgs(n int, names string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return apperr.Usage("expected %d arguments (%s), got %d", n, names, len(args))
		}
		return nil
	}
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("json2csv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "json2csv"))
		}
	}

	v.SetEnvPrefix("JSON2CSV")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		if _, ok := err.(viper.ConfigParseError); ok {
			return apperr.Parse(v.ConfigFileUsed(), 0, err)
		}
		return apperr.IO("reading config", v.ConfigFileUsed(), err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

// convertConfig assembles the run settings from the positional arguments
// and the bound flag, env, and config-file values.
func convertConfig(args []string, v *viper.Viper) types.ConvertConfig {
	manifest := v.GetString("manifest")
	return types.ConvertConfig{
		Pattern:   args[0],
		OutputDir: args[1],
		Quiet:     v.GetBool("quiet"),
		PostProcess: types.PostProcessConfig{
			Enabled:      v.GetBool("postprocess") || manifest != "",
			ManifestPath: manifest,
		},
	}
}

func runConvert(cmd *cobra.Command, args []string, v *viper.Viper) error {
	cfg := convertConfig(args, v)

	// Resolve the manifest first so a bad one fails before anything is written.
	var (
		manifest postprocess.Manifest
		err      error
	)
	if cfg.PostProcess.Enabled {
		manifest = postprocess.DrugBankManifest()
		if cfg.PostProcess.ManifestPath != "" {
			manifest, err = postprocess.LoadManifest(cfg.PostProcess.ManifestPath)
			if err != nil {
				return err
			}
		}
	}

	out := cmd.OutOrStdout()
	result, err := convert.ConvertGlob(cfg, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "converted %d file(s), %d rows into %s\n", result.Converted(), result.Rows(), cfg.OutputDir)

	if !cfg.PostProcess.Enabled {
		return nil
	}
	_, err = postprocess.Run(manifest, cfg.OutputDir, out)
	return err
}

// run executes the command tree with args and returns the process exit code.
// Help requests and usage errors print the usage text and return 1. Other
// failures print the error followed by the usage text and return the code of
// the error's kind.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	helpShown := false
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		helpShown = true
		if cmd.Long != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", cmd.Long)
		}
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	})

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if helpShown {
		return apperr.KindUsage.ExitCode()
	}
	if err != nil {
		if cmd == nil {
			cmd = rootCmd
		}
		fmt.Fprintln(stdout, err)
		fmt.Fprint(stdout, cmd.UsageString())
		return apperr.ExitCode(err)
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
