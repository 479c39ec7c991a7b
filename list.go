package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GEizaguirre/duckdb-tpc/benchmark"
	"github.com/GEizaguirre/duckdb-tpc/config"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <benchmark>",
		Short: "List the query files found for a benchmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runList(cfg, args[0], cmd.OutOrStdout())
		},
	}
}

func runList(cfg config.Config, suiteName string, out io.Writer) error {
	suite, err := benchmark.Lookup(suiteName)
	if err != nil {
		return err
	}
	base, err := queriesBase(cfg)
	if err != nil {
		return err
	}
	queries, err := suite.Queries(base)
	if err != nil {
		return err
	}
	for _, query := range queries {
		fmt.Fprintf(out, "%v\t%v\n", query.Number, query.Path)
	}
	return nil
}
