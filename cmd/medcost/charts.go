package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/medcost/charts"
	"github.com/YuminosukeSato/medcost/dataset"
)

func newChartsCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render the exploration charts to files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCharts(cmd, format)
		},
	}
	f := cmd.Flags()
	f.StringVar(&a.flags.ChartDir, "out-dir", "", "Output directory (default charts)")
	f.StringVar(&format, "format", "png", "Image format: "+strings.Join(charts.Formats, " or "))
	return cmd
}

func (a *app) runCharts(cmd *cobra.Command, format string) error {
	format, err := charts.ParseFormat(format)
	if err != nil {
		return newUsageError(err)
	}
	table, err := dataset.Load(a.cfg.DatasetPath)
	if err != nil {
		return err
	}
	paths, err := charts.RenderAll(table, a.cfg.ChartDir, format)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
