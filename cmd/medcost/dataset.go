package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

func newDatasetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect or convert the reference dataset",
	}
	cmd.AddCommand(newDatasetHeadCmd(a), newDatasetConvertCmd(a))
	return cmd
}

func newDatasetHeadCmd(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "head",
		Short: "Print the first rows of the dataset",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := dataset.Load(a.cfg.DatasetPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "age\tsex\tbmi\tchildren\tsmoker\tregion\tcharges\t")
			for _, r := range table.Head(n) {
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%d\t%s\t%s\t%.2f\t\n",
					r.Age, r.Sex, r.BMI, r.Children, r.Smoker, r.Region, r.Charges)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "rows", "n", 5, "Number of rows")
	return cmd
}

func newDatasetConvertCmd(a *app) *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the dataset between CSV and Parquet (chosen by extension)",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in == "" {
				in = a.cfg.DatasetPath
			}
			return convertDataset(cmd, in, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in, "in", "", "Input dataset (defaults to --dataset)")
	f.StringVar(&out, "out", "", "Output path ending in .csv or .parquet (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func convertDataset(cmd *cobra.Command, in, out string) error {
	format, err := dataset.Format(out)
	if err != nil {
		return err
	}
	table, err := dataset.Load(in)
	if err != nil {
		return err
	}

	switch format {
	case "parquet":
		err = dataset.WriteParquet(out, table.Records())
	default:
		err = writeCSVFile(out, table.Records())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", table.Len(), out)
	return nil
}

func writeCSVFile(path string, records []dataset.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	defer f.Close()
	if err := dataset.WriteCSV(f, records); err != nil {
		return errors.NewIOError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.NewIOError("close", path, err)
	}
	return nil
}
