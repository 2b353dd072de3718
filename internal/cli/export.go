package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/dairy/internal/service/reporting"
)

type exportCmd struct {
	reports Reports
	year    int
	month   int
	buyer   string
	format  string
	out     string
}

func newExportCmd(reports Reports) *cobra.Command {
	ec := &exportCmd{reports: reports}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a month of buyer purchases as CSV or XLSX",
		RunE:  ec.run,
	}

	cmd.Flags().IntVar(&ec.year, "year", 0, "Year to export (defaults to the current year)")
	cmd.Flags().IntVar(&ec.month, "month", 0, "Month to export, 1-12 (defaults to the current month)")
	cmd.Flags().StringVar(&ec.buyer, "buyer", "", "Restrict to one buyer mobile")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file (csv defaults to stdout, xlsx to the download name)")

	return cmd
}

func (ec *exportCmd) run(cmd *cobra.Command, _ []string) error {
	if ec.format != "csv" && ec.format != "xlsx" {
		return fmt.Errorf("unsupported format %q: use csv or xlsx", ec.format)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	export, err := ec.reports.BuyerPurchases(ctx, reporting.ExportRequest{
		Year:        ec.year,
		Month:       ec.month,
		BuyerMobile: ec.buyer,
	})
	if err != nil {
		return fmt.Errorf("failed to build export: %w", err)
	}

	if ec.format == "csv" {
		if ec.out == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), export.CSV())
			return err
		}
		return os.WriteFile(ec.out, []byte(export.CSV()), 0o644)
	}

	f, err := export.XLSX()
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	path := ec.out
	if path == "" {
		path = export.Filename("xlsx")
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return writeLine(cmd.OutOrStdout(), "wrote %d rows to %s", len(export.Rows), path)
}

func writeLine(w io.Writer, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}
