package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

// Reports is the part of the reporting service the CLI drives.
type Reports interface {
	DashboardSummary(ctx context.Context, req reporting.DashboardRequest) (*models.DashboardSummary, error)
	BuyerPurchases(ctx context.Context, req reporting.ExportRequest) (*reporting.BuyerExport, error)
}

// Options configures the command tree.
type Options struct {
	Reports Reports
	Output  io.Writer
}

// NewRootCmd builds the reportctl command tree.
func NewRootCmd(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Run dairy reports against the live store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Output != nil {
		root.SetOut(opts.Output)
	}

	root.AddCommand(newExportCmd(opts.Reports))
	root.AddCommand(newSummaryCmd(opts.Reports))
	return root
}
