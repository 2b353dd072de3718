package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/dairy/internal/service/reporting"
)

type summaryCmd struct {
	reports Reports
	period  string
	buyer   string
}

func newSummaryCmd(reports Reports) *cobra.Command {
	sc := &summaryCmd{reports: reports}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard summary as JSON",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.period, "period", "weekly", "Trend period: weekly, monthly or yearly")
	cmd.Flags().StringVar(&sc.buyer, "buyer", "", "Buyer mobile to drill into")

	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	summary, err := sc.reports.DashboardSummary(ctx, reporting.DashboardRequest{
		TrendPeriod: sc.period,
		BuyerMobile: sc.buyer,
	})
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
