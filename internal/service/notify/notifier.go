package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ttacon/libphonenumber"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
	client "github.com/mamadbah2/dairy/pkg/clients/whatsapp"
)

// ErrInvalidRecipient indicates the digest recipient is not a dialable number.
var ErrInvalidRecipient = errors.New("invalid digest recipient")

// Notifier pushes messages to the farm owner.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	SendDigest(ctx context.Context, summary *models.DashboardSummary) error
}

// WhatsAppNotifier delivers messages through the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	cfg    config.WhatsAppConfig
	client client.Client
	logger *zap.Logger
}

// NewWhatsAppNotifier wires a new notifier instance.
func NewWhatsAppNotifier(cfg config.WhatsAppConfig, c client.Client, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{cfg: cfg, client: c, logger: logger}
}

// SendOutbound sends req after normalizing the recipient number.
func (n *WhatsAppNotifier) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	to, err := FormatRecipient(req.To, n.cfg.DefaultRegion)
	if err != nil {
		return err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         to,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	if len(resp.Messages) > 0 {
		n.logger.Info("message sent", zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

// SendDigest formats summary and sends it to the configured recipient.
func (n *WhatsAppNotifier) SendDigest(ctx context.Context, summary *models.DashboardSummary) error {
	if summary == nil {
		return errors.New("nil summary")
	}
	return n.SendOutbound(ctx, models.OutboundMessageRequest{
		To:      n.cfg.DigestRecipient,
		Message: FormatDigest(summary),
	})
}

// FormatRecipient parses raw in the context of region and returns the E.164
// number without the leading plus, as the Cloud API expects.
func FormatRecipient(raw, region string) (string, error) {
	if region == "" {
		region = "IN"
	}
	num, err := libphonenumber.Parse(strings.TrimSpace(raw), strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %s", ErrInvalidRecipient, raw)
	}
	return strings.TrimPrefix(libphonenumber.Format(num, libphonenumber.E164), "+"), nil
}

// FormatDigest renders the nightly summary as a short text message.
func FormatDigest(summary *models.DashboardSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dairy digest %s\n", summary.GeneratedAt.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "Milk sold today: %s L for Rs %s (%d sales)\n",
		summary.DailySales.Quantity.StringFixed(2),
		summary.DailySales.Amount.StringFixed(2),
		summary.DailySales.Transactions)
	fmt.Fprintf(&b, "Month to date: %s L for Rs %s (%d sales)\n",
		summary.MonthlySales.Quantity.StringFixed(2),
		summary.MonthlySales.Amount.StringFixed(2),
		summary.MonthlySales.Transactions)
	fmt.Fprintf(&b, "Expenses today: Rs %s (chara %s, milk %s)",
		summary.DailyExpenses.StringFixed(2),
		summary.DailyExpenseBreakdown.CharaPurchases.StringFixed(2),
		summary.DailyExpenseBreakdown.MilkPurchases.StringFixed(2))
	if len(summary.UserConsumptions) > 0 {
		top := summary.UserConsumptions[0]
		fmt.Fprintf(&b, "\nTop buyer: %s (%s L)", top.Name, top.TotalQuantity.StringFixed(2))
	}
	return b.String()
}
