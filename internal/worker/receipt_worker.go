package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sareepos/internal/infra"
	"sareepos/internal/model"
	"sareepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptWorker emails plain-text receipts for committed bills.
// All SMTP traffic goes through the circuit breaker so a dead relay
// fast-fails instead of stalling the pool.
type ReceiptWorker struct {
	bills     repository.BillRepository
	mailer    *infra.Mailer
	cb        *infra.CircuitBreaker
	storeName string
}

func NewReceiptWorker(bills repository.BillRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, storeName string) *ReceiptWorker {
	return &ReceiptWorker{bills: bills, mailer: mailer, cb: cb, storeName: storeName}
}

func (w *ReceiptWorker) Handle(ctx context.Context, raw json.RawMessage) error {
	var payload ReceiptPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("receipt: unmarshal payload: %w", err)
	}

	billID, err := uuid.Parse(payload.BillID)
	if err != nil {
		return fmt.Errorf("receipt: invalid bill id %q: %w", payload.BillID, err)
	}

	bill, err := w.bills.FindByID(ctx, billID)
	if err != nil {
		return fmt.Errorf("receipt: load bill %s: %w", payload.BillID, err)
	}

	subject := fmt.Sprintf("%s — Receipt for Bill #%d", w.storeName, bill.BillNumber)
	body := w.render(bill)

	err = w.cb.Execute(func() error {
		return w.mailer.SendReceipt(payload.CustomerEmail, subject, body)
	})
	if err != nil {
		return fmt.Errorf("receipt: send bill #%d: %w", bill.BillNumber, err)
	}

	log.Info().
		Int("bill_number", bill.BillNumber).
		Str("to", payload.CustomerEmail).
		Msg("receipt: email sent")
	return nil
}

func (w *ReceiptWorker) render(bill *model.Bill) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", w.storeName)
	fmt.Fprintf(&b, "Bill #%d — %s\n", bill.BillNumber, bill.CreatedAt.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "Payment: %s\n\n", bill.PaymentMethod)

	for _, item := range bill.Items {
		fmt.Fprintf(&b, "%-12s %-24s x%d  %10s\n", item.SKU, truncate(item.Name, 24), item.Quantity, item.Subtotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n%-42s %10s\n", "Subtotal", bill.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "%-42s %10s\n", "CGST (2.5%)", bill.CGST.StringFixed(2))
	fmt.Fprintf(&b, "%-42s %10s\n", "SGST (2.5%)", bill.SGST.StringFixed(2))
	fmt.Fprintf(&b, "%-42s %10s\n", "Total", bill.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "\nThank you for shopping with us!\n")
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
