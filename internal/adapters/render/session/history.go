package session

import (
	"fmt"
	"strings"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderHistory(records []domain.PurchaseRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Purchase History"),
		s.header.Render(fmt.Sprintf("purchases: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No purchases recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		lines = append(lines, s.section.Render(renderPurchase(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPurchase(record domain.PurchaseRecord, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.sensor.Render(string(record.TxHash)), " ", statusBadge(record, s)),
		field(s, "account", string(record.Account)),
		field(s, "contract", string(record.Contract)),
	}

	if record.Price != nil {
		parts = append(parts, field(s, "price", record.Price.String()+" wei"))
	}
	if !record.PurchasedAt.IsZero() {
		parts = append(parts, field(s, "purchased", formatTimestamp(record.PurchasedAt, opts.Location)))
	}
	if !record.VerifiedAt.IsZero() {
		parts = append(parts, field(s, "verified", formatTimestamp(record.VerifiedAt, opts.Location)))
	}
	if reason := strings.TrimSpace(record.Reason); reason != "" {
		parts = append(parts, field(s, "reason", reason))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func statusBadge(record domain.PurchaseRecord, s styles) string {
	label := fmt.Sprintf("[%s]", record.Status)
	switch record.Status {
	case domain.PurchaseStatusGranted:
		return s.granted.Render(label)
	case domain.PurchaseStatusDenied:
		return s.warning.Render(label)
	default:
		return s.empty.Render(label)
	}
}
