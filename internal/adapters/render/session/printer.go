package session

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
)

// Printer writes session changes as plain lines for non-interactive use.
// Records are printed in arrival order.
type Printer struct {
	out    io.Writer
	opts   RenderOptions
	styles styles
	last   application.SessionView
	primed bool
}

func NewPrinter(out io.Writer, opts RenderOptions) *Printer {
	return &Printer{out: out, opts: opts, styles: newStyles()}
}

func (p *Printer) Print(view application.SessionView) error {
	last := p.last
	var lines []string

	if !p.primed || view.Phase != last.Phase {
		lines = append(lines, field(p.styles, "phase", PhaseLabel(view.Phase)))
	}
	if view.Account != "" && view.Account != last.Account {
		lines = append(lines, field(p.styles, "account", string(view.Account)))
	}
	if view.Receipt != nil && (last.Receipt == nil || last.Receipt.TxHash != view.Receipt.TxHash) {
		lines = append(lines, field(p.styles, "receipt", receiptLine(*view.Receipt)))
	}
	if view.Granted() && !last.Granted() {
		lines = append(lines, field(p.styles, "access", "granted"))
	}
	if view.StreamStatus != last.StreamStatus && view.StreamStatus != domain.StreamIdle && view.StreamStatus != "" {
		lines = append(lines, field(p.styles, "stream", string(view.StreamStatus)))
		if view.StreamStatus == domain.StreamConnected && view.RecordsReceived == 0 {
			lines = append(lines, p.styles.empty.Render(waitingForData))
		}
	}
	if view.LastError != nil && (last.LastError == nil || *last.LastError != *view.LastError) {
		lines = append(lines, p.styles.warning.Render(fmt.Sprintf("error [%s]: %s", view.LastError.Kind, view.LastError.Message)))
	}

	fresh := FreshRecords(last, view)
	slices.Reverse(fresh)
	for _, record := range fresh {
		lines = append(lines, recordLine(record, p.opts, p.styles))
	}

	p.last = view
	p.primed = true

	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(p.out, strings.Join(lines, "\n")+"\n")
	return err
}

// FreshRecords returns the records in next that were not yet in prev,
// newest first. Records that already left the buffer are not recoverable.
func FreshRecords(prev, next application.SessionView) []domain.SensorRecord {
	n := next.RecordsReceived
	if n >= prev.RecordsReceived {
		n -= prev.RecordsReceived
	}
	count := min(int(n), len(next.Records))
	return slices.Clone(next.Records[:count])
}
