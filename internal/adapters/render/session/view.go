package session

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const waitingForData = "Waiting for first data..."

// Fields of the sensor wire shape that get a dedicated column. Everything
// else in the payload is printed as key=value.
var knownFields = []string{
	"timestamp",
	"sensor_id",
	"location",
	"process_stage",
	"temperature_celsius",
	"humidity_percent",
}

type RenderOptions struct {
	// MaxRecords limits the rendered records; zero renders the whole buffer.
	MaxRecords int
	// Location converts record timestamps; nil keeps UTC.
	Location *time.Location
}

func renderSession(view application.SessionView, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Sensor Access"),
		s.header.Render(fmt.Sprintf("session: %s", shortID(view.SessionID))),
		field(s, "phase", PhaseLabel(view.Phase)),
	}

	if view.Contract != "" {
		lines = append(lines, field(s, "contract", string(view.Contract)))
	}
	if view.Account != "" {
		lines = append(lines, field(s, "account", string(view.Account)))
	}
	if view.Receipt != nil {
		lines = append(lines, field(s, "receipt", receiptLine(*view.Receipt)))
	}
	if line := accessLine(view, s); line != "" {
		lines = append(lines, line)
	}
	if view.LastError != nil {
		lines = append(lines, s.warning.Render(fmt.Sprintf("error [%s]: %s", view.LastError.Kind, view.LastError.Message)))
	}

	if showData(view) {
		lines = append(lines, s.section.Render(renderRecords(view, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(s styles, name, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(name+":"), " ", s.detail.Render(value))
}

func receiptLine(receipt domain.PurchaseReceipt) string {
	line := string(receipt.TxHash)
	if receipt.Price != nil {
		line += fmt.Sprintf(" (%s wei)", receipt.Price)
	}
	if receipt.Confirmed {
		return line + " confirmed"
	}
	return line + " pending"
}

func accessLine(view application.SessionView, s styles) string {
	switch {
	case view.Granted():
		return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("access:"), " ", s.granted.Render("granted"))
	case view.Phase == domain.PhaseDenied:
		return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render("access:"), " ", s.warning.Render("denied"))
	case view.CanRetryVerification:
		return field(s, "access", "unverified, retry available")
	default:
		return ""
	}
}

func showData(view application.SessionView) bool {
	if len(view.Records) > 0 {
		return true
	}
	return view.StreamStatus == domain.StreamConnecting || view.StreamStatus == domain.StreamConnected
}

func renderRecords(view application.SessionView, opts RenderOptions, s styles) string {
	records := view.Records
	if opts.MaxRecords > 0 && len(records) > opts.MaxRecords {
		records = records[:opts.MaxRecords]
	}

	header := s.header.Render(fmt.Sprintf("live data (%s, %d records)", view.StreamStatus, len(view.Records)))
	if len(records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, s.empty.Render(waitingForData))
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, header)
	for _, record := range records {
		lines = append(lines, recordLine(record, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func recordLine(record domain.SensorRecord, opts RenderOptions, s styles) string {
	parts := []string{s.timestamp.Render(formatTimestamp(record.Timestamp, opts.Location))}

	if sensor := record.String("sensor_id"); sensor != "" {
		parts = append(parts, s.sensor.Render(sensor))
	}
	for _, key := range []string{"location", "process_stage"} {
		if value := record.String(key); value != "" {
			parts = append(parts, s.detail.Render(value))
		}
	}
	if temp, ok := record.Float("temperature_celsius"); ok {
		parts = append(parts, s.reading.Render(fmt.Sprintf("%.1f°C", temp)))
	}
	if humidity, ok := record.Float("humidity_percent"); ok {
		parts = append(parts, s.reading.Render(fmt.Sprintf("%.1f%%", humidity)))
	}
	if extra := extraFields(record); extra != "" {
		parts = append(parts, s.header.Render(extra))
	}

	return strings.Join(parts, "  ")
}

func extraFields(record domain.SensorRecord) string {
	keys := slices.Sorted(maps.Keys(record.Payload))

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		if slices.Contains(knownFields, key) {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, record.String(key)))
	}

	return strings.Join(pairs, " ")
}

func formatTimestamp(ts time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format("2006-01-02 15:04:05")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "n/a"
	}
	return id
}
