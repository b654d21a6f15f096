package observability

import (
	"context"
	"encoding/xml"
	"log/slog"
	"time"

	"planning-sync/pubsub"
)

const logsRoutingKey = "logs"

// LogEntry is the monitoring document shared by every integration
// system.
type LogEntry struct {
	XMLName      xml.Name `xml:"LogEntry"`
	SystemName   string   `xml:"SystemName"`
	FunctionName string   `xml:"FunctionName"`
	Logs         string   `xml:"Logs"`
	Error        bool     `xml:"Error"`
	Timestamp    string   `xml:"Timestamp"`
}

// Monitor emits LogEntry documents to the monitoring sink. Emission is
// fire-and-forget: a sink outage must never affect message processing.
type Monitor struct {
	system string
	pub    pubsub.Publisher
	now    func() time.Time
	log    *slog.Logger
}

func NewMonitor(system string, pub pubsub.Publisher, logger *slog.Logger) *Monitor {
	return &Monitor{
		system: system,
		pub:    pub,
		now:    time.Now,
		log:    logger,
	}
}

// Emit publishes one monitoring event. Failures are logged and dropped.
func (m *Monitor) Emit(ctx context.Context, functionName, message string, isError bool) {
	entry := LogEntry{
		SystemName:   m.system,
		FunctionName: functionName,
		Logs:         message,
		Error:        isError,
		Timestamp:    m.now().Format(time.RFC3339),
	}
	body, err := xml.Marshal(entry)
	if err != nil {
		m.log.Warn("monitoring marshal failed", slog.Any("error", err))
		return
	}
	if err := m.pub.Publish(ctx, logsRoutingKey, body); err != nil {
		m.log.Warn("monitoring publish failed",
			slog.String("function", functionName), slog.Any("error", err))
	}
}
