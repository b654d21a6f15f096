package observability

import (
	"context"
	"encoding/xml"
	"log/slog"
	"time"

	"planning-sync/pubsub"
)

const heartbeatRoutingKey = "heartbeat_queue"

type heartbeatDoc struct {
	XMLName    xml.Name `xml:"Heartbeat"`
	Timestamp  string   `xml:"Timestamp"`
	Status     string   `xml:"Status"`
	SystemName string   `xml:"SystemName"`
}

// Heartbeat periodically announces the system as alive on the shared
// heartbeat queue.
type Heartbeat struct {
	system   string
	pub      pubsub.Publisher
	interval time.Duration
	log      *slog.Logger
}

func NewHeartbeat(system string, pub pubsub.Publisher, interval time.Duration, logger *slog.Logger) *Heartbeat {
	return &Heartbeat{system: system, pub: pub, interval: interval, log: logger}
}

// Run beats until the context is cancelled.
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info("heartbeat stopped")
			return
		case t := <-ticker.C:
			h.beat(ctx, t)
		}
	}
}

func (h *Heartbeat) beat(ctx context.Context, t time.Time) {
	body, err := xml.Marshal(heartbeatDoc{
		Timestamp:  t.Format(time.RFC3339),
		Status:     "Active",
		SystemName: h.system,
	})
	if err != nil {
		return
	}
	if err := h.pub.Publish(ctx, heartbeatRoutingKey, body); err != nil {
		h.log.Error("heartbeat publish failed", slog.Any("error", err))
	}
}
