package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// Subject carrying rendition jobs.
	renditionSubject = "files.renditions"
	// Queue group so multiple worker instances share the stream of jobs.
	workerGroup = "rendition-workers"
)

// NATS distributes jobs over a NATS subject with queue-group fan-out, so any
// number of worker processes can consume without duplicating work.
type NATS struct {
	conn *nats.Conn
	sub  *nats.Subscription
}

func NewNATS(url string, log *slog.Logger) (*NATS, error) {
	opts := []nats.Option{
		nats.Name("files-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	sub, err := conn.QueueSubscribeSync(renditionSubject, workerGroup)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", renditionSubject, err)
	}

	return &NATS{conn: conn, sub: sub}, nil
}

func (n *NATS) Enqueue(_ context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return n.conn.Publish(renditionSubject, data)
}

func (n *NATS) Dequeue(ctx context.Context) (Job, error) {
	msg, err := n.sub.NextMsgWithContext(ctx)
	if err != nil {
		return Job{}, err
	}

	var job Job
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		return Job{}, fmt.Errorf("malformed job payload: %w", err)
	}
	return job, nil
}

func (n *NATS) Close() {
	n.conn.Close()
}
