package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends activity events somewhere.  Failures are reported to the
// caller, which logs them; they never fail the request that caused them.
type Publisher interface {
	Publish(ctx context.Context, ev ActivityEvent) error
}

// NopPublisher drops every event.  Used when EVENTS_ENABLED is false.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ActivityEvent) error { return nil }

var (
	ErrPublisherFull   = errors.New("activity event buffer full")
	ErrPublisherClosed = errors.New("activity publisher closed")
)

// AMQPConfig tunes an AMQPPublisher.  Zero values pick the defaults.
type AMQPConfig struct {
	URL         string
	Queue       string
	Buffer      int           // events held while the broker is slow; default 256
	DialTimeout time.Duration // TCP connect plus AMQP handshake; default 2s
	SendTimeout time.Duration // one PublishWithContext call; default 2s
	Backoff     time.Duration // pause after a failed dial; default 5s
}

func (c AMQPConfig) withDefaults() AMQPConfig {
	if c.Buffer <= 0 {
		c.Buffer = 256
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 2 * time.Second
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = 2 * time.Second
	}
	if c.Backoff <= 0 {
		c.Backoff = 5 * time.Second
	}
	return c
}

// AMQPPublisher publishes persistent JSON messages to a durable queue.
// Publish only enqueues; a single goroutine owns the broker connection and
// drains the buffer, so a slow or dead broker never stalls a request.
// Events that do not fit in the buffer are dropped.
type AMQPPublisher struct {
	cfg    AMQPConfig
	logger *slog.Logger

	events chan ActivityEvent
	ctx    context.Context
	stop   context.CancelFunc
	done   chan struct{}
	once   sync.Once

	// owned by run
	conn    *amqp.Connection
	ch      *amqp.Channel
	retryAt time.Time
}

// NewAMQPPublisher starts the delivery goroutine.  Call Close to stop it.
func NewAMQPPublisher(cfg AMQPConfig, logger *slog.Logger) *AMQPPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	ctx, stop := context.WithCancel(context.Background())
	p := &AMQPPublisher{
		cfg:    cfg,
		logger: logger,
		events: make(chan ActivityEvent, cfg.Buffer),
		ctx:    ctx,
		stop:   stop,
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish hands ev to the delivery goroutine without waiting for the broker.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ActivityEvent) error {
	if p.ctx.Err() != nil {
		return ErrPublisherClosed
	}
	select {
	case p.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrPublisherFull
	}
}

// Close stops the delivery goroutine after a bounded attempt to flush what
// is still buffered, then releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.once.Do(p.stop)
	<-p.done
	return nil
}

func (p *AMQPPublisher) run() {
	defer close(p.done)
	defer p.closeConn()

	for {
		select {
		case ev := <-p.events:
			p.deliver(p.ctx, ev)
		case <-p.ctx.Done():
			p.flush()
			return
		}
	}
}

func (p *AMQPPublisher) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.DialTimeout+p.cfg.SendTimeout)
	defer cancel()
	for {
		select {
		case ev := <-p.events:
			if ctx.Err() != nil {
				p.logger.Warn("activity event dropped on shutdown", "type", ev.Type)
				continue
			}
			p.deliver(ctx, ev)
		default:
			return
		}
	}
}

func (p *AMQPPublisher) deliver(ctx context.Context, ev ActivityEvent) {
	if err := p.send(ctx, ev); err != nil {
		p.logger.Warn("activity event dropped", "type", ev.Type, "actor_id", ev.ActorID, "error", err)
		return
	}
	p.logger.Debug("event published", "type", ev.Type, "actor_id", ev.ActorID, "target_id", ev.TargetID)
}

func (p *AMQPPublisher) send(ctx context.Context, ev ActivityEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.cfg.SendTimeout)
	defer cancel()
	err = ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
	if err != nil {
		p.closeConn()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// channel returns an open channel, dialing and declaring the queue when
// needed.  After a failed dial it refuses to redial until the backoff has
// passed, so a dead broker costs one dial per backoff window.
func (p *AMQPPublisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeConn()
	if time.Now().Before(p.retryAt) {
		return nil, errors.New("broker unavailable, retrying later")
	}

	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{Dial: p.dialer(ctx)})
	if err != nil {
		p.retryAt = time.Now().Add(p.cfg.Backoff)
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// dialer connects under ctx and bounds the handshake with a deadline that
// amqp091 clears once the connection is open.
func (p *AMQPPublisher) dialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		ctx, cancel := context.WithTimeout(ctx, p.cfg.DialTimeout)
		defer cancel()
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		deadline, _ := ctx.Deadline()
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

func (p *AMQPPublisher) closeConn() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
