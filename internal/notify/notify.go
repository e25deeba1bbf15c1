package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

// Message is one SMS to deliver.
type Message struct {
	Mobile string
	Body   string
}

// Sender delivers a single message to the SMS provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher is the asynchronous notification queue. Sends are
// best-effort: a full queue drops the message and a failed send is
// logged, never surfaced to the request that enqueued it.
type Dispatcher struct {
	queue  chan Message
	sender Sender
	log    *logger.Logger

	countryPrefix string
	adminMobile   string

	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewDispatcher builds the dispatcher. Call Start before enqueueing
// and Close on shutdown to drain the queue.
func NewDispatcher(cfg config.SMSConfig, sender Sender, logg *logger.Logger) *Dispatcher {
	size := cfg.QueueSize
	if size <= 0 {
		size = 256
	}
	return &Dispatcher{
		queue:         make(chan Message, size),
		sender:        sender,
		log:           logg,
		countryPrefix: cfg.CountryPrefix,
		adminMobile:   cfg.AdminMobile,
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for msg := range d.queue {
				if err := d.sender.Send(ctx, msg); err != nil && d.log != nil {
					d.log.Error(ctx, "sms delivery failed", err)
				}
			}
		}()
	})
}

// Close stops intake and waits for queued messages to drain.
func (d *Dispatcher) Close() {
	d.stopOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

// EnqueueGuest queues a message to a guest mobile number, prefixed
// with the configured country code.
func (d *Dispatcher) EnqueueGuest(ctx context.Context, mobile, body string) {
	d.enqueue(ctx, Message{Mobile: d.countryPrefix + mobile, Body: body})
}

// EnqueueAdmin queues a message to the fixed admin number.
func (d *Dispatcher) EnqueueAdmin(ctx context.Context, body string) {
	d.enqueue(ctx, Message{Mobile: d.countryPrefix + d.adminMobile, Body: body})
}

func (d *Dispatcher) enqueue(ctx context.Context, msg Message) {
	select {
	case d.queue <- msg:
	default:
		if d.log != nil {
			d.log.Warn(ctx, "sms queue full, dropping message")
		}
	}
}

// HTTPSender posts messages to the SMS provider API.
type HTTPSender struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	senderID string
}

// NewHTTPSender builds the provider client.
func NewHTTPSender(cfg config.SMSConfig) *HTTPSender {
	return &HTTPSender{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
	}
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(map[string]string{
		"to":        msg.Mobile,
		"message":   msg.Body,
		"sender_id": s.senderID,
	})
	if err != nil {
		return fmt.Errorf("marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sms provider status %d", resp.StatusCode)
	}
	return nil
}
