package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tasksystem/core/internal/infrastructure/logger"
	"github.com/tasksystem/core/internal/ports"
)

const (
	dispatchQueueSize  = 256
	dispatchSendWindow = 10 * time.Second
)

type outboundMessage struct {
	recipients []uuid.UUID
	text       string
}

// NotificationDispatcher queues outbound messages and delivers them on a
// background worker after the triggering operation has committed. A
// transport failure is logged, never propagated to the request that
// produced the message.
type NotificationDispatcher struct {
	transport ports.Notifier
	logger    *logger.Logger
	queue     chan outboundMessage
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewNotificationDispatcher creates a dispatcher in front of the given
// transport. Call Start before use and Stop on shutdown.
func NewNotificationDispatcher(transport ports.Notifier, logger *logger.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{
		transport: transport,
		logger:    logger,
		queue:     make(chan outboundMessage, dispatchQueueSize),
	}
}

// Start launches the delivery worker.
func (d *NotificationDispatcher) Start() {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

// Stop drains the queue and waits for in-flight deliveries to finish.
func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// NotifyUser enqueues a message for one recipient.
func (d *NotificationDispatcher) NotifyUser(_ context.Context, userID uuid.UUID, text string) error {
	d.enqueue(outboundMessage{recipients: []uuid.UUID{userID}, text: text})
	return nil
}

// NotifyUsers enqueues a message for a set of recipients.
func (d *NotificationDispatcher) NotifyUsers(_ context.Context, userIDs []uuid.UUID, text string) error {
	if len(userIDs) == 0 {
		return nil
	}
	recipients := make([]uuid.UUID, len(userIDs))
	copy(recipients, userIDs)
	d.enqueue(outboundMessage{recipients: recipients, text: text})
	return nil
}

func (d *NotificationDispatcher) enqueue(msg outboundMessage) {
	select {
	case d.queue <- msg:
	default:
		// A full queue means the transport is badly behind. Dropping is
		// preferable to blocking request handlers.
		d.logger.Warnw("Notification queue full, dropping message", "recipients", len(msg.recipients))
	}
}

func (d *NotificationDispatcher) run() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchSendWindow)
		err := d.transport.NotifyUsers(ctx, msg.recipients, msg.text)
		cancel()

		if err != nil {
			d.logger.Warnw("Notification delivery failed", "recipients", len(msg.recipients), "error", err)
		}
	}
}
