package worker

// Processes order-notification jobs from QueueNotify: builds the order
// summary, sends it to the store owner over WhatsApp (through the circuit
// breaker) and mirrors it to the order inbox email. Failures schedule a
// retry via the cron.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tenaypos/internal/infra"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxNotifyRetries is the attempt budget before an order notification is
// abandoned to the DLQ.
const MaxNotifyRetries = 3

// NotifyJobPayload is the job envelope sent to QueueNotify.
type NotifyJobPayload struct {
	OrderID string `json:"order_id"`
}

type NotifyWorker struct {
	orderRepo  repository.OrderRepository
	whatsapp   *infra.WhatsAppClient
	cb         *infra.CircuitBreaker
	dispatcher *Dispatcher
	ownerPhone string
	inboxEmail string
}

func NewNotifyWorker(
	orderRepo repository.OrderRepository,
	whatsapp *infra.WhatsAppClient,
	cb *infra.CircuitBreaker,
	dispatcher *Dispatcher,
	ownerPhone string,
	inboxEmail string,
) *NotifyWorker {
	return &NotifyWorker{
		orderRepo:  orderRepo,
		whatsapp:   whatsapp,
		cb:         cb,
		dispatcher: dispatcher,
		ownerPhone: ownerPhone,
		inboxEmail: inboxEmail,
	}
}

// Process handles one notification job: fetch the order, send the WhatsApp
// message, enqueue the email mirror, and record the outcome on the order row.
func (w *NotifyWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotifyJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notify_worker: invalid payload")
		return
	}
	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("notify_worker: invalid order_id")
		return
	}

	order, err := w.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("notify_worker: order not found")
		return
	}

	w.Notify(ctx, order)
}

// Notify runs the actual delivery for an order and updates its retry state.
// Shared by the pool worker and the retry cron.
func (w *NotifyWorker) Notify(ctx context.Context, order *model.OnlineOrder) {
	message := buildOrderMessage(order)

	var sendErr error
	if w.whatsapp.Enabled() && w.ownerPhone != "" {
		sendErr = w.cb.Execute(func() error {
			return w.whatsapp.SendText(ctx, infra.NormalizeMXPhone(w.ownerPhone), message)
		})
	}

	// Email mirror goes out regardless of the WhatsApp outcome
	if w.inboxEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: w.inboxEmail,
			Subject: fmt.Sprintf("Nuevo pedido en línea de %s", order.CustomerName),
			Body:    message,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("notify_worker: failed to enqueue email")
		}
	}

	if sendErr != nil {
		order.RetryCount++
		errMsg := sendErr.Error()
		order.LastError = &errMsg
		order.NotifyStatus = model.NotifyError

		if order.RetryCount >= MaxNotifyRetries {
			order.NextRetryAt = nil
			log.Error().
				Str("order_id", order.ID.String()).
				Int("retries", order.RetryCount).
				Msg("notify_worker: max retries exceeded, moving to DLQ")

			raw, _ := json.Marshal(NotifyJobPayload{OrderID: order.ID.String()})
			SendToDLQ(ctx, w.dispatcher.rdb, QueueNotify, "notify", raw,
				fmt.Sprintf("max retries (%d) exceeded: %s", MaxNotifyRetries, errMsg),
				order.RetryCount)
		} else {
			next := time.Now().Add(notifyBackoff(order.RetryCount))
			order.NextRetryAt = &next
			log.Warn().
				Str("order_id", order.ID.String()).
				Int("retry_count", order.RetryCount).
				Time("next_retry_at", next).
				Msg("notify_worker: whatsapp send failed, scheduled retry")
		}
		_ = w.orderRepo.Update(ctx, order)
		return
	}

	order.NotifyStatus = model.NotifySent
	order.NextRetryAt = nil
	order.LastError = nil
	if err := w.orderRepo.Update(ctx, order); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("notify_worker: failed to persist notify status")
		return
	}
	log.Info().Str("order_id", order.ID.String()).Msg("notify_worker: order notification sent")
}

// notifyBackoff returns the wait before retry n: 1m, 2m, 4m …
func notifyBackoff(retryCount int) time.Duration {
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}

func buildOrderMessage(order *model.OnlineOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nuevo pedido de %s (%s)\n", order.CustomerName, order.CustomerPhone)
	if order.CustomerAddress != nil && *order.CustomerAddress != "" {
		fmt.Fprintf(&b, "Entrega: %s\n", *order.CustomerAddress)
	}
	b.WriteString("\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %d x %s  $%s\n", item.Quantity, item.Name, item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal aproximado: $%s", order.TotalApprox.StringFixed(2))
	return b.String()
}
