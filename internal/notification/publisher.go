package notification

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"slmarkets/internal/config"
	"slmarkets/internal/domain"
	apperrors "slmarkets/internal/errors"
	"slmarkets/internal/infrastructure/rabbitmq"
)

// Publisher enqueues email jobs for freshly created orders. Publishing is
// fire-and-forget from the checkout path; the consumer owns retries and the
// dead letter queue.
type Publisher struct {
	mq    *rabbitmq.RabbitMQ
	queue string
	cfg   config.MailConfig
}

func NewPublisher(mq *rabbitmq.RabbitMQ, rabbitCfg config.RabbitMQConfig, mailCfg config.MailConfig) *Publisher {
	return &Publisher{
		mq:    mq,
		queue: rabbitCfg.NotificationQueue,
		cfg:   mailCfg,
	}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, order domain.Order, items []domain.OrderItem) error {
	for _, job := range BuildJobs(p.cfg.AdminEmail, order, items) {
		body, err := json.Marshal(job)
		if err != nil {
			return apperrors.NewNotificationError("failed to encode email job", err)
		}

		err = p.mq.Channel.PublishWithContext(ctx,
			"",      // default exchange
			p.queue, // routing key
			false,   // mandatory
			false,   // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			})
		if err != nil {
			return apperrors.NewNotificationError(
				fmt.Sprintf("failed to publish %s email job for order %s", job.Kind, order.Code), err)
		}
	}

	return nil
}

// BuildJobs fans an order out into the email jobs it should produce. The
// operator is always notified; the customer only when they left an address.
func BuildJobs(adminEmail string, order domain.Order, items []domain.OrderItem) []EmailJob {
	jobs := []EmailJob{
		{
			Kind:      JobKindOperator,
			To:        adminEmail,
			Subject:   fmt.Sprintf("New Order %s", order.Code),
			OrderCode: order.Code,
			Order:     order,
			Items:     items,
		},
	}

	if order.CustomerEmail != nil && *order.CustomerEmail != "" {
		jobs = append(jobs, EmailJob{
			Kind:      JobKindCustomer,
			To:        *order.CustomerEmail,
			Subject:   fmt.Sprintf("Order Confirmation %s", order.Code),
			OrderCode: order.Code,
			Order:     order,
			Items:     items,
		})
	}

	return jobs
}
