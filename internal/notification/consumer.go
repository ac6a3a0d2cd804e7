package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"slmarkets/internal/config"
	"slmarkets/internal/infrastructure/rabbitmq"
)

// Consumer drains the notification queue and hands each job to the mailer.
// Jobs that cannot be delivered are rejected without requeue, which routes
// them to the dead letter queue.
type Consumer struct {
	mq     *rabbitmq.RabbitMQ
	queue  string
	mailer Mailer
	logger *zap.Logger
}

func NewConsumer(mq *rabbitmq.RabbitMQ, cfg config.RabbitMQConfig, mailer Mailer, logger *zap.Logger) *Consumer {
	return &Consumer{
		mq:     mq,
		queue:  cfg.NotificationQueue,
		mailer: mailer,
		logger: logger,
	}
}

// Start begins consuming in a background goroutine. It returns once the
// subscription is established; the goroutine exits when ctx is cancelled or
// the delivery channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.mq.Channel.Consume(
		c.queue,
		"email-worker", // consumer tag
		false,          // auto-ack
		false,          // exclusive
		false,          // no-local
		false,          // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					c.logger.Warn("notification delivery channel closed")
					return
				}
				c.handle(ctx, delivery.Body, func(success bool) {
					if success {
						if err := delivery.Ack(false); err != nil {
							c.logger.Error("failed to ack email job", zap.Error(err))
						}
						return
					}
					if err := delivery.Nack(false, false); err != nil {
						c.logger.Error("failed to nack email job", zap.Error(err))
					}
				})
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, body []byte, done func(success bool)) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		c.logger.Error("discarding malformed email job", zap.Error(err))
		done(false)
		return
	}

	htmlBody := c.render(job)

	if err := c.mailer.Send(ctx, job.To, job.Subject, htmlBody); err != nil {
		c.logger.Error("failed to send email",
			zap.String("kind", job.Kind),
			zap.String("order_code", job.OrderCode),
			zap.Error(err))
		done(false)
		return
	}

	c.logger.Info("email sent",
		zap.String("kind", job.Kind),
		zap.String("order_code", job.OrderCode))
	done(true)
}

func (c *Consumer) render(job EmailJob) string {
	if job.Kind == JobKindCustomer {
		return BuildCustomerEmail(job.Order, job.Items)
	}
	return BuildOperatorEmail(job.Order, job.Items)
}
