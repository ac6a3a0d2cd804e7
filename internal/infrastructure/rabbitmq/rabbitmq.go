package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"slmarkets/internal/config"
)

type RabbitMQ struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	cfg     config.RabbitMQConfig
}

func New(cfg config.RabbitMQConfig) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		Conn:    conn,
		Channel: ch,
		cfg:     cfg,
	}, nil
}

// SetupQueues declares the notification queue and its dead-letter pair.
// Messages rejected by the consumer land on the DLQ for manual inspection.
func (r *RabbitMQ) SetupQueues() error {
	dlq := r.cfg.NotificationQueue + "_dlq"

	if err := r.Channel.ExchangeDeclare(
		dlq+"_exchange",
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := r.Channel.QueueDeclare(
		dlq,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if err := r.Channel.QueueBind(
		dlq,
		dlq,
		dlq+"_exchange",
		false,
		nil,
	); err != nil {
		return err
	}

	_, err := r.Channel.QueueDeclare(
		r.cfg.NotificationQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    dlq + "_exchange",
			"x-dead-letter-routing-key": dlq,
		},
	)
	return err
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
