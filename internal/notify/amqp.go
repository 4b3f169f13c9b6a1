package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AMQPPublisher publishes change events to a durable topic exchange. The
// routing key is the configured prefix followed by the event kind, e.g.
// "debtburn.loan.added".
type AMQPPublisher struct {
	conn          *amqp091.Connection
	channel       *amqp091.Channel
	exchange      string
	routingPrefix string
	logger        *logrus.Logger
}

// DialAMQP connects to the broker and declares the exchange.
func DialAMQP(url, exchange, routingPrefix string, logger *logrus.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:          conn,
		channel:       channel,
		exchange:      exchange,
		routingPrefix: routingPrefix,
		logger:        logger,
	}, nil
}

// RoutingKey returns the routing key used for kind.
func (p *AMQPPublisher) RoutingKey(kind Kind) string {
	return p.routingPrefix + string(kind)
}

// Notify implements Notifier.
func (p *AMQPPublisher) Notify(ctx context.Context, ev Event) error {
	body, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,            // exchange
		p.RoutingKey(ev.Kind), // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    ev.ID,
			Timestamp:    ev.At,
			Type:         string(ev.Kind),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"kind":     ev.Kind,
		"exchange": p.exchange,
	}).Debug("published change event")
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
