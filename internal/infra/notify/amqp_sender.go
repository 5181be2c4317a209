package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

const RoutingKeySalesNoteCreated = "sales_note.created"

// topic exchange に発行する
type AMQPSender struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewAMQPSender(amqpURL, exchange string) (*AMQPSender, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to rabbitmq")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, errors.Wrap(err, "declare exchange")
	}

	return &AMQPSender{conn: conn, channel: channel, exchange: exchange}, nil
}

func (s *AMQPSender) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return errors.Wrap(err, "marshal notification")
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(ErrDeliveryFailed, "publish: %v", err)
	}

	//channelは並行Publish不可
	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.channel.Publish(s.exchange, RoutingKeySalesNoteCreated, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    n.OrderID,
		Body:         body,
	})
	if err != nil {
		return errors.Wrapf(ErrDeliveryFailed, "publish to %s: %v", s.exchange, err)
	}
	return nil
}

func (s *AMQPSender) Close() error {
	if err := s.channel.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
