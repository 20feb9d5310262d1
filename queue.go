package processmq

import (
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue is a named queue bound to a channel of its Connection. Creating the
// handle does not declare the queue on the broker; call Declare for that.
type Queue struct {
	owner   *Connection
	name    string
	flags   Flag
	args    amqp.Table
	channel Channel
}

// Name returns the queue name.
func (q *Queue) Name() string { return q.name }

// Flags returns the flags the queue was created with.
func (q *Queue) Flags() Flag { return q.flags }

// Channel returns the channel the queue operates on.
func (q *Queue) Channel() Channel { return q.channel }

// closed reports whether the Connection the queue was created on is closed.
func (q *Queue) closed() bool {
	return q.owner != nil && q.owner.Closed()
}

// Declare declares the queue with its flags. With FlagPassive it only checks
// the queue exists.
func (q *Queue) Declare() (amqp.Queue, error) {
	declare := q.channel.QueueDeclare
	if q.flags.Has(FlagPassive) {
		declare = q.channel.QueueDeclarePassive
	}
	queue, err := declare(
		q.name,
		q.flags.Has(FlagDurable),
		q.flags.Has(FlagAutoDelete),
		q.flags.Has(FlagExclusive),
		q.flags.Has(FlagNoWait),
		q.args,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declaring queue %q: %w", q.name, err)
	}
	return queue, nil
}

// Bind binds the queue to the exchange with the routing key.
func (q *Queue) Bind(exchange, key string) error {
	err := q.channel.QueueBind(q.name, key, exchange, q.flags.Has(FlagNoWait), nil)
	if err != nil {
		return fmt.Errorf("binding queue %q to %q: %w", q.name, exchange, err)
	}
	return nil
}

// Consume starts delivering messages of the queue. An empty consumer name is
// replaced with a random one. Messages must be acknowledged by the caller
// unless autoAck is set.
func (q *Queue) Consume(consumer string, autoAck bool) (<-chan amqp.Delivery, error) {
	if consumer == "" {
		consumer = "processmq." + uuid.NewString()
	}
	msgs, err := q.channel.Consume(
		q.name,
		consumer,
		autoAck,
		q.flags.Has(FlagExclusive),
		false,
		q.flags.Has(FlagNoWait),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consuming queue %q: %w", q.name, err)
	}
	return msgs, nil
}

// Get fetches a single message. The boolean is false when the queue is empty.
func (q *Queue) Get(autoAck bool) (amqp.Delivery, bool, error) {
	msg, ok, err := q.channel.Get(q.name, autoAck)
	if err != nil {
		return amqp.Delivery{}, false, fmt.Errorf("getting from queue %q: %w", q.name, err)
	}
	return msg, ok, nil
}

// Purge removes all ready messages and returns how many were removed.
func (q *Queue) Purge() (int, error) {
	n, err := q.channel.QueuePurge(q.name, q.flags.Has(FlagNoWait))
	if err != nil {
		return 0, fmt.Errorf("purging queue %q: %w", q.name, err)
	}
	return n, nil
}
