package processmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQ defines a rabbitmq connection.
//
//go:generate mockery --name RabbitMQ --filename rabbitmq_mock.go
type RabbitMQ interface {
	Channel() (Channel, error)
	Close() error
}

// A Channel can operate exchanges and queues. This is a subset of the
// amqp.Channel api.
//
//go:generate mockery --name Channel --filename channel_mock.go
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	ExchangeDeclarePassive(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	QueuePurge(name string, noWait bool) (int, error)
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Close() error
}

// Connector returns a live connection to the broker.
type Connector func() (RabbitMQ, error)

// Broker publishes messages and hands out queues of one connection. It is
// implemented by *Connection.
type Broker interface {
	Send(ctx context.Context, topic, routingKey string, data any, opts MessageOptions) error
	Queue(name string, opts ResourceOptions) (*Queue, error)
}

// BrokerResolver returns the Broker for a connection name. It is implemented
// by *Connections.
type BrokerResolver interface {
	Broker(name string) (Broker, error)
}

// Loader returns the queue definitions keyed by their logical names.
type Loader interface {
	Load() (map[string]QueueDefinition, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func() (map[string]QueueDefinition, error)

// Load calls f.
func (f LoaderFunc) Load() (map[string]QueueDefinition, error) {
	return f()
}
