package mocks

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelSimple mocks the Channel type. A nil function field makes the method
// succeed with zero values.
type ChannelSimple struct {
	CloseFunc                  func() error
	ConsumeFunc                func(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	ExchangeDeclareFunc        func(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	ExchangeDeclarePassiveFunc func(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	GetFunc                    func(queue string, autoAck bool) (amqp.Delivery, bool, error)
	PublishWithContextFunc     func(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	QosFunc                    func(prefetchCount int, prefetchSize int, global bool) error
	QueueBindFunc              func(name, key, exchange string, noWait bool, args amqp.Table) error
	QueueDeclareFunc           func(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueDeclarePassiveFunc    func(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueuePurgeFunc             func(name string, noWait bool) (int, error)
}

// Close mocks the Channel.Close() method.
func (c *ChannelSimple) Close() error {
	if c.CloseFunc != nil {
		return c.CloseFunc()
	}
	return nil
}

// Consume mocks the Channel.Consume() method.
func (c *ChannelSimple) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	if c.ConsumeFunc != nil {
		return c.ConsumeFunc(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
	}
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

// ExchangeDeclare mocks the Channel.ExchangeDeclare() method.
func (c *ChannelSimple) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if c.ExchangeDeclareFunc != nil {
		return c.ExchangeDeclareFunc(name, kind, durable, autoDelete, internal, noWait, args)
	}
	return nil
}

// ExchangeDeclarePassive mocks the Channel.ExchangeDeclarePassive() method.
func (c *ChannelSimple) ExchangeDeclarePassive(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if c.ExchangeDeclarePassiveFunc != nil {
		return c.ExchangeDeclarePassiveFunc(name, kind, durable, autoDelete, internal, noWait, args)
	}
	return nil
}

// Get mocks the Channel.Get() method.
func (c *ChannelSimple) Get(queue string, autoAck bool) (amqp.Delivery, bool, error) {
	if c.GetFunc != nil {
		return c.GetFunc(queue, autoAck)
	}
	return amqp.Delivery{}, false, nil
}

// PublishWithContext mocks the Channel.PublishWithContext() method.
// nolint:gocritic // this is a mock.
func (c *ChannelSimple) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if c.PublishWithContextFunc != nil {
		return c.PublishWithContextFunc(ctx, exchange, key, mandatory, immediate, msg)
	}
	return nil
}

// Qos mocks the Channel.Qos() method.
func (c *ChannelSimple) Qos(prefetchCount, prefetchSize int, global bool) error {
	if c.QosFunc != nil {
		return c.QosFunc(prefetchCount, prefetchSize, global)
	}
	return nil
}

// QueueBind mocks the Channel.QueueBind() method.
func (c *ChannelSimple) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	if c.QueueBindFunc != nil {
		return c.QueueBindFunc(name, key, exchange, noWait, args)
	}
	return nil
}

// QueueDeclare mocks the Channel.QueueDeclare() method.
func (c *ChannelSimple) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if c.QueueDeclareFunc != nil {
		return c.QueueDeclareFunc(name, durable, autoDelete, exclusive, noWait, args)
	}
	return amqp.Queue{Name: name}, nil
}

// QueueDeclarePassive mocks the Channel.QueueDeclarePassive() method.
func (c *ChannelSimple) QueueDeclarePassive(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if c.QueueDeclarePassiveFunc != nil {
		return c.QueueDeclarePassiveFunc(name, durable, autoDelete, exclusive, noWait, args)
	}
	return amqp.Queue{Name: name}, nil
}

// QueuePurge mocks the Channel.QueuePurge() method.
func (c *ChannelSimple) QueuePurge(name string, noWait bool) (int, error) {
	if c.QueuePurgeFunc != nil {
		return c.QueuePurgeFunc(name, noWait)
	}
	return 0, nil
}
