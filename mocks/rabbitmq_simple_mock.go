package mocks

import (
	"github.com/blokur/processmq"
)

// RabbitMQSimple is a simple mock type for the RabbitMQ. Without a
// ChannelFunc every call returns a new *ChannelSimple.
type RabbitMQSimple struct {
	ChannelFunc func() (processmq.Channel, error)
	CloseFunc   func() error
}

// Channel mocks the RabbitMQ.Channel() method.
//
//nolint:ireturn // this is a mock.
func (r *RabbitMQSimple) Channel() (processmq.Channel, error) {
	if r.ChannelFunc != nil {
		return r.ChannelFunc()
	}
	return &ChannelSimple{}, nil
}

// Close mocks the RabbitMQ.Close() method.
func (r *RabbitMQSimple) Close() error {
	if r.CloseFunc != nil {
		return r.CloseFunc()
	}
	return nil
}
