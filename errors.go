package processmq

import (
	"errors"
	"fmt"
)

var (
	// ErrInput is returned when an input is invalid.
	ErrInput = errors.New("invalid input")

	// ErrClosed is returned when the Connection is closed and is being reused.
	ErrClosed = errors.New("connection is already closed")

	// ErrNotConnected is returned when a resource is requested before
	// Connect.
	ErrNotConnected = errors.New("connection is not established")

	// ErrAlreadyConnected is returned when Connect is called on a connected
	// Connection.
	ErrAlreadyConnected = errors.New("connection is already established")

	// ErrAlreadyConfigured is returned when a connection name is configured
	// twice.
	ErrAlreadyConfigured = errors.New("already configured")

	// ErrUnknownConnection is returned when a connection name has no
	// configuration.
	ErrUnknownConnection = errors.New("unknown connection")
)

// ConnectionError is returned when the broker can not be reached or refuses
// the credentials.
type ConnectionError struct {
	Host  string
	Port  int
	Vhost string
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %s:%d%s: %v", e.Host, e.Port, e.Vhost, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// PublishError wraps the transport failure of a publish.
type PublishError struct {
	Exchange   string
	RoutingKey string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing to %q with routing key %q: %v", e.Exchange, e.RoutingKey, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// UnsupportedSerializerError is returned when the requested serializer is not
// known. It wraps ErrInput.
type UnsupportedSerializerError struct {
	Serializer Serializer
}

func (e *UnsupportedSerializerError) Error() string {
	return fmt.Sprintf("unsupported serializer: %q", string(e.Serializer))
}

func (e *UnsupportedSerializerError) Unwrap() error { return ErrInput }

// UnknownQueueError is returned when a logical queue name is not configured.
type UnknownQueueError struct {
	Name string
}

func (e *UnknownQueueError) Error() string {
	return fmt.Sprintf("unknown queue: %q", e.Name)
}

// MissingSubConfigError is returned when a queue is configured but lacks the
// publish or consume section an operation needs.
type MissingSubConfigError struct {
	Name    string
	Section string
}

func (e *MissingSubConfigError) Error() string {
	return fmt.Sprintf("missing %s configuration (%s)", e.Section, e.Name)
}
