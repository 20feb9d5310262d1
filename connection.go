package processmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
)

// Connection owns one broker connection and caches its channels, exchanges
// and queues by name. It is safe for concurrent use. Zero value is not
// usable.
// nolint:govet // most likely not an issue, but cleaner this way.
type Connection struct {
	conf      Config
	connector Connector
	logger    logr.Logger
	metrics   *Metrics

	mu     sync.RWMutex
	conn   RabbitMQ
	closed bool

	channels  namedCache[Channel]
	exchanges namedCache[*Exchange]
	queues    namedCache[*Queue]
}

// NewConnection returns a Connection for conf. Zero fields of conf take the
// values of DefaultConfig. The Connection does not dial until Connect is
// called.
func NewConnection(conf Config, opts ...ConfigFunc) (*Connection, error) {
	conf = conf.withDefaults()
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	cnf := newConfig(opts)
	c := &Connection{
		conf:      conf,
		connector: cnf.connector,
		logger:    cnf.logger.WithName("connection"),
		metrics:   cnf.metrics,
	}
	if c.connector == nil {
		c.connector = ConfigConnector(conf)
	}
	if conf.Name != "" {
		c.logger = c.logger.WithName(conf.Name)
	}
	return c, nil
}

// Config returns the configuration of the connection, defaults included.
func (c *Connection) Config() Config {
	return c.conf
}

// Name returns the configured name of the connection, or an empty string.
func (c *Connection) Name() string {
	return c.conf.Name
}

// Closed returns true once Close has been called.
func (c *Connection) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Connect dials the broker. It returns a *ConnectionError if the broker can not
// be reached, and ErrAlreadyConnected if the Connection is already connected.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.conn != nil {
		return ErrAlreadyConnected
	}

	conn, err := c.connector()
	if err != nil {
		return &ConnectionError{
			Host:  c.conf.Host,
			Port:  c.conf.Port,
			Vhost: c.conf.Vhost,
			Err:   err,
		}
	}
	c.conn = conn
	c.logger.Info("Connected", "host", c.conf.Host, "port", c.conf.Port, "vhost", c.conf.Vhost)
	return nil
}

func (c *Connection) connection() (RabbitMQ, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, ErrClosed
	}
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn, nil
}

// Channel returns the channel cached under name, opening it on first use. When
// opts.PrefetchCount is greater than zero the new channel's Qos is set. Later
// calls with the same name return the same channel and ignore opts.
func (c *Connection) Channel(name string, opts ResourceOptions) (Channel, error) {
	return c.channels.load(name, func() (Channel, error) {
		if err := opts.validate(); err != nil {
			return nil, err
		}
		conn, err := c.connection()
		if err != nil {
			return nil, err
		}
		ch, err := conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("creating channel: %w", err)
		}
		if opts.PrefetchCount > 0 {
			err = ch.Qos(opts.PrefetchCount, opts.PrefetchSize, false)
			if err != nil {
				c.logErr(ch.Close(), "closing channel", "channel", name)
				return nil, fmt.Errorf("setting Qos: %w", err)
			}
		}
		c.created("channel", name)
		return ch, nil
	})
}

// Exchange returns the exchange cached under name, creating the handle on its
// own channel of the same name. Later calls with the same name return the
// same handle and ignore opts.
func (c *Connection) Exchange(name string, opts ResourceOptions) (*Exchange, error) {
	return c.exchanges.load(name, func() (*Exchange, error) {
		if err := opts.validate(); err != nil {
			return nil, err
		}
		ch, err := c.Channel(name, opts)
		if err != nil {
			return nil, err
		}
		c.created("exchange", name)
		return &Exchange{
			name:    name,
			kind:    opts.Type,
			flags:   opts.Flags,
			args:    opts.Args,
			channel: ch,
		}, nil
	})
}

// Queue returns the queue cached under name, creating the handle on its own
// channel of the same name. Later calls with the same name return the same
// handle and ignore opts.
func (c *Connection) Queue(name string, opts ResourceOptions) (*Queue, error) {
	return c.queues.load(name, func() (*Queue, error) {
		if err := opts.validate(); err != nil {
			return nil, err
		}
		ch, err := c.Channel(name, opts)
		if err != nil {
			return nil, err
		}
		c.created("queue", name)
		return &Queue{
			owner:   c,
			name:    name,
			flags:   opts.Flags,
			args:    opts.Args,
			channel: ch,
		}, nil
	})
}

// Send prepares data with opts and publishes it to the topic exchange with the
// routing key. Serializer problems are returned as they are, any transport
// failure is returned as a *PublishError.
func (c *Connection) Send(ctx context.Context, topic, routingKey string, data any, opts MessageOptions) error {
	env, opts, err := Prepare(data, opts)
	if err != nil {
		return fmt.Errorf("preparing message: %w", err)
	}

	exch, err := c.Exchange(topic, ResourceOptions{})
	if err == nil {
		err = exch.Publish(ctx, routingKey, env.Publishing())
	}
	c.metrics.published(topic, len(env.Body), err)
	if err != nil {
		return &PublishError{Exchange: topic, RoutingKey: routingKey, Err: err}
	}

	if !opts.silent() {
		c.logger.V(1).Info("Published message",
			"exchange", topic,
			"routingKey", routingKey,
			"contentType", env.ContentType,
			"contentEncoding", env.ContentEncoding,
			"size", len(env.Body),
		)
	}
	return nil
}

// SendBatch sends every message in order and stops at the first failure. It
// returns the number of messages that were published; those are not rolled
// back on error.
func (c *Connection) SendBatch(ctx context.Context, topic, routingKey string, messages []any, opts MessageOptions) (int, error) {
	for i, data := range messages {
		if err := c.Send(ctx, topic, routingKey, data, opts); err != nil {
			return i, fmt.Errorf("sending message %d of %d: %w", i+1, len(messages), err)
		}
	}
	return len(messages), nil
}

// Close closes all cached channels and the connection. A closed Connection is
// not usable.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	// the caches take c.mu while creating, so they are drained unlocked.
	c.exchanges.drain()
	c.queues.drain()

	var err error
	for _, ch := range c.channels.drain() {
		if er := ch.Close(); er != nil {
			err = errors.Join(err, fmt.Errorf("closing channel: %w", er))
		}
	}
	if conn != nil {
		if er := conn.Close(); er != nil {
			err = errors.Join(err, fmt.Errorf("closing connection: %w", er))
		}
	}
	return err
}

func (c *Connection) created(kind, name string) {
	c.metrics.resourceCreated(kind)
	c.logger.V(1).Info("Created resource", "kind", kind, "name", name)
}

func (c *Connection) logErr(err error, msg string, kvs ...any) {
	if err != nil {
		c.logger.Error(err, msg, kvs...)
	}
}
