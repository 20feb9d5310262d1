package processmq

import (
	"errors"
	"fmt"
	"sync"
)

// Connections is a set of named connection configurations. A Connection is
// built and connected the first time its name is requested and is reused
// until it is closed. It is safe for concurrent use; dialling one name does
// not block the others.
type Connections struct {
	opts []ConfigFunc

	mu      sync.Mutex
	configs map[string]Config
	conns   map[string]*connEntry
}

// connEntry serialises the dials of one name. An entry dropped by Close is
// not used again.
type connEntry struct {
	mu      sync.Mutex
	conn    *Connection
	dropped bool
}

// NewConnections returns an empty set. The opts are passed to every
// Connection it creates.
func NewConnections(opts ...ConfigFunc) *Connections {
	return &Connections{
		opts:    opts,
		configs: make(map[string]Config),
		conns:   make(map[string]*connEntry),
	}
}

// SetConfig registers conf under name. A name can only be configured once.
func (c *Connections) SetConfig(name string, conf Config) error {
	if name == "" {
		return fmt.Errorf("empty connection name: %w", ErrInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.configs[name]; ok {
		return fmt.Errorf("connection %q: %w", name, ErrAlreadyConfigured)
	}
	conf.Name = name
	c.configs[name] = conf
	return nil
}

// Configure registers every configuration in confs.
func (c *Connections) Configure(confs map[string]Config) error {
	for name, conf := range confs {
		if err := c.SetConfig(name, conf); err != nil {
			return err
		}
	}
	return nil
}

// Configured returns true if name has a configuration.
func (c *Connections) Configured(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.configs[name]
	return ok
}

func (c *Connections) entry(name string) (*connEntry, Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conf, ok := c.configs[name]
	if !ok {
		return nil, Config{}, fmt.Errorf("connection %q: %w", name, ErrUnknownConnection)
	}
	e, ok := c.conns[name]
	if !ok {
		e = &connEntry{}
		c.conns[name] = e
	}
	return e, conf, nil
}

// Get returns the connected Connection for name. A Connection closed on its
// own is replaced with a new one.
func (c *Connections) Get(name string) (*Connection, error) {
	for {
		e, conf, err := c.entry(name)
		if err != nil {
			return nil, err
		}
		conn, err := c.connect(e, conf)
		if errors.Is(err, errDropped) {
			continue
		}
		return conn, err
	}
}

var errDropped = errors.New("connection entry dropped")

func (c *Connections) connect(e *connEntry, conf Config) (*Connection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dropped {
		return nil, errDropped
	}
	if e.conn != nil && !e.conn.Closed() {
		return e.conn, nil
	}
	conn, err := NewConnection(conf, c.opts...)
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", conf.Name, err)
	}
	if err := conn.Connect(); err != nil {
		return nil, err
	}
	e.conn = conn
	return conn, nil
}

// Broker returns the Connection for name as a Broker.
//
//nolint:ireturn // Connections implements BrokerResolver.
func (c *Connections) Broker(name string) (Broker, error) {
	conn, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Close closes every Connection created so far. The configurations are kept,
// so a later Get connects again. A dial in progress is waited for and its
// Connection closed.
func (c *Connections) Close() error {
	c.mu.Lock()
	entries := c.conns
	c.conns = make(map[string]*connEntry)
	c.mu.Unlock()

	var err error
	for name, e := range entries {
		e.mu.Lock()
		e.dropped = true
		if e.conn != nil {
			if er := e.conn.Close(); er != nil && !errors.Is(er, ErrClosed) {
				err = errors.Join(err, fmt.Errorf("connection %q: %w", name, er))
			}
			e.conn = nil
		}
		e.mu.Unlock()
	}
	return err
}
