package processmq

import (
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/blokur/processmq/internal"
)

const (
	defaultDialTimeout = 30 * time.Second
	defaultHeartbeat   = 10 * time.Second
	defaultLocale      = "en_US"
	defaultReadTimeout = 48 * time.Hour
	defaultConnection  = "rabbit"
)

// Config holds the parameters of one broker connection. A zero field takes
// the value from DefaultConfig.
type Config struct {
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Vhost    string `yaml:"vhost"`

	// Timeout bounds dialling and the protocol handshake. Zero means 30s.
	Timeout time.Duration `yaml:"timeout"`

	// ReadTimeout bounds every read on the socket once connected. Reads under
	// a heartbeat deadline keep that deadline.
	ReadTimeout time.Duration `yaml:"readTimeout"`
}

// DefaultConfig returns the configuration of a local broker with the guest
// account.
func DefaultConfig() Config {
	return Config{
		User:        "guest",
		Password:    "guest",
		Host:        "localhost",
		Port:        5672,
		Vhost:       "/",
		ReadTimeout: defaultReadTimeout,
	}
}

// ConfigFromEnv reads the connection parameters from environment variables
// named PREFIX_USER, PREFIX_PASSWORD, PREFIX_HOST, PREFIX_PORT, PREFIX_VHOST,
// PREFIX_TIMEOUT and PREFIX_READ_TIMEOUT. Unset variables keep the defaults.
func ConfigFromEnv(prefix string) (Config, error) {
	if prefix == "" {
		return Config{}, fmt.Errorf("empty environment prefix: %w", ErrInput)
	}
	env, err := internal.LoadEnv(prefix)
	if err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return Config{
		User:        env.User,
		Password:    env.Password,
		Host:        env.Host,
		Port:        env.Port,
		Vhost:       env.Vhost,
		Timeout:     env.Timeout,
		ReadTimeout: env.ReadTimeout,
	}.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.User == "" {
		c.User = def.User
	}
	if c.Password == "" {
		c.Password = def.Password
	}
	if c.Host == "" {
		c.Host = def.Host
	}
	if c.Port == 0 {
		c.Port = def.Port
	}
	if c.Vhost == "" {
		c.Vhost = def.Vhost
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	return c
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d: %w", c.Port, ErrInput)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout: %s: %w", c.Timeout, ErrInput)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("negative read timeout: %s: %w", c.ReadTimeout, ErrInput)
	}
	return nil
}

// URI returns the amqp URI of the configuration. It contains the password.
func (c Config) URI() amqp.URI {
	return amqp.URI{
		Scheme:   "amqp",
		Host:     c.Host,
		Port:     c.Port,
		Username: c.User,
		Password: c.Password,
		Vhost:    c.Vhost,
	}
}

// rabbitWrapper is defined to make it easy for passing a mocked connection.
type rabbitWrapper struct {
	*amqp.Connection
}

// Channel returns the underlying channel.
func (r *rabbitWrapper) Channel() (Channel, error) {
	ch, err := r.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// ConfigConnector returns a Connector that dials the broker described by
// conf. Timeout limits the dial and handshake, ReadTimeout is applied to reads
// once the connection is open.
func ConfigConnector(conf Config) Connector {
	return func() (RabbitMQ, error) {
		timeout := conf.Timeout
		if timeout == 0 {
			timeout = defaultDialTimeout
		}
		var wrapped *readTimeoutConn
		conn, err := amqp.DialConfig(conf.URI().String(), amqp.Config{
			Vhost:     conf.Vhost,
			Heartbeat: defaultHeartbeat,
			Locale:    defaultLocale,
			Dial: dialer(timeout, conf.ReadTimeout, func(c *readTimeoutConn) {
				wrapped = c
			}),
		})
		if err != nil {
			return nil, err
		}
		if wrapped != nil {
			wrapped.arm()
		}
		return &rabbitWrapper{conn}, nil
	}
}

// URLConnector returns a Connector that dials the url.
func URLConnector(url string) Connector {
	return func() (RabbitMQ, error) {
		conn, err := amqp.Dial(url)
		if err != nil {
			return nil, err
		}
		return &rabbitWrapper{conn}, nil
	}
}

// dialer sets a deadline for the handshake, the same way amqp.DefaultDial
// does. The client clears it once the connection is open. When readTimeout is
// set the connection is wrapped and handed to wrapped, unarmed.
func dialer(timeout, readTimeout time.Duration, wrapped func(*readTimeoutConn)) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		conn, err := net.DialTimeout(network, addr, timeout)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			conn.Close()
			return nil, err
		}
		if readTimeout == 0 {
			return conn, nil
		}
		rc := &readTimeoutConn{Conn: conn, timeout: readTimeout}
		wrapped(rc)
		return rc, nil
	}
}

// readTimeoutConn applies timeout to every read once armed, unless the client
// has set a read deadline of its own, as the heartbeater does after each
// frame.
type readTimeoutConn struct {
	net.Conn
	timeout  time.Duration
	armed    atomic.Bool
	deadline atomic.Int64 // client read deadline in unix nanoseconds, 0 when unset.
}

func (c *readTimeoutConn) arm() {
	c.armed.Store(true)
}

func (c *readTimeoutConn) setClientDeadline(t time.Time) {
	if t.IsZero() {
		c.deadline.Store(0)
		return
	}
	c.deadline.Store(t.UnixNano())
}

func (c *readTimeoutConn) SetDeadline(t time.Time) error {
	c.setClientDeadline(t)
	return c.Conn.SetDeadline(t)
}

func (c *readTimeoutConn) SetReadDeadline(t time.Time) error {
	c.setClientDeadline(t)
	return c.Conn.SetReadDeadline(t)
}

func (c *readTimeoutConn) Read(b []byte) (int, error) {
	if c.armed.Load() && c.deadline.Load() == 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

// ConfigFunc is a function for setting up a Connection, a Connections set or
// a Registry.
type ConfigFunc func(*config)

type config struct {
	logger    logr.Logger
	connector Connector
	metrics   *Metrics
}

func defaultConfig() *config {
	return &config{
		logger: logrusr.New(logrus.New()),
	}
}

func newConfig(conf []ConfigFunc) *config {
	cnf := defaultConfig()
	for _, fn := range conf {
		fn(cnf)
	}
	return cnf
}

// WithLogger sets the logger. The default logger writes to stderr through
// logrus.
func WithLogger(l logr.Logger) ConfigFunc {
	return func(c *config) {
		c.logger = l
	}
}

// WithConnector replaces the Connector built from the Config. Every
// Connection created with this option uses c.
func WithConnector(c Connector) ConfigFunc {
	return func(cnf *config) {
		cnf.connector = c
	}
}

// WithMetrics records publishes and resource creations in m.
func WithMetrics(m *Metrics) ConfigFunc {
	return func(c *config) {
		c.metrics = m
	}
}
