package processmq

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	amqp "github.com/rabbitmq/amqp091-go"
)

// QueueDefinition is the configuration of a logical queue. Either section may
// be missing.
type QueueDefinition struct {
	Name    string         `yaml:"name"`
	Publish *PublishConfig `yaml:"publish"`
	Consume *ConsumeConfig `yaml:"consume"`
}

// PublishConfig says where messages of a logical queue are sent to. The
// message options set here win over the ones passed to Registry.Publish.
type PublishConfig struct {
	Connection string `yaml:"connection"`
	Exchange   string `yaml:"exchange"`
	Routing    string `yaml:"routing"`

	MessageOptions `yaml:",inline"`
}

// ConsumeConfig says which queue a logical queue is consumed from.
type ConsumeConfig struct {
	Connection    string     `yaml:"connection"`
	Queue         string     `yaml:"queue"`
	PrefetchCount int        `yaml:"prefetchCount"`
	PrefetchSize  int        `yaml:"prefetchSize"`
	Flags         Flag       `yaml:"flags"`
	Args          amqp.Table `yaml:"args"`
}

// Registry resolves logical queue names to their definitions and to the
// brokers configured for them. Definitions are loaded on first use. It is safe
// for concurrent use.
// nolint:govet // most likely not an issue, but cleaner this way.
type Registry struct {
	loader  Loader
	brokers BrokerResolver
	logger  logr.Logger

	mu         sync.Mutex
	loaded     bool
	config     map[string]QueueDefinition
	publishers map[string]Broker
	consumers  map[string]*Queue
}

// NewRegistry returns a Registry reading definitions from loader and
// connections from brokers. Only the WithLogger option is used.
func NewRegistry(loader Loader, brokers BrokerResolver, conf ...ConfigFunc) (*Registry, error) {
	if loader == nil {
		return nil, fmt.Errorf("empty queue loader: %w", ErrInput)
	}
	if brokers == nil {
		return nil, fmt.Errorf("empty broker resolver: %w", ErrInput)
	}
	cnf := newConfig(conf)
	r := &Registry{
		loader:  loader,
		brokers: brokers,
		logger:  cnf.logger.WithName("registry"),
	}
	r.reset()
	return r, nil
}

func (r *Registry) reset() {
	r.config = make(map[string]QueueDefinition)
	r.publishers = make(map[string]Broker)
	r.consumers = make(map[string]*Queue)
}

// Load reads the definitions from the loader, replacing the current ones.
// Cached publishers and consumers are kept.
func (r *Registry) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *Registry) load() error {
	defs, err := r.loader.Load()
	if err != nil {
		return fmt.Errorf("loading queue definitions: %w", err)
	}
	config := make(map[string]QueueDefinition, len(defs))
	for name, def := range defs {
		if def.Name == "" {
			def.Name = name
		}
		config[name] = def
	}
	r.config = config
	r.loaded = true
	r.logger.V(1).Info("Loaded queue definitions", "count", len(config))
	return nil
}

func (r *Registry) lazyLoad() error {
	if r.loaded {
		return nil
	}
	return r.load()
}

// Configured returns true if name is defined. It loads the definitions on
// first use; a failed load is logged and reported as not configured.
func (r *Registry) Configured(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.lazyLoad(); err != nil {
		r.logger.Error(err, "Loading queue definitions", "queue", name)
		return false
	}
	_, ok := r.config[name]
	return ok
}

// Get returns the definition of name or an *UnknownQueueError.
func (r *Registry) Get(name string) (QueueDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(name)
}

func (r *Registry) get(name string) (QueueDefinition, error) {
	if err := r.lazyLoad(); err != nil {
		return QueueDefinition{}, err
	}
	def, ok := r.config[name]
	if !ok {
		return QueueDefinition{}, &UnknownQueueError{Name: name}
	}
	return def, nil
}

// Consume returns the queue to consume name from. The connection defaults to
// "rabbit", the prefetch count to 1 and the queue name to name. The queue is
// cached by name, so the first call decides its options. A queue whose
// connection has been closed is resolved again.
func (r *Registry) Consume(name string) (*Queue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, err := r.get(name)
	if err != nil {
		return nil, err
	}
	if def.Consume == nil {
		return nil, &MissingSubConfigError{Name: name, Section: "consumer"}
	}
	if q, ok := r.consumers[name]; ok && !q.closed() {
		return q, nil
	}

	conf := *def.Consume
	if conf.Connection == "" {
		conf.Connection = defaultConnection
	}
	if conf.PrefetchCount == 0 {
		conf.PrefetchCount = 1
	}
	if conf.Queue == "" {
		conf.Queue = name
	}

	broker, err := r.brokers.Broker(conf.Connection)
	if err != nil {
		return nil, fmt.Errorf("consumer %q: %w", name, err)
	}
	q, err := broker.Queue(conf.Queue, ResourceOptions{
		PrefetchCount: conf.PrefetchCount,
		PrefetchSize:  conf.PrefetchSize,
		Flags:         conf.Flags,
		Args:          conf.Args,
	})
	if err != nil {
		return nil, fmt.Errorf("consumer %q: %w", name, err)
	}
	r.consumers[name] = q
	return q, nil
}

// Publish sends data to the exchange and routing key configured for name. The
// configured message options win over opts.
func (r *Registry) Publish(ctx context.Context, name string, data any, opts MessageOptions) error {
	broker, conf, err := r.publisher(name)
	if err != nil {
		return err
	}
	return broker.Send(ctx, conf.Exchange, conf.Routing, data, conf.MessageOptions.Merge(opts))
}

// closed reports whether b can tell it has been closed and is.
func closed(b Broker) bool {
	c, ok := b.(interface{ Closed() bool })
	return ok && c.Closed()
}

// publisher resolves the broker under the lock, again when the cached one
// has been closed. The send itself runs unlocked so publishers of different
// queues do not wait on each other.
//
//nolint:ireturn // the broker is whatever the resolver returns.
func (r *Registry) publisher(name string) (Broker, PublishConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, err := r.get(name)
	if err != nil {
		return nil, PublishConfig{}, err
	}
	if def.Publish == nil {
		return nil, PublishConfig{}, &MissingSubConfigError{Name: name, Section: "publisher"}
	}
	conf := *def.Publish
	if conf.Connection == "" {
		conf.Connection = defaultConnection
	}

	broker, ok := r.publishers[name]
	if !ok || closed(broker) {
		broker, err = r.brokers.Broker(conf.Connection)
		if err != nil {
			return nil, PublishConfig{}, fmt.Errorf("publisher %q: %w", name, err)
		}
		r.publishers[name] = broker
	}
	return broker, conf, nil
}

// Clear drops the definitions and the cached publishers and consumers. The
// definitions stay empty until Load is called.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
	r.loaded = true
}
