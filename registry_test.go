package processmq_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blokur/testament"

	"github.com/blokur/processmq"
	"github.com/blokur/processmq/mocks"
)

type brokerMock struct {
	mock.Mock
}

func (b *brokerMock) Send(ctx context.Context, topic, routingKey string, data any, opts processmq.MessageOptions) error {
	return b.Called(ctx, topic, routingKey, data, opts).Error(0)
}

func (b *brokerMock) Queue(name string, opts processmq.ResourceOptions) (*processmq.Queue, error) {
	ret := b.Called(name, opts)
	q, _ := ret.Get(0).(*processmq.Queue)
	return q, ret.Error(1)
}

type resolverMock map[string]processmq.Broker

func (r resolverMock) Broker(name string) (processmq.Broker, error) {
	b, ok := r[name]
	if !ok {
		return nil, processmq.ErrUnknownConnection
	}
	return b, nil
}

func staticLoader(defs map[string]processmq.QueueDefinition) processmq.LoaderFunc {
	return func() (map[string]processmq.QueueDefinition, error) {
		return defs, nil
	}
}

func newRegistry(t *testing.T, loader processmq.Loader, brokers processmq.BrokerResolver) *processmq.Registry {
	t.Helper()
	reg, err := processmq.NewRegistry(loader, brokers, processmq.WithLogger(testLogger()))
	require.NoError(t, err)
	return reg
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()
	_, err := processmq.NewRegistry(nil, resolverMock{})
	testament.AssertInError(t, err, processmq.ErrInput)
	assert.Contains(t, err.Error(), "loader")

	_, err = processmq.NewRegistry(staticLoader(nil), nil)
	testament.AssertInError(t, err, processmq.ErrInput)
	assert.Contains(t, err.Error(), "resolver")
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	t.Run("Configured", testRegistryConfigured)
	t.Run("Get", testRegistryGet)
	t.Run("LazyLoad", testRegistryLazyLoad)
	t.Run("LoadError", testRegistryLoadError)
	t.Run("Clear", testRegistryClear)
}

func testRegistryConfigured(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {},
	}), resolverMock{})

	assert.True(t, reg.Configured("orders"))
	assert.False(t, reg.Configured("missing"))
}

func testRegistryGet(t *testing.T) {
	t.Parallel()
	publish := &processmq.PublishConfig{Exchange: "ex1", Routing: "create"}
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: publish},
	}), resolverMock{})

	def, err := reg.Get("orders")
	require.NoError(t, err)
	want := processmq.QueueDefinition{Name: "orders", Publish: publish}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	_, err = reg.Get("missing")
	var unknown *processmq.UnknownQueueError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func testRegistryLazyLoad(t *testing.T) {
	t.Parallel()
	var calls int
	loader := processmq.LoaderFunc(func() (map[string]processmq.QueueDefinition, error) {
		calls++
		return map[string]processmq.QueueDefinition{"orders": {}}, nil
	})
	reg := newRegistry(t, loader, resolverMock{})
	assert.Equal(t, 0, calls)

	reg.Configured("orders")
	reg.Configured("other")
	_, err := reg.Get("orders")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	require.NoError(t, reg.Load())
	assert.Equal(t, 2, calls)
}

func testRegistryLoadError(t *testing.T) {
	t.Parallel()
	loader := processmq.LoaderFunc(func() (map[string]processmq.QueueDefinition, error) {
		return nil, assert.AnError
	})
	reg := newRegistry(t, loader, resolverMock{})

	assert.False(t, reg.Configured("orders"))
	_, err := reg.Get("orders")
	testament.AssertInError(t, err, assert.AnError)
	err = reg.Publish(context.Background(), "orders", nil, processmq.MessageOptions{})
	testament.AssertInError(t, err, assert.AnError)
	testament.AssertInError(t, reg.Load(), assert.AnError)
}

func testRegistryClear(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	broker.On("Send", mock.Anything, "ex1", "create", mock.Anything, mock.Anything).
		Return(nil).Twice()
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1", Routing: "create"}},
	}), resolverMock{"rabbit": broker})

	require.True(t, reg.Configured("orders"))
	require.NoError(t, reg.Publish(context.Background(), "orders", 1, processmq.MessageOptions{}))

	reg.Clear()
	assert.False(t, reg.Configured("orders"))
	err := reg.Publish(context.Background(), "orders", 1, processmq.MessageOptions{})
	var unknown *processmq.UnknownQueueError
	require.ErrorAs(t, err, &unknown)

	require.NoError(t, reg.Load())
	assert.True(t, reg.Configured("orders"))
	require.NoError(t, reg.Publish(context.Background(), "orders", 1, processmq.MessageOptions{}))
	broker.AssertExpectations(t)
}

func TestRegistryPublish(t *testing.T) {
	t.Parallel()
	t.Run("Send", testRegistryPublish)
	t.Run("MergeOptions", testRegistryPublishMergeOptions)
	t.Run("MissingSection", testRegistryPublishMissingSection)
	t.Run("SendError", testRegistryPublishSendError)
	t.Run("UnknownConnection", testRegistryPublishUnknownConnection)
	t.Run("Connection", testRegistryPublishConnection)
	t.Run("Reconnect", testRegistryPublishReconnect)
}

func testRegistryPublish(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	data := map[string]any{"id": 1}
	broker.On("Send", mock.Anything, "ex1", "create", data, processmq.MessageOptions{}).
		Return(nil).Once()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1", Routing: "create"}},
	}), resolverMock{"rabbit": broker})

	err := reg.Publish(context.Background(), "orders", data, processmq.MessageOptions{})
	require.NoError(t, err)
	broker.AssertExpectations(t)
	broker.AssertNumberOfCalls(t, "Send", 1)
}

func testRegistryPublishMergeOptions(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	want := processmq.MessageOptions{
		Compress:     processmq.Bool(false),
		Serializer:   processmq.SerializerText,
		DeliveryMode: processmq.DeliveryModePersistent,
	}
	broker.On("Send", mock.Anything, "ex1", "create", "data", want).Return(nil).Once()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{
			Exchange: "ex1",
			Routing:  "create",
			MessageOptions: processmq.MessageOptions{
				Compress:   processmq.Bool(false),
				Serializer: processmq.SerializerText,
			},
		}},
	}), resolverMock{"rabbit": broker})

	err := reg.Publish(context.Background(), "orders", "data", processmq.MessageOptions{
		Compress:     processmq.Bool(true),
		DeliveryMode: processmq.DeliveryModePersistent,
	})
	require.NoError(t, err)
	broker.AssertExpectations(t)
}

func testRegistryPublishMissingSection(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs": {Consume: &processmq.ConsumeConfig{}},
	}), resolverMock{})

	err := reg.Publish(context.Background(), "jobs", 1, processmq.MessageOptions{})
	var missing *processmq.MissingSubConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "jobs", missing.Name)
	assert.Equal(t, "publisher", missing.Section)
}

func testRegistryPublishSendError(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	pubErr := &processmq.PublishError{Exchange: "ex1", Err: assert.AnError}
	broker.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(pubErr).Once()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1"}},
	}), resolverMock{"rabbit": broker})

	err := reg.Publish(context.Background(), "orders", 1, processmq.MessageOptions{})
	assert.Same(t, pubErr, err)
}

func testRegistryPublishUnknownConnection(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1", Connection: "other"}},
	}), resolverMock{})

	err := reg.Publish(context.Background(), "orders", 1, processmq.MessageOptions{})
	testament.AssertInError(t, err, processmq.ErrUnknownConnection)
}

func testRegistryPublishConnection(t *testing.T) {
	t.Parallel()
	var sent int
	ch := &mocks.ChannelSimple{
		PublishWithContextFunc: func(_ context.Context, exchange, key string, _, _ bool, _ amqp.Publishing) error {
			assert.Equal(t, "ex1", exchange)
			assert.Equal(t, "create", key)
			sent++
			return nil
		},
	}
	conns := processmq.NewConnections(
		processmq.WithLogger(testLogger()),
		processmq.WithConnector(func() (processmq.RabbitMQ, error) {
			return &mocks.RabbitMQSimple{
				ChannelFunc: func() (processmq.Channel, error) { return ch, nil },
			}, nil
		}),
	)
	require.NoError(t, conns.SetConfig("rabbit", processmq.DefaultConfig()))

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1", Routing: "create"}},
	}), conns)

	for range 3 {
		require.NoError(t, reg.Publish(context.Background(), "orders", map[string]int{"id": 1}, processmq.MessageOptions{}))
	}
	assert.Equal(t, 3, sent)
	require.NoError(t, conns.Close())
}

func TestRegistryConsume(t *testing.T) {
	t.Parallel()
	t.Run("Defaults", testRegistryConsume)
	t.Run("Config", testRegistryConsumeConfig)
	t.Run("Cached", testRegistryConsumeCached)
	t.Run("MissingSection", testRegistryConsumeMissingSection)
	t.Run("Unknown", testRegistryConsumeUnknown)
	t.Run("QueueError", testRegistryConsumeQueueError)
	t.Run("Reconnect", testRegistryConsumeReconnect)
}

func testRegistryConsume(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	q := &processmq.Queue{}
	broker.On("Queue", "jobs", processmq.ResourceOptions{PrefetchCount: 1}).Return(q, nil).Once()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs": {Consume: &processmq.ConsumeConfig{}},
	}), resolverMock{"rabbit": broker})

	got, err := reg.Consume("jobs")
	require.NoError(t, err)
	assert.Same(t, q, got)
	broker.AssertExpectations(t)
}

func testRegistryConsumeConfig(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	q := &processmq.Queue{}
	broker.On("Queue", "jobs.v1", processmq.ResourceOptions{
		PrefetchCount: 20,
		PrefetchSize:  1024,
		Flags:         processmq.FlagDurable,
	}).Return(q, nil).Once()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs": {Consume: &processmq.ConsumeConfig{
			Connection:    "workers",
			Queue:         "jobs.v1",
			PrefetchCount: 20,
			PrefetchSize:  1024,
			Flags:         processmq.FlagDurable,
		}},
	}), resolverMock{"workers": broker})

	got, err := reg.Consume("jobs")
	require.NoError(t, err)
	assert.Same(t, q, got)
	broker.AssertExpectations(t)
}

func testRegistryConsumeCached(t *testing.T) {
	t.Parallel()
	r, count := countingRabbit()
	conns := processmq.NewConnections(
		processmq.WithLogger(testLogger()),
		processmq.WithConnector(func() (processmq.RabbitMQ, error) { return r, nil }),
	)
	require.NoError(t, conns.SetConfig("rabbit", processmq.Config{}))

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs":  {Consume: &processmq.ConsumeConfig{Queue: "shared"}},
		"other": {Consume: &processmq.ConsumeConfig{Queue: "shared", PrefetchCount: 50}},
	}), conns)

	q1, err := reg.Consume("jobs")
	require.NoError(t, err)
	q2, err := reg.Consume("jobs")
	require.NoError(t, err)
	q3, err := reg.Consume("other")
	require.NoError(t, err)

	assert.Same(t, q1, q2)
	assert.Same(t, q1, q3, "the connection caches queues by name")
	assert.Equal(t, "shared", q1.Name())
	assert.EqualValues(t, 1, count.Load())
}

func testRegistryConsumeMissingSection(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{}},
	}), resolverMock{})

	_, err := reg.Consume("orders")
	var missing *processmq.MissingSubConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "consumer", missing.Section)
}

func testRegistryConsumeUnknown(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t, staticLoader(nil), resolverMock{})

	_, err := reg.Consume("missing")
	var unknown *processmq.UnknownQueueError
	require.ErrorAs(t, err, &unknown)
}

func testRegistryConsumeQueueError(t *testing.T) {
	t.Parallel()
	broker := &brokerMock{}
	broker.On("Queue", mock.Anything, mock.Anything).Return(nil, assert.AnError).Twice()

	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs": {Consume: &processmq.ConsumeConfig{}},
	}), resolverMock{"rabbit": broker})

	for range 2 {
		_, err := reg.Consume("jobs")
		testament.AssertInError(t, err, assert.AnError)
	}
	broker.AssertExpectations(t)
}

func testRegistryPublishReconnect(t *testing.T) {
	t.Parallel()
	var dials, sent atomic.Int32
	conns := processmq.NewConnections(
		processmq.WithLogger(testLogger()),
		processmq.WithConnector(func() (processmq.RabbitMQ, error) {
			dials.Add(1)
			return &mocks.RabbitMQSimple{
				ChannelFunc: func() (processmq.Channel, error) {
					return &mocks.ChannelSimple{
						PublishWithContextFunc: func(context.Context, string, string, bool, bool, amqp.Publishing) error {
							sent.Add(1)
							return nil
						},
					}, nil
				},
			}, nil
		}),
	)
	require.NoError(t, conns.SetConfig("rabbit", processmq.DefaultConfig()))
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"orders": {Publish: &processmq.PublishConfig{Exchange: "ex1", Routing: "create"}},
	}), conns)

	ctx := context.Background()
	require.NoError(t, reg.Publish(ctx, "orders", 1, processmq.MessageOptions{}))
	require.NoError(t, conns.Close())
	require.NoError(t, reg.Publish(ctx, "orders", 2, processmq.MessageOptions{}))

	assert.EqualValues(t, 2, dials.Load())
	assert.EqualValues(t, 2, sent.Load())
}

func testRegistryConsumeReconnect(t *testing.T) {
	t.Parallel()
	r, count := countingRabbit()
	conns := processmq.NewConnections(
		processmq.WithLogger(testLogger()),
		processmq.WithConnector(func() (processmq.RabbitMQ, error) { return r, nil }),
	)
	require.NoError(t, conns.SetConfig("rabbit", processmq.DefaultConfig()))
	reg := newRegistry(t, staticLoader(map[string]processmq.QueueDefinition{
		"jobs": {Consume: &processmq.ConsumeConfig{}},
	}), conns)

	q1, err := reg.Consume("jobs")
	require.NoError(t, err)
	require.NoError(t, conns.Close())

	q2, err := reg.Consume("jobs")
	require.NoError(t, err)
	assert.NotSame(t, q1, q2)
	assert.Equal(t, "jobs", q2.Name())
	assert.EqualValues(t, 2, count.Load())

	q3, err := reg.Consume("jobs")
	require.NoError(t, err)
	assert.Same(t, q2, q3)
}
