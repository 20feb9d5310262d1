package processmq_test

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arsham/retry/v2"
	"github.com/bombsimon/logrusr/v4"
	"github.com/docker/docker/api/types/container"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	"github.com/blokur/testament"

	"github.com/blokur/processmq"
	"github.com/blokur/processmq/mocks"
)

var retryConfig = &retry.Retry{
	Attempts: 5,
	Delay:    time.Second,
}

func randomBody(lines int) string {
	body := make([]string, lines)
	for i := range body {
		body[i] = testament.RandomString(rand.IntN(100) + 10)
	}
	return strings.Join(body, "\n")
}

// testLogger discards everything below the error level.
func testLogger() logr.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return logrusr.New(l)
}

// countingRabbit returns a mocked connection handing out new channels, and a
// counter of the channels it opened.
func countingRabbit() (*mocks.RabbitMQSimple, *atomic.Int32) {
	var count atomic.Int32
	return &mocks.RabbitMQSimple{
		ChannelFunc: func() (processmq.Channel, error) {
			count.Add(1)
			return &mocks.ChannelSimple{}, nil
		},
	}, &count
}

// connectedWith returns a connected Connection using r.
func connectedWith(t *testing.T, r processmq.RabbitMQ, conf ...processmq.ConfigFunc) *processmq.Connection {
	t.Helper()
	conf = append([]processmq.ConfigFunc{
		processmq.WithLogger(testLogger()),
		processmq.WithConnector(func() (processmq.RabbitMQ, error) { return r, nil }),
	}, conf...)
	conn, err := processmq.NewConnection(processmq.DefaultConfig(), conf...)
	require.NoError(t, err)
	require.NoError(t, conn.Connect())
	return conn
}

// getContainer returns a new container running rabbimq that is ready for
// accepting connections, and the connection configuration pointing at it.
func getContainer(t *testing.T) (*rabbitmq.RabbitMQContainer, processmq.Config) {
	t.Helper()
	ctx := context.Background()
	ctr, err := rabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine",
		testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Memory = 1 << 30
		}),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)

	port, err := ctr.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)

	conf := processmq.DefaultConfig()
	conf.Host = host
	conf.Port = port.Int()
	conf.User = ctr.AdminUsername
	conf.Password = ctr.AdminPassword
	return ctr, conf
}
