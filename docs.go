// Package processmq publishes and consumes RabbitMQ messages through named
// connections and a registry of logical queues.
//
// # Envelope
//
// Prepare turns a payload into an Envelope: the payload is serialized (json or
// text), optionally compressed (gzip by default) and tagged with the content
// type, content encoding and delivery mode that end up in the message
// properties. Decode reverses this on the consuming side.
//
// # Connection
//
// A Connection owns one broker connection and lazily creates channels,
// exchanges and queues by name. The first call for a name decides the
// handle's options; later calls return the same handle and ignore the options
// they pass. All accessors are safe for concurrent use.
//
//	conn, err := processmq.NewConnection(processmq.DefaultConfig())
//	// handle error
//	err = conn.Connect()
//	// handle error
//	err = conn.Send(ctx, "orders", "create", order, processmq.MessageOptions{})
//
// Nothing is retried. A failed Send returns a *PublishError and SendBatch stops
// at the first failure, leaving earlier messages published.
//
// # Registry
//
// A Registry maps logical queue names to their publish and consume sections
// and dispatches to the named connection returned by a BrokerResolver, usually
// a *Connections value. Definitions are loaded from a Loader on first use.
//
//	conns := processmq.NewConnections()
//	// set up "rabbit" with conns.SetConfig
//	reg, err := processmq.NewRegistry(processmq.FileLoader("queues.yaml"), conns)
//	// handle error
//	err = reg.Publish(ctx, "orders", order, processmq.MessageOptions{})
package processmq
