package processmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ResourceOptions configure a channel, exchange or queue when it is first
// created. Fields that do not apply to a resource are ignored.
type ResourceOptions struct {
	// PrefetchCount sets the Qos of the channel when greater than zero.
	PrefetchCount int
	PrefetchSize  int

	// Type is the exchange type.
	Type  ExchangeType
	Flags Flag
	Args  amqp.Table
}

func (o ResourceOptions) validate() error {
	if o.PrefetchCount < 0 {
		return fmt.Errorf("not enough prefetch count: %d: %w", o.PrefetchCount, ErrInput)
	}
	if o.PrefetchSize < 0 {
		return fmt.Errorf("not enough prefetch size: %d: %w", o.PrefetchSize, ErrInput)
	}
	if !o.Type.IsValid() {
		return fmt.Errorf("exchange type: %q: %w", o.Type.String(), ErrInput)
	}
	return nil
}

// Exchange is a named exchange bound to a channel of its Connection. Creating
// the handle does not declare the exchange on the broker; call Declare for
// that.
type Exchange struct {
	name    string
	kind    ExchangeType
	flags   Flag
	args    amqp.Table
	channel Channel
}

// Name returns the exchange name.
func (e *Exchange) Name() string { return e.name }

// Type returns the exchange type.
func (e *Exchange) Type() ExchangeType { return e.kind }

// Flags returns the flags the exchange was created with.
func (e *Exchange) Flags() Flag { return e.flags }

// Channel returns the channel the exchange operates on.
func (e *Exchange) Channel() Channel { return e.channel }

// Declare declares the exchange with its type and flags. With FlagPassive it
// only checks the exchange exists.
func (e *Exchange) Declare() error {
	declare := e.channel.ExchangeDeclare
	if e.flags.Has(FlagPassive) {
		declare = e.channel.ExchangeDeclarePassive
	}
	err := declare(
		e.name,
		e.kind.String(),
		e.flags.Has(FlagDurable),
		e.flags.Has(FlagAutoDelete),
		e.flags.Has(FlagInternal),
		e.flags.Has(FlagNoWait),
		e.args,
	)
	if err != nil {
		return fmt.Errorf("declaring exchange %q: %w", e.name, err)
	}
	return nil
}

// Publish sends msg to the exchange with the routing key.
//
//nolint:gocritic // amqp.Publishing is passed by value to the channel.
func (e *Exchange) Publish(ctx context.Context, key string, msg amqp.Publishing) error {
	return e.channel.PublishWithContext(ctx, e.name, key, false, false, msg)
}
