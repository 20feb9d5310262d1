package processmq

import (
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"gopkg.in/yaml.v3"
)

// ExchangeType is the kind of exchange.
type ExchangeType int

const (
	// ExchangeTypeDirect defines a direct exchange.
	ExchangeTypeDirect ExchangeType = iota

	// ExchangeTypeFanout defines a fanout exchange.
	ExchangeTypeFanout

	// ExchangeTypeTopic defines a topic exchange.
	ExchangeTypeTopic

	// ExchangeTypeHeaders defines a headers exchange.
	ExchangeTypeHeaders

	_invalidExchangeType
)

// IsValid returns true if the object is within the valid boundries.
func (e ExchangeType) IsValid() bool {
	return e < _invalidExchangeType && e >= 0
}

func (e ExchangeType) String() string {
	switch e {
	case ExchangeTypeDirect:
		return amqp.ExchangeDirect
	case ExchangeTypeFanout:
		return amqp.ExchangeFanout
	case ExchangeTypeTopic:
		return amqp.ExchangeTopic
	case ExchangeTypeHeaders:
		return amqp.ExchangeHeaders
	}
	return ""
}

// UnmarshalYAML decodes the exchange type from its name.
func (e *ExchangeType) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for t := ExchangeTypeDirect; t < _invalidExchangeType; t++ {
		if t.String() == name {
			*e = t
			return nil
		}
	}
	return fmt.Errorf("exchange type %q: %w", name, ErrInput)
}

// DeliveryMode is the DeliveryMode of a amqp.Publishing message.
type DeliveryMode uint8

const (
	// DeliveryModeTransient means higher throughput but messages will not be
	// restored on broker restart. The delivery mode of publishings is unrelated
	// to the durability of the queues they reside on. Transient messages will not
	// be restored to durable queues.
	DeliveryModeTransient = DeliveryMode(amqp.Transient)

	// DeliveryModePersistent messages will be restored to
	// durable queues and lost on non-durable queues during server restart.
	DeliveryModePersistent = DeliveryMode(amqp.Persistent)
)

// IsValid returns true if the object is within the valid boundries.
func (d DeliveryMode) IsValid() bool {
	return d == DeliveryModePersistent || d == DeliveryModeTransient
}

func (d DeliveryMode) String() string {
	switch d {
	case DeliveryModeTransient:
		return "DeliveryModeTransient"
	case DeliveryModePersistent:
		return "DeliveryModePersistent"
	}
	return fmt.Sprintf("DeliveryMode(%d)", uint8(d))
}

// Flag is a bit set of exchange and queue properties. Flags that do not apply
// to a resource are ignored when it is declared.
type Flag uint16

const (
	// FlagDurable keeps the exchange or queue after a broker restart.
	FlagDurable Flag = 1 << iota

	// FlagPassive only checks the resource exists on declaration.
	FlagPassive

	// FlagAutoDelete removes the resource when the last binding or consumer
	// is gone.
	FlagAutoDelete

	// FlagExclusive restricts the queue to the declaring connection.
	FlagExclusive

	// FlagInternal prevents publishing to the exchange directly.
	FlagInternal

	// FlagNoWait declares without waiting for the broker's confirmation.
	FlagNoWait
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagDurable, "durable"},
	{FlagPassive, "passive"},
	{FlagAutoDelete, "auto_delete"},
	{FlagExclusive, "exclusive"},
	{FlagInternal, "internal"},
	{FlagNoWait, "no_wait"},
}

// Has returns true if all bits of o are set in f.
func (f Flag) Has(o Flag) bool {
	return f&o == o
}

func (f Flag) String() string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// UnmarshalYAML decodes a list of flag names, for example
// [durable, auto_delete].
func (f *Flag) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	var flags Flag
names:
	for _, name := range names {
		for _, fn := range flagNames {
			if fn.name == name {
				flags |= fn.flag
				continue names
			}
		}
		return fmt.Errorf("flag %q: %w", name, ErrInput)
	}
	*f = flags
	return nil
}

// Serializer selects how a payload is turned into a message body.
type Serializer string

const (
	// SerializerAuto picks the first available serializer from
	// serializerPriority.
	SerializerAuto Serializer = ""

	// SerializerJSON encodes the payload with encoding/json.
	SerializerJSON Serializer = "json"

	// SerializerText sends a string payload as is.
	SerializerText Serializer = "text"
)

// Content types set on published messages.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "application/text"
)

// serializerPriority is walked once when the package is loaded to resolve
// SerializerAuto.
var serializerPriority = []Serializer{SerializerJSON, SerializerText}

var defaultSerializer = func() Serializer {
	for _, s := range serializerPriority {
		if _, ok := serializers[s]; ok {
			return s
		}
	}
	return SerializerText
}()

// Compressor selects the algorithm used to compress message bodies. Its value
// is also the content encoding of the message.
type Compressor string

const (
	// CompressorGzip compresses bodies into a gzip stream.
	CompressorGzip Compressor = "gzip"

	// CompressorDeflate compresses bodies into a zlib stream.
	CompressorDeflate Compressor = "deflate"
)
