package processmq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageOptions controls how a payload is prepared for publishing. Nil and
// zero fields are unset and are filled in when options are merged.
type MessageOptions struct {
	// Silent suppresses the per message trace log.
	Silent *bool `yaml:"silent,omitempty"`

	// Compress compresses the serialized body.
	Compress *bool `yaml:"compress,omitempty"`

	Serializer   Serializer   `yaml:"serializer,omitempty"`
	Compressor   Compressor   `yaml:"compressor,omitempty"`
	DeliveryMode DeliveryMode `yaml:"delivery_mode,omitempty"`
}

// DefaultMessageOptions returns the options used for every field the caller
// leaves unset.
func DefaultMessageOptions() MessageOptions {
	return MessageOptions{
		Silent:       Bool(false),
		Compress:     Bool(true),
		Serializer:   defaultSerializer,
		Compressor:   CompressorGzip,
		DeliveryMode: DeliveryModeTransient,
	}
}

// Bool returns a pointer to b, for setting the optional MessageOptions fields.
func Bool(b bool) *bool {
	return &b
}

// Merge returns o with every unset field taken from base.
func (o MessageOptions) Merge(base MessageOptions) MessageOptions {
	if o.Silent == nil {
		o.Silent = base.Silent
	}
	if o.Compress == nil {
		o.Compress = base.Compress
	}
	if o.Serializer == SerializerAuto {
		o.Serializer = base.Serializer
	}
	if o.Compressor == "" {
		o.Compressor = base.Compressor
	}
	if o.DeliveryMode == 0 {
		o.DeliveryMode = base.DeliveryMode
	}
	return o
}

func (o MessageOptions) silent() bool {
	return o.Silent != nil && *o.Silent
}

// Envelope is a prepared message body with the properties describing it.
// ContentEncoding is empty when the body is not compressed.
type Envelope struct {
	Body            []byte
	ContentType     string
	ContentEncoding string
	DeliveryMode    DeliveryMode
}

// Publishing returns the envelope as an amqp.Publishing.
func (e Envelope) Publishing() amqp.Publishing {
	return amqp.Publishing{
		Body:            e.Body,
		ContentType:     e.ContentType,
		ContentEncoding: e.ContentEncoding,
		DeliveryMode:    uint8(e.DeliveryMode),
	}
}

type serializer struct {
	contentType string
	marshal     func(any) ([]byte, error)
}

var serializers = map[Serializer]serializer{
	SerializerJSON: {ContentTypeJSON, json.Marshal},
	SerializerText: {ContentTypeText, marshalText},
}

func marshalText(data any) ([]byte, error) {
	switch v := data.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("text serializer can not encode %T: %w", data, ErrInput)
}

// Prepare serializes data, compresses it when asked and returns the envelope
// together with the options after merging them with DefaultMessageOptions.
// It has no side effects.
func Prepare(data any, opts MessageOptions) (Envelope, MessageOptions, error) {
	opts = opts.Merge(DefaultMessageOptions())

	s, ok := serializers[opts.Serializer]
	if !ok {
		return Envelope{}, opts, &UnsupportedSerializerError{Serializer: opts.Serializer}
	}
	if opts.DeliveryMode != 0 && !opts.DeliveryMode.IsValid() {
		return Envelope{}, opts, fmt.Errorf("delivery mode: %q: %w", opts.DeliveryMode.String(), ErrInput)
	}

	body, err := s.marshal(data)
	if err != nil {
		return Envelope{}, opts, fmt.Errorf("serializing with %s: %w", opts.Serializer, err)
	}

	env := Envelope{
		Body:         body,
		ContentType:  s.contentType,
		DeliveryMode: opts.DeliveryMode,
	}

	if opts.Compress != nil && *opts.Compress {
		env.Body, err = compress(opts.Compressor, body)
		if err != nil {
			return Envelope{}, opts, err
		}
		env.ContentEncoding = string(opts.Compressor)
	}
	return env, opts, nil
}

func compress(c Compressor, body []byte) ([]byte, error) {
	var (
		buf bytes.Buffer
		w   io.WriteCloser
	)
	switch c {
	case CompressorGzip:
		w = gzip.NewWriter(&buf)
	case CompressorDeflate:
		w = zlib.NewWriter(&buf)
	default:
		return nil, fmt.Errorf("compressor %q: %w", string(c), ErrInput)
	}
	if _, err := w.Write(body); err != nil {
		return nil, fmt.Errorf("compressing body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing body: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeBody returns the body decompressed according to its content encoding.
// An empty encoding returns the body unchanged.
func DecodeBody(contentEncoding string, body []byte) ([]byte, error) {
	var (
		r   io.ReadCloser
		err error
	)
	switch Compressor(contentEncoding) {
	case "":
		return body, nil
	case CompressorGzip:
		r, err = gzip.NewReader(bytes.NewReader(body))
	case CompressorDeflate:
		r, err = zlib.NewReader(bytes.NewReader(body))
	default:
		return nil, fmt.Errorf("content encoding %q: %w", contentEncoding, ErrInput)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s body: %w", contentEncoding, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s body: %w", contentEncoding, err)
	}
	return out, nil
}

// Decode reverses Prepare for a delivered message. JSON bodies are
// unmarshalled into v; text bodies require v to be a *string or *[]byte.
func Decode(msg *amqp.Delivery, v any) error {
	body, err := DecodeBody(msg.ContentEncoding, msg.Body)
	if err != nil {
		return err
	}
	switch msg.ContentType {
	case ContentTypeJSON:
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("decoding json body: %w", err)
		}
		return nil
	case ContentTypeText:
		switch out := v.(type) {
		case *string:
			*out = string(body)
			return nil
		case *[]byte:
			*out = body
			return nil
		}
		return fmt.Errorf("text body into %T: %w", v, ErrInput)
	}
	return fmt.Errorf("content type %q: %w", msg.ContentType, ErrInput)
}
