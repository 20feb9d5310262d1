package processmq

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of a YAML configuration file:
//
//	connections:
//	  rabbit:
//	    host: localhost
//	    readTimeout: 48h
//	queues:
//	  orders:
//	    publish:
//	      exchange: orders
//	      routing: create
//	    consume:
//	      queue: orders
//	      prefetchCount: 10
//	      flags: [durable]
type File struct {
	Connections map[string]Config          `yaml:"connections"`
	Queues      map[string]QueueDefinition `yaml:"queues"`
}

// ParseFile decodes a configuration file from r. Unknown keys are rejected.
func ParseFile(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return &f, nil
}

// ReadFile reads and decodes the configuration file at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening configuration: %w", err)
	}
	defer fh.Close()
	return ParseFile(fh)
}

// Load returns the queue definitions of the file. It makes *File a Loader.
func (f *File) Load() (map[string]QueueDefinition, error) {
	return f.Queues, nil
}

// FileLoader returns a Loader that reads the queue definitions from the file
// at path each time it is called.
func FileLoader(path string) LoaderFunc {
	return func() (map[string]QueueDefinition, error) {
		f, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		return f.Queues, nil
	}
}
