// Package internal provides some internal functionalities for the library.
package internal

// this file contains the environment variables for the connection settings.

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Env contains the environment variables of a broker connection. Zero values
// are replaced with the connection defaults by the caller. The fields have no
// envconfig tags, so unprefixed variables such as USER are never read.
// nolint:govet // unlikely to have a lot of these objects.
type Env struct {
	User        string
	Password    string
	Host        string
	Port        int
	Vhost       string
	Timeout     time.Duration
	ReadTimeout time.Duration `split_words:"true"`
}

// LoadEnv returns the variables prefixed with prefix, e.g. RABBITMQ_HOST for
// the "RABBITMQ" prefix.
func LoadEnv(prefix string) (Env, error) {
	var env Env
	err := envconfig.Process(prefix, &env)
	return env, err
}
