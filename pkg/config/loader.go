package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	files    []string
	optional bool
	prefix   string
	environ  map[string]string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles reads the given dotenv files instead of ".env". Missing
// files are an error.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = paths
		o.optional = false
	}
}

// WithPrefix requires every variable to carry prefix, e.g. "DEVICEKIT_".
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnviron parses vars instead of the process environment.
func WithEnviron(vars map[string]string) Option {
	return func(o *options) { o.environ = vars }
}

// Load parses the environment into a new T using env struct tags.
// Values from dotenv files fill in variables the environment lacks; the
// environment always wins. By default ".env" is read if it exists.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
func Load[T any](opts ...Option) (T, error) {
	o := options{files: []string{".env"}, optional: true}
	for _, opt := range opts {
		opt(&o)
	}

	environ := o.environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	vars, err := readEnvFiles(o.files, o.optional)
	if err != nil {
		var zero T
		return zero, err
	}
	for k, v := range environ {
		vars[k] = v
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	})
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad is Load for configuration the binary cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func readEnvFiles(paths []string, optional bool) (map[string]string, error) {
	vars := make(map[string]string)
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
		// earlier files take precedence, matching godotenv.Load
		for k, v := range values {
			if _, ok := vars[k]; !ok {
				vars[k] = v
			}
		}
	}
	return vars, nil
}
