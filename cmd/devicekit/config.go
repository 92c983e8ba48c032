package main

import (
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/redis"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"devicekit"`

	SessionCapacity     int `env:"SESSION_CAPACITY" envDefault:"1024"`
	ClassifierCacheSize int `env:"CLASSIFIER_CACHE_SIZE" envDefault:"4096"`
	EventBufferSize     int `env:"EVENT_BUFFER_SIZE" envDefault:"32"`

	Log   logger.Config
	HTTP  httpserver.Config
	Redis redis.Config
}
