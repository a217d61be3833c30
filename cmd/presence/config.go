package main

import (
	"github.com/dmitrymomot/presence/internal/notify"
	"github.com/dmitrymomot/presence/internal/store"
	"github.com/dmitrymomot/presence/pkg/cookie"
	"github.com/dmitrymomot/presence/pkg/httpserver"
	"github.com/dmitrymomot/presence/pkg/redis"
	"github.com/dmitrymomot/presence/pkg/session"
)

// Config is the whole process configuration, read from the environment and
// an optional .env file.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"production"`
	LogLevel string `env:"LOG_LEVEL"`
	Port     int    `env:"PORT" envDefault:"5000"`
	// SecretKey keys session cookies. Empty means a random key per process.
	SecretKey string `env:"SECRET_KEY"`

	Store   store.Config
	Redis   redis.Config
	Session session.Config
	Cookie  cookie.Config
	HTTP    httpserver.Config
	Push    notify.Config
}
