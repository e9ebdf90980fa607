package config

import (
	"errors"
	"time"
)

var errShutdownTimeout = errors.New("shutdown timeout must be positive")

// ShutdownConfig задает бюджет остановки сервиса. Сначала сервер дожидается
// активных запросов не дольше HTTPDrain, остаток уходит на закрытие хранилищ.
type ShutdownConfig struct {
	Timeout   time.Duration `yaml:"timeout" env:"FILMORATE_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
	HTTPDrain time.Duration `yaml:"http_drain" env:"FILMORATE_SHUTDOWN_HTTP_DRAIN" env-default:"3s"`
}

// GetTimeout возвращает общий бюджет остановки.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return c.Timeout
}

// GetHTTPDrain возвращает время на завершение активных запросов, не больше общего бюджета.
func (c *ShutdownConfig) GetHTTPDrain() time.Duration {
	return min(max(c.HTTPDrain, 0), c.Timeout)
}

func (c *ShutdownConfig) validate() error {
	if c.Timeout <= 0 {
		return errShutdownTimeout
	}
	return nil
}
