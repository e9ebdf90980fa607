package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"FILMORATE_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"FILMORATE_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"FILMORATE_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"FILMORATE_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"FILMORATE_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// Тела запросов фильмотеки - небольшие JSON-документы.
	BodyLimit    int           `yaml:"body_limit" env:"FILMORATE_HTTP_BODY_LIMIT" env-default:"65536"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ServerConfig собирает настройки fiber для сервера фильмотеки.
func (c *HTTPConfig) ServerConfig() fiber.Config {
	return fiber.Config{
		AppName:      ServiceName,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		IdleTimeout:  c.IdleTimeout,
		BodyLimit:    c.BodyLimit,
	}
}

func (c *HTTPConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("http port %d out of range", c.Port)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("http body limit must be positive, got %d", c.BodyLimit)
	}
	return nil
}
