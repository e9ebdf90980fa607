package config

import (
	"time"

	"filmorate/pkg/db/redis"
)

// RedisConfig представляет конфигурацию Redis для хранилища отметок.
type RedisConfig struct {
	Host     string        `yaml:"host" env:"FILMORATE_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"FILMORATE_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"FILMORATE_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"FILMORATE_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"FILMORATE_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"FILMORATE_REDIS_TIMEOUT" env-default:"5s"`
}

// ClientConfig преобразует настройки в конфигурацию клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}
