package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all application parameters.
type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Server   ServerConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type ServerConfig struct {
	Port int
}

type AppConfig struct {
	TaxRate decimal.Decimal
}

// Load reads a two-level YAML config file (sections with key: value pairs).
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	cfg.Database.Port = 5432
	cfg.RabbitMQ.Port = 5672
	cfg.RabbitMQ.VHost = "/"
	cfg.Server.Port = 3000

	scanner := bufio.NewScanner(file)
	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if err := cfg.set(section, key, value); err != nil {
			return nil, fmt.Errorf("config %s.%s: %w", section, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("invalid config: missing database host")
	}
	return cfg, nil
}

func (c *Config) set(section, key, value string) error {
	switch section {
	case "database":
		switch key {
		case "host":
			c.Database.Host = value
		case "port":
			return atoiInto(&c.Database.Port, value)
		case "user":
			c.Database.User = value
		case "password":
			c.Database.Password = value
		case "database":
			c.Database.Database = value
		}
	case "rabbitmq":
		switch key {
		case "host":
			c.RabbitMQ.Host = value
		case "port":
			return atoiInto(&c.RabbitMQ.Port, value)
		case "user":
			c.RabbitMQ.User = value
		case "password":
			c.RabbitMQ.Password = value
		case "vhost":
			c.RabbitMQ.VHost = value
		}
	case "server":
		switch key {
		case "port":
			return atoiInto(&c.Server.Port, value)
		}
	case "app":
		switch key {
		case "tax_rate":
			rate, err := decimal.NewFromString(value)
			if err != nil {
				return fmt.Errorf("invalid tax_rate: %w", err)
			}
			if rate.IsNegative() {
				return fmt.Errorf("tax_rate must not be negative")
			}
			c.App.TaxRate = rate
		}
	}
	return nil
}

func atoiInto(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", value, err)
	}
	*dst = n
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL. The default vhost "/" is
// expressed by omitting the path entirely, which is how the amqp client
// expects it.
func (c *Config) RabbitMQURL() string {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
	if vhost := strings.TrimPrefix(c.RabbitMQ.VHost, "/"); vhost != "" {
		url += "/" + vhost
	}
	return url
}
