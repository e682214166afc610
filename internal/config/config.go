// Package config загрузка конфигурации сервиса из TOML-файла.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/glowbook/scheduling-service/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
	Notifications  NotificationsConfig  `toml:"notifications"`
	Jobs           JobsConfig           `toml:"jobs"`
	ProfileService ProfileServiceConfig `toml:"profileservice"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig параметры генерации и проверки слотов
type SchedulingConfig struct {
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
	MinLeadTimeHours       int `toml:"min_lead_time_hours"`
	MaxHorizonDays         int `toml:"max_horizon_days"`
}

// NotificationsConfig настройки email-уведомлений
type NotificationsConfig struct {
	Enabled        bool   `toml:"enabled"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	FromEmail      string `toml:"from_email"`
	FromName       string `toml:"from_name"`
}

// JobsConfig настройки фоновых задач
type JobsConfig struct {
	Enabled       bool   `toml:"enabled"`
	SweepSchedule string `toml:"sweep_schedule"` // cron-выражение
}

// ProfileServiceConfig настройки клиента ProfileService
type ProfileServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load загружает конфигурацию из TOML-файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.File == "" {
		c.Logs.File = "logs/app.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "scheduling-service"
	}

	if c.Scheduling.SlotGranularityMinutes == 0 {
		c.Scheduling.SlotGranularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	if c.Scheduling.MinLeadTimeHours == 0 {
		c.Scheduling.MinLeadTimeHours = domain.DefaultMinLeadTimeHours
	}
	if c.Scheduling.MaxHorizonDays == 0 {
		c.Scheduling.MaxHorizonDays = domain.DefaultMaxHorizonDays
	}

	if c.Jobs.SweepSchedule == "" {
		c.Jobs.SweepSchedule = "*/5 * * * *"
	}

	if c.ProfileService.Timeout == 0 {
		c.ProfileService.Timeout = 5
	}
}
