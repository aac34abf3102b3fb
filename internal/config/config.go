// Package config загружает и валидирует конфигурацию сервиса из TOML файла.
// Ошибки конфигурации фатальны: сервис не должен стартовать с некорректным
// расписанием, чтобы они не всплывали во время обработки запросов.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/avtoblesk/booking-service/internal/domain"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Catalog       CatalogConfig       `toml:"catalog"`
	Notifications NotificationsConfig `toml:"notifications"`
	Admin         AdminConfig         `toml:"admin"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Logs          LogsConfig          `toml:"logs"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int      `toml:"http_port"`
	ReadTimeout     int      `toml:"read_timeout"`     // секунды
	WriteTimeout    int      `toml:"write_timeout"`    // секунды
	IdleTimeout     int      `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int      `toml:"shutdown_timeout"` // секунды
	AllowedOrigins  []string `toml:"allowed_origins"`  // CORS для сайта
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

// DSN собирает строку подключения
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ScheduleConfig статическое расписание студии. Окна по дням недели,
// шаг сетки слотов и буфер для записи день в день.
type ScheduleConfig struct {
	Timezone             string          `toml:"timezone"`
	SlotStepMinutes      int             `toml:"slot_step_minutes"`
	SameDayBufferMinutes int             `toml:"same_day_buffer_minutes"`
	AdvanceBookingDays   int             `toml:"advance_booking_days"` // 0 = без ограничения
	Monday               DayWindowConfig `toml:"monday"`
	Tuesday              DayWindowConfig `toml:"tuesday"`
	Wednesday            DayWindowConfig `toml:"wednesday"`
	Thursday             DayWindowConfig `toml:"thursday"`
	Friday               DayWindowConfig `toml:"friday"`
	Saturday             DayWindowConfig `toml:"saturday"`
	Sunday               DayWindowConfig `toml:"sunday"`
}

// DayWindowConfig окно работы одного дня недели
type DayWindowConfig struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open"`  // "08:00"
	Close  string `toml:"close"` // "20:00"
}

// CatalogConfig настройки клиента каталога услуг (CMS сайта)
type CatalogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// NotificationsConfig настройки отправки писем через Brevo
type NotificationsConfig struct {
	Enabled     bool   `toml:"enabled"`
	APIKey      string `toml:"api_key"`
	SenderEmail string `toml:"sender_email"`
	SenderName  string `toml:"sender_name"`
	Sandbox     bool   `toml:"sandbox"`
}

// AdminConfig доступ к админским ручкам
type AdminConfig struct {
	Token string `toml:"token"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Load читает конфигурацию из файла и валидирует её
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Schedule.SlotStepMinutes == 0 {
		cfg.Schedule.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if cfg.Schedule.SameDayBufferMinutes == 0 {
		cfg.Schedule.SameDayBufferMinutes = domain.DefaultSameDayBufferMinutes
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Europe/Moscow"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "avtoblesk-booking"
	}
}

// Validate проверяет конфигурацию. Любая ошибка здесь означает, что сервис
// не стартует.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("config: invalid server.http_port %d", c.Server.HTTPPort)
	}
	if c.Schedule.SlotStepMinutes <= 0 {
		return fmt.Errorf("config: schedule.slot_step_minutes must be positive, got %d", c.Schedule.SlotStepMinutes)
	}
	if c.Schedule.SameDayBufferMinutes < 0 {
		return fmt.Errorf("config: schedule.same_day_buffer_minutes must not be negative, got %d", c.Schedule.SameDayBufferMinutes)
	}
	if c.Schedule.AdvanceBookingDays < 0 {
		return fmt.Errorf("config: schedule.advance_booking_days must not be negative, got %d", c.Schedule.AdvanceBookingDays)
	}

	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if _, err := c.Schedule.WeekSchedule(); err != nil {
		return err
	}
	return nil
}

// Location загружает таймзону студии
func (s ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid schedule.timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// WeekSchedule конвертирует конфигурацию в доменное недельное расписание
func (s ScheduleConfig) WeekSchedule() (domain.WeekSchedule, error) {
	var week domain.WeekSchedule

	days := []struct {
		name string
		cfg  DayWindowConfig
		dst  *domain.DayWindow
	}{
		{"monday", s.Monday, &week.Monday},
		{"tuesday", s.Tuesday, &week.Tuesday},
		{"wednesday", s.Wednesday, &week.Wednesday},
		{"thursday", s.Thursday, &week.Thursday},
		{"friday", s.Friday, &week.Friday},
		{"saturday", s.Saturday, &week.Saturday},
		{"sunday", s.Sunday, &week.Sunday},
	}

	for _, day := range days {
		window, err := day.cfg.window(day.name)
		if err != nil {
			return domain.WeekSchedule{}, err
		}
		*day.dst = window
	}
	return week, nil
}

func (d DayWindowConfig) window(name string) (domain.DayWindow, error) {
	if d.Closed {
		return domain.DayWindow{Closed: true}, nil
	}

	open, err := types.NewTimeStringFromString(d.Open)
	if err != nil {
		return domain.DayWindow{}, fmt.Errorf("config: schedule.%s.open %q: %w", name, d.Open, err)
	}
	closeAt, err := types.NewTimeStringFromString(d.Close)
	if err != nil {
		return domain.DayWindow{}, fmt.Errorf("config: schedule.%s.close %q: %w", name, d.Close, err)
	}
	if !open.IsBefore(closeAt) {
		return domain.DayWindow{}, fmt.Errorf("config: schedule.%s: open %s must be before close %s", name, open, closeAt)
	}
	return domain.DayWindow{Open: open, Close: closeAt}, nil
}
