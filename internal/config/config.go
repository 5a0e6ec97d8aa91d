// Package config загружает конфигурацию сервиса из TOML-файла.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Config полная конфигурация сервиса
type Config struct {
	Server         Server         `toml:"server"`
	Database       Database       `toml:"database"`
	Logs           Logs           `toml:"logs"`
	Metrics        Metrics        `toml:"metrics"`
	HolidayService HolidayService `toml:"holiday_service"`
	Booking        Booking        `toml:"booking"`
}

// Server настройки HTTP-сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к Postgres
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN собирает строку подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus-метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// HolidayService настройки клиента справочника публичных праздников
type HolidayService struct {
	URL         string   `toml:"url"`
	Timeout     int      `toml:"timeout"`
	CountryCode string   `toml:"country_code"`
	// ManualHolidays — вручную поддерживаемый список дат (YYYY-MM-DD),
	// используется как дополнение и как fallback при недоступности фида.
	ManualHolidays []string `toml:"manual_holidays"`
}

// RestrictedWindow закрытое для резидентов окно в выходные и праздники
type RestrictedWindow struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// Booking правила бронирования корта
type Booking struct {
	DayStart             string             `toml:"day_start"`
	DayEnd               string             `toml:"day_end"`
	GranularityMinutes   int                `toml:"granularity_minutes"`
	MaxDurationMinutes   int                `toml:"max_duration_minutes"`
	MaxAdvanceDays       int                `toml:"max_advance_days"`
	RestrictedWindows    []RestrictedWindow `toml:"restricted_windows"`
	AdminOverlapOverride bool               `toml:"admin_overlap_override"`
	Timezone             string             `toml:"timezone"`
}

// Load читает и валидирует конфигурацию.
// Некорректное операционное окно (day_start >= day_end) — ошибка конфигурации,
// сервис с ней не стартует.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	if cfg.Booking.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("config: granularity_minutes must be positive")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			Path:        "/metrics",
			ServiceName: "court-booking-service",
		},
		HolidayService: HolidayService{
			Timeout:     5,
			CountryCode: "AU",
		},
		Booking: Booking{
			DayStart:           domain.DefaultDayStart,
			DayEnd:             domain.DefaultDayEnd,
			GranularityMinutes: domain.DefaultGranularityMinutes,
			MaxDurationMinutes: domain.DefaultMaxDurationMinutes,
			MaxAdvanceDays:     domain.DefaultMaxAdvanceDays,
			RestrictedWindows: []RestrictedWindow{
				{Start: "07:00", End: "10:00"},
				{Start: "17:00", End: "20:00"},
			},
			Timezone: "Australia/Sydney",
		},
	}
}

// Policy конвертирует секцию booking в доменную политику
func (c *Config) Policy() (domain.Policy, error) {
	dayStart, err := timeofday.Parse(c.Booking.DayStart)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("config: booking.day_start: %w", err)
	}
	dayEnd, err := timeofday.Parse(c.Booking.DayEnd)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("config: booking.day_end: %w", err)
	}

	window := domain.OperatingWindow{DayStart: dayStart, DayEnd: dayEnd}
	if err := window.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("config: %w", err)
	}

	restricted := make([]domain.Interval, 0, len(c.Booking.RestrictedWindows))
	for _, rw := range c.Booking.RestrictedWindows {
		start, err := timeofday.Parse(rw.Start)
		if err != nil {
			return domain.Policy{}, fmt.Errorf("config: restricted window start: %w", err)
		}
		end, err := timeofday.Parse(rw.End)
		if err != nil {
			return domain.Policy{}, fmt.Errorf("config: restricted window end: %w", err)
		}
		if start >= end {
			return domain.Policy{}, fmt.Errorf("config: restricted window %s-%s is empty", rw.Start, rw.End)
		}
		restricted = append(restricted, domain.Interval{Start: start, End: end})
	}

	return domain.Policy{
		Window:               window,
		GranularityMinutes:   c.Booking.GranularityMinutes,
		MaxDurationMinutes:   c.Booking.MaxDurationMinutes,
		MaxAdvanceDays:       c.Booking.MaxAdvanceDays,
		RestrictedWindows:    restricted,
		AdminOverlapOverride: c.Booking.AdminOverlapOverride,
	}, nil
}

// Location возвращает локальную таймзону корта
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: booking.timezone %q: %w", c.Booking.Timezone, err)
	}
	return loc, nil
}
