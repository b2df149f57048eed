package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config корневая структура конфигурации движка.
type Config struct {
	Generator GeneratorConfig `yaml:"generator" toml:"generator"`
	World     WorldConfig     `yaml:"world" toml:"world"`
	Engine    EngineConfig    `yaml:"engine" toml:"engine"`
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
}

// GeneratorConfig параметры генератора ландшафта
type GeneratorConfig struct {
	Seed     uint32  `yaml:"seed" toml:"seed"`
	SeaLevel int     `yaml:"sea_level" toml:"sea_level"`
	Delta    int     `yaml:"delta" toml:"delta"`
	Scale    float64 `yaml:"scale" toml:"scale"`     // делитель координат шума
	Workers  int     `yaml:"workers" toml:"workers"` // >1: параллельное заполнение колонок
}

// WorldConfig параметры загрузки чанков
type WorldConfig struct {
	LoadRadius     int    `yaml:"load_radius" toml:"load_radius"`         // в чанках по X/Z
	VerticalRadius int    `yaml:"vertical_radius" toml:"vertical_radius"` // в чанках по Y
	PalettePath    string `yaml:"palette_path" toml:"palette_path"`       // пусто: встроенная палитра
}

// EngineConfig параметры кадрового цикла
type EngineConfig struct {
	TickRate  time.Duration `yaml:"tick_rate" toml:"tick_rate"`
	MaxFrames int           `yaml:"max_frames" toml:"max_frames"` // 0: без ограничения
}

type ServerConfig struct {
	APIPort     int `yaml:"api_port" toml:"api_port"`
	MetricsPort int `yaml:"metrics_port" toml:"metrics_port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"` // "json" или "console"
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled"`
	ServiceName string `yaml:"service_name" toml:"service_name"`
	Endpoint    string `yaml:"endpoint" toml:"endpoint"` // host:port OTLP/HTTP, пусто: localhost:4318
	Insecure    bool   `yaml:"insecure" toml:"insecure"`
}

// GetAPIPort возвращает порт отладочного REST API с поддержкой fallback значений
func (s *ServerConfig) GetAPIPort() int {
	return getPortWithEnvFallback(s.APIPort, "VOXEL_API_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "VOXEL_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Seed:     0,
			SeaLevel: 10,
			Delta:    5,
			Scale:    15,
			Workers:  1,
		},
		World: WorldConfig{
			LoadRadius:     2,
			VerticalRadius: 0,
		},
		Engine: EngineConfig{
			TickRate: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "voxelcore",
		},
	}
}

// Load читает файл конфигурации (YAML или TOML по расширению).
// Если path == "", пытается прочитать из ENV VOXEL_CONFIG, иначе
// возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, которые движок не умеет исправить сам
func (c *Config) Validate() error {
	if c.Generator.Scale <= 0 {
		return fmt.Errorf("generator.scale must be positive, got %v", c.Generator.Scale)
	}
	if c.Generator.Workers < 1 {
		c.Generator.Workers = 1
	}
	if c.World.LoadRadius < 0 || c.World.VerticalRadius < 0 {
		return fmt.Errorf("world radii must be non-negative")
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %v", c.Engine.TickRate)
	}
	return nil
}
