package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFile se lee si existe; las variables de entorno siempre pisan al YAML.
const DefaultFile = "config.yaml"

type Config struct {
	Server ServerConfig `yaml:"server"`
	API    APIConfig    `yaml:"api"`
	Log    LogConfig    `yaml:"log"`

	// Destino único de las redirecciones por entidad inexistente.
	NotFoundPath string `yaml:"not_found_path" env:"NOT_FOUND_PATH" env-default:"/404"`
	PageSize     int    `yaml:"page_size" env:"PAGE_SIZE" env-default:"20"`
}

type ServerConfig struct {
	BindAddr     string        `yaml:"bind_addr" env:"BIND_ADDR" env-default:""`
	Port         string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
}

// Addr es host:port para http.Server.
func (s ServerConfig) Addr() string {
	return s.BindAddr + ":" + s.Port
}

// APIConfig apunta al API REST de la clínica.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://localhost:8081"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
	App    string `yaml:"app" env:"APP_NAME" env-default:"petclinic-web"`
}

// Load lee path (si existe) con overrides de entorno; sin archivo, solo entorno.
// path vacío usa DefaultFile.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api base_url must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api timeout must be positive"))
	}
	if !validNotFoundPath(c.NotFoundPath) {
		errs = append(errs, fmt.Errorf("not_found_path must be a single segment like /404, got %q", c.NotFoundPath))
	}
	if c.PageSize <= 0 {
		errs = append(errs, errors.New("page_size must be positive"))
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}

	return errors.Join(errs...)
}

// validNotFoundPath acepta "/<segmento>"; "/" choca con el índice.
func validNotFoundPath(p string) bool {
	seg, ok := strings.CutPrefix(p, "/")
	if !ok || seg == "" {
		return false
	}
	return !strings.ContainsAny(seg, "/?# ")
}
