package config

import (
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"timeclock/backend/internal/service/worktime"
)

const namespace = "TIMECLOCK"

// ErrHelpWanted is returned when --help was passed; usage has been printed.
var ErrHelpWanted = conf.ErrHelpWanted

type Config struct {
	ConfigFile string `conf:"default:config.yaml" yaml:"-"`

	Web struct {
		Port            string        `conf:"default::8080"  yaml:"port"`
		ReadTimeout     time.Duration `conf:"default:5s"     yaml:"read_timeout"`
		WriteTimeout    time.Duration `conf:"default:30s"    yaml:"write_timeout"`
		ShutdownTimeout time.Duration `conf:"default:10s"    yaml:"shutdown_timeout"`
		AllowedOrigins  []string      `conf:"default:http://localhost:3000" yaml:"allowed_origins"`
	} `yaml:"web"`

	DB struct {
		Username   string `conf:"default:postgres" yaml:"username"`
		Password   string `conf:"default:postgres,noprint" yaml:"password"`
		Host       string `conf:"default:localhost" yaml:"host"`
		Port       string `conf:"default:5432" yaml:"port"`
		Name       string `conf:"default:timeclock" yaml:"name"`
		DisableTLS bool   `conf:"default:true" yaml:"disable_tls"`
		Debug      bool   `conf:"default:false" yaml:"debug"`
	} `yaml:"db"`

	Redis struct {
		Addr     string        `conf:"default:localhost:6379" yaml:"addr"`
		Password string        `conf:"noprint" yaml:"password"`
		DB       int           `conf:"default:0" yaml:"db"`
		MarkTTL  time.Duration `conf:"default:3s" yaml:"mark_ttl"`
	} `yaml:"redis"`

	Auth struct {
		JWTKey   string        `conf:"noprint" yaml:"jwt_key"`
		TokenTTL time.Duration `conf:"default:24h" yaml:"token_ttl"`
	} `yaml:"auth"`

	Worktime struct {
		DuplicateClockIn string `conf:"default:implicit_close" yaml:"duplicate_clock_in"`
		CreditResidual   bool   `conf:"default:true" yaml:"credit_residual"`
	} `yaml:"worktime"`

	Seed struct {
		CompanyName   string `conf:"default:Default company" yaml:"company_name"`
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `conf:"noprint" yaml:"admin_password"`
	} `yaml:"seed"`
}

// NewConfig builds the configuration from defaults, TIMECLOCK_* environment
// variables and command line flags, then overlays the YAML file at
// ConfigFile when it exists.
func NewConfig(args []string) (*Config, error) {
	var c Config

	if err := conf.Parse(args, namespace, &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, uerr := conf.Usage(namespace, &c)
			if uerr != nil {
				return nil, errors.Wrap(uerr, "generating config usage")
			}
			os.Stdout.WriteString(usage + "\n")
		}
		return nil, err
	}

	if err := c.overlay(c.ConfigFile); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) overlay(path string) error {
	if path == "" {
		return nil
	}

	yamlFile, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading config file")
	}

	if err = yaml.Unmarshal(yamlFile, c); err != nil {
		return errors.Wrap(err, "parsing config file")
	}

	return nil
}

func (c *Config) validate() error {
	if c.DB.Username == "" || c.DB.Host == "" || c.DB.Name == "" {
		return errors.New("missing required database configuration")
	}
	if c.Auth.JWTKey == "" {
		return errors.New("missing auth.jwt_key")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}

	return nil
}

// Policy returns the reconciliation policy hours are computed with.
func (c *Config) Policy() (worktime.Policy, error) {
	p := worktime.Policy{CreditResidual: c.Worktime.CreditResidual}

	switch c.Worktime.DuplicateClockIn {
	case "", "implicit_close":
		p.DuplicateClockIn = worktime.ImplicitClose
	case "keep_open_session":
		p.DuplicateClockIn = worktime.KeepOpenSession
	default:
		return worktime.Policy{}, errors.Errorf("unknown worktime.duplicate_clock_in %q", c.Worktime.DuplicateClockIn)
	}

	return p, nil
}

// String prints the effective configuration with secrets masked.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}

	return out
}
