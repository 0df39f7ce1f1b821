package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Database struct {
	URL          string `env:"DATABASE_URL"`
	Username     string `env:"POSTGRES_USER"`
	Password     string `env:"POSTGRES_PASSWORD"`
	PasswordFile string `env:"POSTGRES_PASSWORD_FILE,file"`
	Host         string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	DBName       string `env:"POSTGRES_DB"`
	SSLMode      string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func (c Database) password() string {
	if c.Password != "" {
		return c.Password
	}
	return strings.TrimSpace(c.PasswordFile)
}

func (c Database) Validate() error {
	if c.URL != "" {
		return nil
	}
	var missing []string
	if c.Username == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.password() == "" {
		missing = append(missing, "POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE")
	}
	if c.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if len(missing) > 0 {
		return fmt.Errorf("no DATABASE_URL set and missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// ConnURL returns DATABASE_URL when set, otherwise a URL assembled from the
// POSTGRES_* variables.
func (c Database) ConnURL() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.password()),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	), nil
}

func (c Database) PgxpoolConfig() (*pgxpool.Config, error) {
	connURL, err := c.ConnURL()
	if err != nil {
		return nil, err
	}
	cfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		return nil, errors.New("unable to parse database url")
	}
	return cfg, nil
}
