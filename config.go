package seriesmanager

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cj123/sessions"
	"github.com/etcd-io/bbolt"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var config *Configuration

type Configuration struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Store      StoreConfig      `yaml:"store"`
	Accounts   AccountsConfig   `yaml:"accounts"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Series     SeriesConfig     `yaml:"series"`
}

type SeriesConfig struct {
	// Timezone round dates are compared in when deriving round status.
	// Defaults to the server's local time.
	Timezone string `yaml:"timezone"`
}

// SeriesLocation resolves the configured timezone, falling back to
// server local time if it is unset or unknown.
func SeriesLocation() *time.Location {
	if config == nil || config.Series.Timezone == "" {
		return time.Local
	}

	location, err := time.LoadLocation(config.Series.Timezone)

	if err != nil {
		logrus.WithError(err).Errorf("Unknown timezone %q, using server local time", config.Series.Timezone)
		return time.Local
	}

	return location
}

type MonitoringConfig struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"raven_dsn"`
}

type AccountsConfig struct {
	AdminPasswordOverride string `yaml:"admin_password_override"`
}

type HTTPConfig struct {
	Hostname         string `yaml:"hostname"`
	SessionKey       string `yaml:"session_key"`
	SessionStoreType string `yaml:"session_store_type"`
	SessionStorePath string `yaml:"session_store_path"`
	BaseURL          string `yaml:"base_url"`
}

const (
	sessionStoreCookie     = "cookie"
	sessionStoreFilesystem = "filesystem"
)

func (h *HTTPConfig) createSessionStore() (sessions.Store, error) {
	switch h.SessionStoreType {
	case sessionStoreFilesystem:
		if info, err := os.Stat(h.SessionStorePath); os.IsNotExist(err) {
			err := os.MkdirAll(h.SessionStorePath, 0755)

			if err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else if !info.IsDir() {
			return nil, errors.New("seriesmanager: session store location must be a directory")
		}

		return sessions.NewFilesystemStore(h.SessionStorePath, []byte(h.SessionKey)), nil

	case sessionStoreCookie:
		fallthrough
	default:
		return sessions.NewCookieStore([]byte(h.SessionKey)), nil
	}
}

type StoreConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

func (s *StoreConfig) BuildStore() (Store, error) {
	var store Store

	switch s.Type {
	case "boltdb":
		bbdb, err := bbolt.Open(s.Path, 0644, nil)

		if err != nil {
			return nil, err
		}

		store = NewBoltStore(bbdb)
	default:
		return nil, fmt.Errorf("invalid store type (%s), must be boltdb", s.Type)
	}

	if err := Migrate(store); err != nil {
		return nil, err
	}

	return store, nil
}

func ReadConfig(location string) (conf *Configuration, err error) {
	f, err := os.Open(location)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
		return nil, err
	}

	config = conf
	sessionsStore, err = conf.HTTP.createSessionStore()

	if err != nil {
		return nil, err
	}

	if config.Accounts.AdminPasswordOverride != "" {
		logrus.Infof("WARNING! Admin Password Override is set. Please only have this set if you are resetting your admin account password!")
	}

	return conf, err
}
