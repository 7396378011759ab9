package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage"
	"github.com/all-dot-files/tictoc/internal/storage/sqlite"
	yamlStore "github.com/all-dot-files/tictoc/internal/storage/yaml"
	"github.com/all-dot-files/tictoc/pkg/errors"
	"github.com/all-dot-files/tictoc/pkg/fileio"
	"github.com/all-dot-files/tictoc/pkg/tictoc"
)

const (
	DefaultConfigDir  = ".config/tictoc"
	DefaultConfigFile = "config.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "TICTOC"
)

// Manager handles configuration persistence
type Manager struct {
	configPath string
	// file is what the config file holds; config adds env overrides on top.
	file      *models.Config
	config    *models.Config
	fileCache *fileio.FileCache
	env       *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) (*Manager, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range Keys() {
		env.BindEnv(key)
	}

	m := &Manager{
		configPath: configPath,
		fileCache:  fileio.NewFileCache(30 * time.Second),
		env:        env,
	}

	return m, nil
}

// GetConfigPath returns the path to the configuration file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// GetConfigDir returns the directory containing the configuration
func (m *Manager) GetConfigDir() string {
	return filepath.Dir(m.configPath)
}

func (m *Manager) isTOML() bool {
	return strings.EqualFold(filepath.Ext(m.configPath), ".toml")
}

// Load reads the configuration file, falling back to defaults when it does
// not exist, then applies TICTOC_* environment overrides.
func (m *Manager) Load() error {
	cfg := models.DefaultConfig()

	data, err := m.fileCache.Read(m.configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return errors.Wrap(err, errors.ErrInternal, "config.Load", "failed to read config file")
	default:
		if err := m.decode(data, cfg); err != nil {
			return errors.WrapWithSuggestion(err, errors.ErrInvalidInput, "config.Load",
				"failed to parse config file "+m.configPath,
				"fix the file or recreate it with 'tictoc config init'")
		}
	}

	return m.setFile(cfg)
}

// setFile installs cfg as the file-level configuration and derives the
// effective one from it.
func (m *Manager) setFile(cfg *models.Config) error {
	effective := *cfg
	if err := m.applyEnv(&effective); err != nil {
		return err
	}
	m.file = cfg
	m.config = &effective
	return nil
}

func (m *Manager) decode(data []byte, cfg *models.Config) error {
	if m.isTOML() {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func (m *Manager) encode(cfg *models.Config) ([]byte, error) {
	if m.isTOML() {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(cfg)
}

func (m *Manager) applyEnv(cfg *models.Config) error {
	for _, key := range Keys() {
		value := m.env.GetString(key)
		if value == "" {
			continue
		}
		if err := setField(cfg, key, value); err != nil {
			return errors.WrapWithSuggestion(err, errors.ErrInvalidInput, "config.Load",
				"invalid environment override for "+key,
				fmt.Sprintf("check %s_%s", EnvPrefix, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))))
		}
	}
	return nil
}

// Save writes the file-level configuration to disk atomically. Environment
// overrides are never written.
func (m *Manager) Save() error {
	if m.file == nil {
		return fmt.Errorf("no configuration to save")
	}

	m.file.UpdatedAt = time.Now()
	m.config.UpdatedAt = m.file.UpdatedAt

	data, err := m.encode(m.file)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fileio.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.fileCache.Invalidate(m.configPath)

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *models.Config {
	if m.config == nil {
		m.file = models.DefaultConfig()
		effective := *m.file
		m.config = &effective
	}
	return m.config
}

// Initialize writes a default configuration file. It fails if one exists.
func (m *Manager) Initialize() error {
	if _, err := os.Stat(m.configPath); err == nil {
		return errors.Newf(errors.ErrConflict, "config.Initialize", "configuration already exists at %s", m.configPath).
			WithSuggestion("edit it with 'tictoc config set' or remove it first")
	}

	if err := m.setFile(models.DefaultConfig()); err != nil {
		return err
	}

	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save initial configuration: %w", err)
	}

	return nil
}

// Set assigns value to the dotted key and saves the file.
func (m *Manager) Set(key, value string) error {
	m.Get()
	cfg := *m.file
	if err := setField(&cfg, key, value); err != nil {
		return err
	}
	if err := m.setFile(&cfg); err != nil {
		return err
	}
	return m.Save()
}

// DataDir returns where run history is kept: data_dir if set, otherwise the
// configuration directory.
func (m *Manager) DataDir() string {
	dir := m.Get().DataDir
	if dir == "" {
		return m.GetConfigDir()
	}
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return dir
}

// OpenStore opens the run-history store selected by storage_driver.
func (m *Manager) OpenStore() (storage.RunStore, error) {
	return m.OpenStoreDriver(m.Get().StorageDriver)
}

// OpenStoreDriver opens the run-history store of the named driver in the
// data directory.
func (m *Manager) OpenStoreDriver(driver string) (storage.RunStore, error) {
	dir := m.DataDir()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch driver {
	case models.StorageSQLite:
		store, err := sqlite.NewStore(filepath.Join(dir, sqlite.FileName))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite store: %w", err)
		}
		return store, nil
	case models.StorageYAML, "":
		store, err := yamlStore.NewStore(filepath.Join(dir, yamlStore.FileName))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize yaml store: %w", err)
		}
		return store, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "config.OpenStore", "unknown storage driver %q", driver).
			WithSuggestion(fmt.Sprintf("use %q or %q", models.StorageYAML, models.StorageSQLite))
	}
}

type field struct {
	get func(*models.Config) string
	set func(*models.Config, string) error
}

var fields = map[string]field{
	"default_unit": {
		get: func(c *models.Config) string { return c.DefaultUnit },
		set: func(c *models.Config, v string) error {
			u, err := tictoc.ParseUnit(v)
			if err != nil {
				return err
			}
			c.DefaultUnit = u.String()
			return nil
		},
	},
	"storage_driver": {
		get: func(c *models.Config) string { return c.StorageDriver },
		set: func(c *models.Config, v string) error {
			if v != models.StorageYAML && v != models.StorageSQLite {
				return fmt.Errorf("storage driver must be %q or %q", models.StorageYAML, models.StorageSQLite)
			}
			c.StorageDriver = v
			return nil
		},
	},
	"data_dir": {
		get: func(c *models.Config) string { return c.DataDir },
		set: func(c *models.Config, v string) error { c.DataDir = v; return nil },
	},
	"history_limit": {
		get: func(c *models.Config) string { return strconv.Itoa(c.HistoryLimit) },
		set: func(c *models.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("history limit must be a non-negative integer")
			}
			c.HistoryLimit = n
			return nil
		},
	},
	"log.format": {
		get: func(c *models.Config) string { return c.Log.Format },
		set: func(c *models.Config, v string) error {
			if v != "text" && v != "json" {
				return fmt.Errorf("log format must be text or json")
			}
			c.Log.Format = v
			return nil
		},
	},
	"log.level": {
		get: func(c *models.Config) string { return c.Log.Level },
		set: func(c *models.Config, v string) error {
			switch v = strings.ToLower(v); v {
			case "debug", "info", "warn", "warning", "error":
				c.Log.Level = v
				return nil
			}
			return fmt.Errorf("log level must be debug, info, warn or error")
		},
	},
	"server.addr": {
		get: func(c *models.Config) string { return c.Server.Addr },
		set: func(c *models.Config, v string) error { c.Server.Addr = v; return nil },
	},
	"server.jwt_secret": {
		get: func(c *models.Config) string { return c.Server.JWTSecret },
		set: func(c *models.Config, v string) error { c.Server.JWTSecret = v; return nil },
	},
	"debug": {
		get: func(c *models.Config) string { return strconv.FormatBool(c.Debug) },
		set: func(c *models.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("debug must be true or false")
			}
			c.Debug = b
			return nil
		},
	},
}

// Keys returns the settable configuration keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the current value of a dotted key.
func (m *Manager) Value(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey("config.Value", key)
	}
	return f.get(m.Get()), nil
}

func setField(cfg *models.Config, key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey("config.Set", key)
	}
	if err := f.set(cfg, strings.TrimSpace(value)); err != nil {
		if errors.CodeOf(err) != "" {
			return err
		}
		return errors.Wrap(err, errors.ErrInvalidInput, "config.Set", "invalid value for "+key)
	}
	return nil
}

func unknownKey(op, key string) error {
	return errors.Newf(errors.ErrInvalidInput, op, "unknown configuration key %q", key).
		WithSuggestion("valid keys: " + strings.Join(Keys(), ", "))
}
