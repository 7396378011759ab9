package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/all-dot-files/tictoc/internal/models"
	"github.com/all-dot-files/tictoc/internal/storage/sqlite"
	yamlStore "github.com/all-dot-files/tictoc/internal/storage/yaml"
	"github.com/all-dot-files/tictoc/pkg/errors"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	manager, err := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := manager.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := manager.Get()
	def := models.DefaultConfig()
	if cfg.DefaultUnit != def.DefaultUnit || cfg.StorageDriver != def.StorageDriver {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestInitialize(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tictoc", "config.yaml")
	manager, _ := NewManager(configPath)

	if err := manager.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file not created")
	}

	err := manager.Initialize()
	if !errors.IsCode(err, errors.ErrConflict) {
		t.Errorf("second Initialize error = %v, want CONFLICT", err)
	}
}

func TestSetAndReload(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), name)
			manager, _ := NewManager(configPath)
			manager.Initialize()

			settings := map[string]string{
				"default_unit":   "Seconds",
				"storage_driver": "sqlite",
				"history_limit":  "25",
				"log.level":      "DEBUG",
				"server.addr":    ":9999",
				"debug":          "true",
			}
			for k, v := range settings {
				if err := manager.Set(k, v); err != nil {
					t.Fatalf("Set(%s) failed: %v", k, err)
				}
			}

			reloaded, _ := NewManager(configPath)
			if err := reloaded.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			cfg := reloaded.Get()
			if cfg.DefaultUnit != "s" {
				t.Errorf("default_unit = %q, want s", cfg.DefaultUnit)
			}
			if cfg.StorageDriver != "sqlite" || cfg.HistoryLimit != 25 {
				t.Errorf("storage = %q/%d", cfg.StorageDriver, cfg.HistoryLimit)
			}
			if cfg.Log.Level != "debug" || cfg.Server.Addr != ":9999" || !cfg.Debug {
				t.Errorf("got %+v", cfg)
			}

			if name == "config.toml" {
				data, _ := os.ReadFile(configPath)
				if !strings.Contains(string(data), "storage_driver = \"sqlite\"") {
					t.Errorf("file is not TOML:\n%s", data)
				}
			}
		})
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	manager, _ := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	manager.Load()

	tests := []struct{ key, value string }{
		{"default_unit", "fortnights"},
		{"storage_driver", "postgres"},
		{"history_limit", "-1"},
		{"log.format", "xml"},
		{"log.level", "loud"},
		{"debug", "maybe"},
		{"no.such.key", "x"},
	}
	for _, tt := range tests {
		if err := manager.Set(tt.key, tt.value); !errors.IsCode(err, errors.ErrInvalidInput) {
			t.Errorf("Set(%s, %s) error = %v, want INVALID_INPUT", tt.key, tt.value, err)
		}
	}
	if manager.Get().StorageDriver != models.StorageYAML {
		t.Error("rejected Set must not change the configuration")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	manager, _ := NewManager(configPath)
	manager.Initialize()

	t.Setenv("TICTOC_DEFAULT_UNIT", "us")
	t.Setenv("TICTOC_SERVER_JWT_SECRET", "hunter2")
	t.Setenv("TICTOC_LOG_FORMAT", "json")

	overridden, _ := NewManager(configPath)
	if err := overridden.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg := overridden.Get()
	if cfg.DefaultUnit != "us" {
		t.Errorf("default_unit = %q, want us", cfg.DefaultUnit)
	}
	if cfg.Server.JWTSecret != "hunter2" || cfg.Log.Format != "json" {
		t.Errorf("got %+v", cfg)
	}

	t.Setenv("TICTOC_STORAGE_DRIVER", "mongo")
	bad, _ := NewManager(configPath)
	if err := bad.Load(); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Load with bad override error = %v, want INVALID_INPUT", err)
	}
}

func TestSaveKeepsEnvOverridesOutOfFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TICTOC_SERVER_JWT_SECRET", "from-env-secret")
	t.Setenv("TICTOC_STORAGE_DRIVER", "sqlite")

	manager, _ := NewManager(configPath)
	if err := manager.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := manager.Set("default_unit", "s"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if strings.Contains(string(data), "from-env-secret") {
		t.Errorf("env secret written to config file:\n%s", data)
	}
	if strings.Contains(string(data), "sqlite") {
		t.Errorf("env storage driver written to config file:\n%s", data)
	}

	cfg := manager.Get()
	if cfg.DefaultUnit != "s" || cfg.Server.JWTSecret != "from-env-secret" || cfg.StorageDriver != "sqlite" {
		t.Errorf("effective config = %+v", cfg)
	}

	t.Setenv("TICTOC_SERVER_JWT_SECRET", "")
	t.Setenv("TICTOC_STORAGE_DRIVER", "")
	reloaded, _ := NewManager(configPath)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := reloaded.Get()
	if got.DefaultUnit != "s" || got.Server.JWTSecret != "" || got.StorageDriver != models.StorageYAML {
		t.Errorf("reloaded config = %+v", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(configPath, []byte("default_unit: [unterminated"), 0600)

	manager, _ := NewManager(configPath)
	if err := manager.Load(); !errors.IsCode(err, errors.ErrInvalidInput) {
		t.Errorf("Load error = %v, want INVALID_INPUT", err)
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	manager, _ := NewManager(filepath.Join(dir, "config.yaml"))
	manager.Load()

	store, err := manager.OpenStore()
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	if _, ok := store.(*yamlStore.Store); !ok {
		t.Errorf("default store is %T, want yaml", store)
	}
	store.Close()

	dataDir := filepath.Join(dir, "data")
	manager.Set("data_dir", dataDir)
	manager.Set("storage_driver", "sqlite")
	store, err = manager.OpenStore()
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()
	if _, ok := store.(*sqlite.Store); !ok {
		t.Errorf("store is %T, want sqlite", store)
	}
	if _, err := os.Stat(filepath.Join(dataDir, sqlite.FileName)); err != nil {
		t.Errorf("database not created in data dir: %v", err)
	}
}

func TestValue(t *testing.T) {
	manager, _ := NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	manager.Load()

	if v, err := manager.Value("log.format"); err != nil || v != "text" {
		t.Errorf("Value(log.format) = %q, %v", v, err)
	}
	if _, err := manager.Value("bogus"); err == nil {
		t.Error("Value of unknown key should fail")
	}
}
