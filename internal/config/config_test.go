package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"INVENTAR_BACKEND", "INVENTAR_DB", "INVENTAR_SLOT", "INVENTAR_FORMAT", "INVENTAR_LOG", "INVENTAR_VERBOSE", "INVENTAR_QR_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "inventar.sqlite3", cfg.DB)
	assert.Equal(t, "inventory_items", cfg.Slot)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Empty(t, cfg.Log)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 256, cfg.QRSize)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("INVENTAR_BACKEND", "file")
	t.Setenv("INVENTAR_DB", "")
	t.Setenv("INVENTAR_FORMAT", "json")
	t.Setenv("INVENTAR_VERBOSE", "true")
	t.Setenv("INVENTAR_QR_SIZE", "512")

	cfg := Load()

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "inventar.json", cfg.DB)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 512, cfg.QRSize)
}

func TestValidate(t *testing.T) {
	valid := Config{Backend: BackendFile, DB: "x.json", Slot: "s", Format: FormatJSON}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Backend = "postgres"
	assert.ErrorContains(t, bad.Validate(), "unknown backend")

	bad = valid
	bad.Format = "yaml"
	assert.ErrorContains(t, bad.Validate(), "unknown format")

	bad = valid
	bad.DB = ""
	assert.Error(t, bad.Validate())

	bad = valid
	bad.Slot = ""
	assert.Error(t, bad.Validate())
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "invalid")
	assert.False(t, getEnvBool(key, false))

	t.Setenv(key, "")
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))
}
