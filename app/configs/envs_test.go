package configs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("DATA_DIR", "")
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "")
	t.Setenv("JWT_SECRET", "")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", env.Port)
	assert.Equal(t, "sqlite", env.DBDriver)
	assert.Equal(t, "/api", env.APIPrefix)
	assert.Equal(t, 168*time.Hour, env.JWTTTL)
	assert.Equal(t, "web", env.AdminUsername)
	assert.Equal(t, 10, env.LoginRatePerMinute)
	assert.Zero(t, env.TrustedProxyHops)
	assert.Empty(t, env.JWTSecret)
}

func TestVolumePathOverridesDataDir(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("RAILWAY_VOLUME_MOUNT_PATH", "/mnt/volume")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "/mnt/volume", env.ResolvedDataDir())
	assert.Equal(t, filepath.Join("/mnt/volume", "uploads"), env.UploadsDir())
	assert.Equal(t, filepath.Join("/mnt/volume", "database.sqlite"), env.SQLitePath())
}

func TestLoadEnvRejectsUnknownDrivers(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	_, err := LoadEnv()
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err = LoadEnv()
	assert.Error(t, err)
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	require.NoError(t, err)
	b, err := GenerateSecret()
	require.NoError(t, err)

	assert.Len(t, a, 44)
	assert.NotEqual(t, a, b)
}

func TestOpenSQLiteEnablesForeignKeys(t *testing.T) {
	db, err := OpenSQLite("file:" + filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}
