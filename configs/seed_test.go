package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cooldeal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, SetupDatabase(db))
	return db
}

func TestSeedFixtures(t *testing.T) {
	db := openTestDB(t)
	log := zap.NewNop()

	fx, err := LoadFixtures("")
	require.NoError(t, err)
	require.NotNil(t, fx.SiteInfo)

	require.NoError(t, SeedLookups(db))
	require.NoError(t, SeedFixtures(db, fx, log))
	// idempotent
	require.NoError(t, SeedLookups(db))
	require.NoError(t, SeedFixtures(db, fx, log))

	var n int64
	db.Model(&entity.OrderStatus{}).Count(&n)
	assert.EqualValues(t, 4, n)

	db.Model(&entity.EstablishmentCategory{}).Count(&n)
	assert.EqualValues(t, len(fx.Categories), n)

	db.Model(&entity.SiteInfo{}).Count(&n)
	assert.EqualValues(t, 1, n)

	var coupon entity.Coupon
	require.NoError(t, db.Where("code = ?", "BIENVENUE10").First(&coupon).Error)
	assert.Equal(t, "0.1", coupon.Reduction.String())
	assert.True(t, coupon.Active)

	var cat entity.EstablishmentCategory
	require.NoError(t, db.Where("name = ?", "Restauration").First(&cat).Error)
	assert.Contains(t, cat.Slug, "restauration-")
}

func TestLoadFixturesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cities:\n  - name: Korhogo\n    country: CI\n"), 0o644))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, fx.Cities, 1)
	assert.Equal(t, "Korhogo", fx.Cities[0].Name)

	_, err = LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	db := openTestDB(t)
	cfg := &Config{AdminUsername: "root", AdminEmail: "root@cooldeal.test", AdminPassword: "secret123"}

	require.NoError(t, SeedAdmin(db, cfg, zap.NewNop()))
	require.NoError(t, SeedAdmin(db, cfg, zap.NewNop()))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)

	t.Run("skips without credentials", func(t *testing.T) {
		db := openTestDB(t)
		require.NoError(t, SeedAdmin(db, &Config{}, zap.NewNop()))
		var n int64
		db.Model(&entity.User{}).Count(&n)
		assert.Zero(t, n)
	})
}
