package lib

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/devanshm/bunkmate/config"
	"github.com/devanshm/bunkmate/lib/clock"
	"github.com/devanshm/bunkmate/lib/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Monday.
var testDay = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.sqlite")),
		&gorm.Config{TranslateError: true},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.TimetableEntry{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, clk clock.Clock) *Service {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return NewService(nil, cfg, zap.NewNop(), db, clk)
}

func registerTestUser(t *testing.T, svc *Service, email string) *models.User {
	t.Helper()

	user, err := svc.Register(context.Background(), "Asha", "Rao", email, "hunter22")
	require.NoError(t, err)
	return user
}

func declareTestSubjects(t *testing.T, svc *Service, userID uint, names ...string) models.Subjects {
	t.Helper()

	subs, err := svc.DeclareSubjects(context.Background(), userID, names)
	require.NoError(t, err)
	require.Len(t, subs, len(names))
	return subs
}
