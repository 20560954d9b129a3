package api

import (
	"fmt"
	"strings"
	"testing"

	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrateIsRepeatable(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, migrate(db))
	for _, model := range []interface{}{
		&domain.User{},
		&domain.Event{},
		&domain.Participant{},
		&domain.Invitee{},
		&domain.RSVPToken{},
		&domain.Plan{},
		&domain.PlanMember{},
	} {
		require.True(t, db.Migrator().HasTable(model))
	}

	// a restarted or second instance migrating the same schema is a no-op
	require.NoError(t, migrate(db))
}
