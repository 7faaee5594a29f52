package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"codecollab-be/internal/entity"
	"codecollab-be/internal/model"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := database.Open(sqlite.Open(dsn), database.PoolConfig{
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, username string) *entity.User {
	t.Helper()
	ctx := context.Background()
	user := &entity.User{
		Id:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	return user
}
