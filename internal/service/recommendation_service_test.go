package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoom(t *testing.T, factory unitofwork.RepositoryFactory, name string, creator *entity.User, createdAt time.Time) {
	t.Helper()
	ctx := context.Background()
	room := &entity.Room{
		Id:        uuid.New(),
		Name:      name,
		Language:  "python",
		CreatorId: &creator.Id,
		CreatedAt: createdAt,
	}
	require.NoError(t, factory.NewUnitOfWork(ctx).RoomRepository().Create(ctx, room))
}

func TestRecommendedRoomsWithoutProfile(t *testing.T) {
	factory := unitofwork.NewRepositoryFactory(newTestDB(t))
	user := seedUser(t, factory, "loner")

	rooms, err := NewRecommendationService(factory).RecommendedRooms(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestRecommendedRoomsComeFromSimilarUsers(t *testing.T) {
	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(newTestDB(t))
	profiles := NewProfileService(factory)

	me := seedUser(t, factory, "me")
	twin := seedUser(t, factory, "twin")
	painter := seedUser(t, factory, "painter")
	quiet := seedUser(t, factory, "quiet")

	for user, interests := range map[*entity.User]string{
		me:      "golang concurrency networking",
		twin:    "golang concurrency networking",
		painter: "watercolor landscapes",
		quiet:   "",
	} {
		_, err := profiles.UpdateInterests(ctx, user.Id, &dto.UpdateInterestsRequest{Interests: interests})
		require.NoError(t, err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		seedRoom(t, factory, fmt.Sprintf("TWIN%02d", i), twin, base.Add(time.Duration(i)*time.Minute))
	}
	seedRoom(t, factory, "PAINT1", painter, base)
	seedRoom(t, factory, "QUIET1", quiet, base)
	seedRoom(t, factory, "MINE01", me, base)

	rooms, err := NewRecommendationService(factory).RecommendedRooms(ctx, me.Id)
	require.NoError(t, err)
	require.Len(t, rooms, 5)

	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		assert.Equal(t, "twin", r.Creator)
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"TWIN06", "TWIN05", "TWIN04", "TWIN03", "TWIN02"}, names)
}
