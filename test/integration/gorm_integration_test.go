package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ideaboard-be/internal/dto"
	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/repository/specification"
	"ideaboard-be/internal/repository/unitofwork"
	"ideaboard-be/internal/service"
	"ideaboard-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	return gormDB
}

func createTestUser(t *testing.T, uowFactory unitofwork.RepositoryFactory) *entity.User {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{
		Id:       uuid.New(),
		Email:    "test-integration-" + uuid.New().String() + "@example.com",
		FullName: "Integration Test User",
	}
	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserRepository().Create(ctx, user))
	return user
}

func TestGormConnection(t *testing.T) {
	gormDB := openTestDB(t)

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.RoomRepository())
	assert.NotNil(t, uow.MembershipRepository())
	assert.NotNil(t, uow.IdeaRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Room Repository", func(t *testing.T) {
		count, err := uow.RoomRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Room count: %d", count)
	})

	t.Run("Check Idea Repository", func(t *testing.T) {
		count, err := uow.IdeaRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Idea count: %d", count)
	})
}

func TestCreateRoomWritesOwnerMembership(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	user := createTestUser(t, uowFactory)

	roomService := service.NewRoomService(uowFactory, nil, nil, nil, "http://localhost:5173")

	res, err := roomService.Create(ctx, user.Id, &dto.CreateRoomRequest{Name: "Integration Room"})
	require.NoError(t, err)

	uow := uowFactory.NewUnitOfWork(ctx)
	membership, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: res.Id},
		specification.ByUserID{UserID: user.Id},
	)
	require.NoError(t, err)
	require.NotNil(t, membership, "owner membership must exist in the same moment the room does")
	assert.Equal(t, entity.MemberRoleOwner, membership.Role)

	rooms, err := roomService.List(ctx, user.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, rooms)
}

func TestEnsureMembershipIsIdempotent(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	owner := createTestUser(t, uowFactory)
	visitor := createTestUser(t, uowFactory)

	roomService := service.NewRoomService(uowFactory, nil, nil, nil, "http://localhost:5173")

	res, err := roomService.Create(ctx, owner.Id, &dto.CreateRoomRequest{Name: "Idempotence Room"})
	require.NoError(t, err)

	// Repeated joins must collapse to a single row and never error.
	for i := 0; i < 3; i++ {
		require.NoError(t, roomService.EnsureMembership(ctx, res.Id, visitor.Id))
	}

	uow := uowFactory.NewUnitOfWork(ctx)
	count, err := uow.MembershipRepository().Count(ctx,
		specification.ByRoomID{RoomID: res.Id},
		specification.ByUserID{UserID: visitor.Id},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The owner row from Create must be untouched.
	ownerRow, err := uow.MembershipRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: res.Id},
		specification.ByUserID{UserID: owner.Id},
	)
	require.NoError(t, err)
	require.NotNil(t, ownerRow)
	assert.Equal(t, entity.MemberRoleOwner, ownerRow.Role)
}

func TestEnsureMembershipRejectsUnknownRoom(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	visitor := createTestUser(t, uowFactory)

	roomService := service.NewRoomService(uowFactory, nil, nil, nil, "http://localhost:5173")

	// A room id that was never created must not gain a membership row.
	ghostRoom := uuid.New()
	err := roomService.EnsureMembership(ctx, ghostRoom, visitor.Id)
	require.Error(t, err)

	uow := uowFactory.NewUnitOfWork(ctx)
	count, err := uow.MembershipRepository().Count(ctx,
		specification.ByRoomID{RoomID: ghostRoom},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestEmptyTextUpdateDeletesIdea(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	user := createTestUser(t, uowFactory)

	roomService := service.NewRoomService(uowFactory, nil, nil, nil, "http://localhost:5173")
	room, err := roomService.Create(ctx, user.Id, &dto.CreateRoomRequest{Name: "Deletion Room"})
	require.NoError(t, err)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService("test_position_flush", pubSub)
	ideaService := service.NewIdeaService(uowFactory, publisherService, nil)

	created, err := ideaService.Create(ctx, user.Id, &dto.CreateIdeaRequest{
		RoomId: room.Id,
		Text:   "first thought",
	})
	require.NoError(t, err)

	res, err := ideaService.Update(ctx, user.Id, &dto.UpdateIdeaRequest{
		Id:   created.Id,
		Text: "   ",
	})
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	uow := uowFactory.NewUnitOfWork(ctx)
	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: created.Id})
	require.NoError(t, err)
	assert.Nil(t, idea, "blank text must remove the note")
}

func TestAuthorSnapshotSurvivesProfileChange(t *testing.T) {
	gormDB := openTestDB(t)
	ctx := context.Background()

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	user := createTestUser(t, uowFactory)

	roomService := service.NewRoomService(uowFactory, nil, nil, nil, "http://localhost:5173")
	room, err := roomService.Create(ctx, user.Id, &dto.CreateRoomRequest{Name: "Snapshot Room"})
	require.NoError(t, err)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService("test_position_flush", pubSub)
	ideaService := service.NewIdeaService(uowFactory, publisherService, nil)

	created, err := ideaService.Create(ctx, user.Id, &dto.CreateIdeaRequest{
		RoomId: room.Id,
		Text:   "snapshot me",
	})
	require.NoError(t, err)

	originalName := user.FullName
	user.FullName = "Renamed User"
	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.UserRepository().Update(ctx, user))

	idea, err := uow.IdeaRepository().FindOne(ctx, specification.ByID{ID: created.Id})
	require.NoError(t, err)
	require.NotNil(t, idea)
	assert.Equal(t, originalName, idea.AuthorName)
}
