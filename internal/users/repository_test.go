package users

import (
	"context"
	"testing"

	"github.com/newsbook/newsbook-api/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMemoryUserRepository(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	u := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}
	require.NoError(t, r.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := r.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	missing, err := r.GetByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, missing)

	require.ErrorIs(t, r.Create(ctx, &models.User{Name: "Other", Email: "ana@x.com"}), ErrEmailTaken)
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "h"}
		require.NoError(mt, repo.Create(context.Background(), u))
		require.Len(mt, u.ID, 24)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: news.users index: email_1",
		}))

		err := repo.Create(context.Background(), &models.User{Name: "Ana", Email: "ana@x.com"})
		require.ErrorIs(mt, err, ErrEmailTaken)
	})

	mt.Run("get by email", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "64b7f0c2a1b2c3d4e5f60718"},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@x.com"},
			{Key: "password", Value: "hash"},
		}))

		u, err := repo.GetByEmail(context.Background(), "ana@x.com")
		require.NoError(mt, err)
		require.NotNil(mt, u)
		require.Equal(mt, "64b7f0c2a1b2c3d4e5f60718", u.ID)
		require.Equal(mt, "hash", u.PasswordHash)
	})

	mt.Run("get by email missing", func(mt *mtest.T) {
		repo := NewMongoUserRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		u, err := repo.GetByEmail(context.Background(), "nobody@x.com")
		require.NoError(mt, err)
		require.Nil(mt, u)
	})
}
