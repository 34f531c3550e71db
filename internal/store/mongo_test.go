package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/themobileprof/careportal-assistant/internal/memory"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("append", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := s.Append(context.Background(), "session-1", memory.NewUserMessage("track my delivery"))
		assert.NoError(mt, err)
	})

	mt.Run("append error", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := s.Append(context.Background(), "session-1", memory.NewUserMessage("hi"))
		assert.Error(mt, err)
	})

	mt.Run("list returns chronological order", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		older := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
		newer := older.Add(time.Minute)

		// newest first, as the sort requests
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "m2"},
				{Key: "session_id", Value: "session-1"},
				{Key: "sender", Value: "assistant"},
				{Key: "text", Value: "Here are the available Cardiologist doctors."},
				{Key: "widget", Value: "doctor-list"},
				{Key: "payload", Value: bson.D{{Key: "specialty", Value: "Cardiologist"}}},
				{Key: "created_at", Value: newer},
			},
			bson.D{
				{Key: "_id", Value: "m1"},
				{Key: "session_id", Value: "session-1"},
				{Key: "sender", Value: "user"},
				{Key: "text", Value: "yes"},
				{Key: "created_at", Value: older},
			},
		))

		messages, err := s.List(context.Background(), "session-1", 2)
		require.NoError(mt, err)
		require.Len(mt, messages, 2)

		assert.Equal(mt, "m1", messages[0].ID)
		assert.Equal(mt, memory.SenderUser, messages[0].Sender)
		assert.True(mt, messages[0].CreatedAt.Equal(older))
		assert.Equal(mt, "m2", messages[1].ID)
		assert.Equal(mt, "doctor-list", messages[1].Widget)
		assert.Equal(mt, "Cardiologist", messages[1].Payload["specialty"])
	})

	mt.Run("list empty", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		messages, err := s.List(context.Background(), "nobody", 0)
		require.NoError(mt, err)
		assert.Empty(mt, messages)
	})

	mt.Run("delete", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		assert.NoError(mt, s.Delete(context.Background(), "session-1"))
	})

	mt.Run("close without owned client", func(mt *mtest.T) {
		assert.NoError(mt, NewMongoStore(mt.Coll).Close())
	})
}
