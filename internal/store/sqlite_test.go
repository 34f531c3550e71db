package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themobileprof/careportal-assistant/internal/memory"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_AppendAndList(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	user := memory.NewUserMessage("I have chest pain")
	reply := memory.NewAssistantMessage("Based on your symptoms, I recommend seeing a Cardiologist.", "specialist-confirmation",
		map[string]string{"specialty": "Cardiologist"})

	require.NoError(t, s.Append(ctx, "session-1", user))
	require.NoError(t, s.Append(ctx, "session-1", reply))
	require.NoError(t, s.Append(ctx, "session-2", memory.NewUserMessage("other session")))

	messages, err := s.List(ctx, "session-1", 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, user.ID, messages[0].ID)
	assert.Equal(t, memory.SenderUser, messages[0].Sender)
	assert.True(t, messages[0].CreatedAt.Equal(user.CreatedAt))
	assert.Equal(t, "specialist-confirmation", messages[1].Widget)
	assert.Equal(t, "Cardiologist", messages[1].Payload["specialty"])
}

func TestSQLiteStore_ListLimitKeepsMostRecent(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Append(ctx, "session-1", memory.NewUserMessage(fmt.Sprintf("msg %d", i))))
	}

	messages, err := s.List(ctx, "session-1", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg 4", messages[0].Text)
	assert.Equal(t, "msg 5", messages[1].Text)
}

func TestSQLiteStore_Delete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "session-1", memory.NewUserMessage("hi")))
	require.NoError(t, s.Delete(ctx, "session-1"))

	messages, err := s.List(ctx, "session-1", 0)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	msg := memory.NewUserMessage("hi")
	require.NoError(t, s.Append(ctx, "session-1", msg))
	assert.Error(t, s.Append(ctx, "session-1", msg))
}

func TestOpenSQLite_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chat.db")

	s, err := Open(context.Background(), Config{Driver: "sqlite", URL: path})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Append(context.Background(), "s", memory.NewUserMessage("persisted")))
	messages, err := s.List(context.Background(), "s", 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestOpenSQLite_EmptyDSN(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}
