package database_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/mindfulbot/internal/database"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type storeFactory func(t *testing.T, now func() time.Time) database.Store

func storeFactories() map[string]storeFactory {
	return map[string]storeFactory{
		"sqlite": func(t *testing.T, now func() time.Time) database.Store {
			t.Helper()
			db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			t.Cleanup(func() { database.CloseDB(db) })
			return database.NewStore(db, nil, database.WithClock(now))
		},
		"memory": func(t *testing.T, now func() time.Time) database.Store {
			t.Helper()
			return database.NewMemoryStore(nil, database.WithClock(now))
		},
	}
}

func newMessage(conversationID string, sender database.Sender, content string, ts time.Time) *database.Message {
	return &database.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Content:        content,
		Sender:         sender,
		Timestamp:      ts,
	}
}

func TestStore_LoadAllEmpty(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := factory(t, func() time.Time { return fixedNow })

			messages, err := store.LoadAll(context.Background(), "nobody")
			require.NoError(t, err)
			assert.Empty(t, messages)
		})
	}
}

func TestStore_AppendPreservesOrderAndAnalysis(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := factory(t, func() time.Time { return fixedNow })

			first := newMessage("c1", database.SenderUser, "I feel happy happy", fixedNow.Add(-time.Minute))
			first.Analysis = &database.MessageAnalysis{Mood: "Happy"}
			second := newMessage("c1", database.SenderBot, "Thank you for sharing that with me.", fixedNow.Add(-time.Minute))
			other := newMessage("c2", database.SenderUser, "hello", fixedNow)
			third := newMessage("c1", database.SenderUser, "anxious anxious anxious", fixedNow)
			third.Analysis = &database.MessageAnalysis{Theme: "Anxiety", Mood: "Anxious"}

			for _, m := range []*database.Message{first, second, other, third} {
				require.NoError(t, store.Append(ctx, m))
			}

			got, err := store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.Equal(t, first.ID, got[0].ID)
			assert.Equal(t, second.ID, got[1].ID)
			assert.Equal(t, third.ID, got[2].ID)

			require.NotNil(t, got[0].Analysis)
			assert.Equal(t, "Happy", got[0].Analysis.Mood)
			assert.Empty(t, got[0].Analysis.Theme)
			assert.Nil(t, got[1].Analysis)
			assert.Equal(t, database.MessageAnalysis{Theme: "Anxiety", Mood: "Anxious"}, *got[2].Analysis)
			assert.True(t, got[2].Timestamp.Equal(fixedNow))
		})
	}
}

func TestStore_AppendPrunesRollingWindow(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			now := fixedNow
			var mu sync.Mutex
			clock := func() time.Time {
				mu.Lock()
				defer mu.Unlock()
				return now
			}
			store := factory(t, clock)

			eightDays := newMessage("c1", database.SenderUser, "old", fixedNow.Add(-8*24*time.Hour))
			sixDays := newMessage("c1", database.SenderUser, "recent", fixedNow.Add(-6*24*time.Hour))
			require.NoError(t, store.Append(ctx, eightDays))
			require.NoError(t, store.Append(ctx, sixDays))

			fresh := newMessage("c1", database.SenderUser, "today", fixedNow)
			require.NoError(t, store.Append(ctx, fresh))

			got, err := store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			ids := make([]string, 0, len(got))
			for _, m := range got {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, []string{sixDays.ID, fresh.ID}, ids)

			// Advancing the clock only takes effect on the next write.
			mu.Lock()
			now = fixedNow.Add(2 * 24 * time.Hour)
			mu.Unlock()

			got, err = store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			assert.Len(t, got, 2)

			require.NoError(t, store.Append(ctx, newMessage("c2", database.SenderUser, "elsewhere", now)))
			got, err = store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, fresh.ID, got[0].ID)
		})
	}
}

func TestStore_AppendRejectsInvalidMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message *database.Message
	}{
		{name: "nil message", message: nil},
		{name: "empty content", message: newMessage("c1", database.SenderUser, "", fixedNow)},
		{name: "missing conversation", message: newMessage("", database.SenderUser, "hi", fixedNow)},
		{name: "unknown sender", message: newMessage("c1", database.Sender("system"), "hi", fixedNow)},
		{name: "zero timestamp", message: newMessage("c1", database.SenderUser, "hi", time.Time{})},
		{
			name: "bot message with analysis",
			message: func() *database.Message {
				m := newMessage("c1", database.SenderBot, "reply", fixedNow)
				m.Analysis = &database.MessageAnalysis{Mood: "Happy"}
				return m
			}(),
		},
	}

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := factory(t, func() time.Time { return fixedNow })

			for _, tt := range tests {
				err := store.Append(context.Background(), tt.message)
				assert.ErrorIs(t, err, database.ErrInvalidMessage, tt.name)
			}

			got, err := store.LoadAll(context.Background(), "c1")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := factory(t, func() time.Time { return fixedNow })

			const writers = 8
			var wg sync.WaitGroup
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, store.Append(ctx, newMessage("c1", database.SenderUser, "hi", fixedNow)))
				}()
			}
			wg.Wait()

			got, err := store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			assert.Len(t, got, writers)
		})
	}
}

func TestStore_MaintenanceKeepsData(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := factory(t, func() time.Time { return fixedNow })

			require.NoError(t, store.Append(ctx, newMessage("c1", database.SenderUser, "hi", fixedNow)))
			require.NoError(t, store.RunSQLMaintenance(ctx))
			require.NoError(t, store.Ping(ctx))

			got, err := store.LoadAll(ctx, "c1")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "storage.db", expected: "storage.db"},
		{input: "file:storage.db?_pragma=busy_timeout(5000)", expected: "storage.db"},
		{input: "file:my%20data.db", expected: "my data.db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, database.ExtractDBNameFromPath(tt.input))
	}
}

func TestStore_LoadAllFailsSoftOnUnreadableData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		corrupt string
	}{
		{name: "table dropped", corrupt: "DROP TABLE messages"},
		{name: "column unreadable", corrupt: "UPDATE messages SET timestamp_ms = 'not a number'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			t.Cleanup(func() { database.CloseDB(db) })
			store := database.NewStore(db, nil, database.WithClock(func() time.Time { return fixedNow }))

			require.NoError(t, store.Append(context.Background(), newMessage("c1", database.SenderUser, "hello", fixedNow)))

			_, err = db.Exec(tt.corrupt)
			require.NoError(t, err)

			messages, err := store.LoadAll(context.Background(), "c1")
			require.NoError(t, err)
			assert.NotNil(t, messages)
			assert.Empty(t, messages)
		})
	}
}

func TestStore_LoadAllSkipsMalformedRows(t *testing.T) {
	t.Parallel()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })
	store := database.NewStore(db, nil, database.WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	first := newMessage("c1", database.SenderUser, "first", fixedNow)
	require.NoError(t, store.Append(ctx, first))

	_, err = db.Exec("PRAGMA ignore_check_constraints = ON")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO messages (id, conversation_id, sender, content, timestamp_ms, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`, uuid.NewString(), "c1", "robot", "bad row", fixedNow.UnixMilli(), fixedNow)
	require.NoError(t, err)

	second := newMessage("c1", database.SenderBot, "second", fixedNow)
	require.NoError(t, store.Append(ctx, second))

	messages, err := store.LoadAll(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, first.ID, messages[0].ID)
	assert.Equal(t, second.ID, messages[1].ID)
}

func TestStore_LoadAllPropagatesCancellation(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := factory(t, func() time.Time { return fixedNow })

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := store.LoadAll(ctx, "c1")
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}
