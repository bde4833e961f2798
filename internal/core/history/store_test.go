package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/qrpop/internal/core/kv"
)

// stepClock returns a clock that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

type failingKV struct {
	kv.Store
	getErr error
	setErr error
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore(kv.NewMemory())

	list, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestStore_RecordPrependsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore(kv.NewMemory(), WithClock(stepClock(start)))

	_, err := s.Record(ctx, "https://example.com")
	require.NoError(t, err)
	list, err := s.Record(ctx, "hello")
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, "hello", list[0].Text)
	assert.Equal(t, "https://example.com", list[1].Text)
	assert.True(t, list[0].Timestamp.After(list[1].Timestamp))
	assert.NotEmpty(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, loaded)
}

func TestStore_LengthInvariant(t *testing.T) {
	ctx := context.Background()

	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := NewStore(kv.NewMemory())
			for i := 0; i < n; i++ {
				_, err := s.Record(ctx, fmt.Sprintf("text-%d", i))
				require.NoError(t, err)
			}

			list, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, list, min(n, Limit))
			for i, e := range list {
				assert.Equal(t, fmt.Sprintf("text-%d", n-1-i), e.Text)
			}
		})
	}
}

func TestStore_SixthEntryDropsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	inputs := []string{"https://example.com", "hello", "a", "b", "c"}
	for _, in := range inputs {
		_, err := s.Record(ctx, in)
		require.NoError(t, err)
	}
	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, list.Texts(), "https://example.com")

	list, err = s.Record(ctx, "d")
	require.NoError(t, err)
	assert.Len(t, list, Limit)
	assert.Equal(t, []string{"d", "c", "b", "a", "hello"}, list.Texts())
	assert.NotContains(t, list.Texts(), "https://example.com")
}

func TestStore_TimestampIsNotMutated(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), WithClock(stepClock(time.Now())))

	first, err := s.Record(ctx, "first")
	require.NoError(t, err)
	ts := first[0].Timestamp

	list, err := s.Record(ctx, "second")
	require.NoError(t, err)
	assert.True(t, list[1].Timestamp.Equal(ts))
}

func TestStore_DuplicatesAreKept(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	s.Record(ctx, "same")
	list, err := s.Record(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, []string{"same", "same"}, list.Texts())
}

func TestStore_WithLimit(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory(), WithLimit(2))

	for _, in := range []string{"a", "b", "c"} {
		s.Record(ctx, in)
	}
	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, list.Texts())
}

func TestStore_RecordWriteFailureStillReturnsList(t *testing.T) {
	ctx := context.Background()
	writeErr := errors.New("quota exceeded")
	s := NewStore(failingKV{Store: kv.NewMemory(), setErr: writeErr})

	list, err := s.Record(ctx, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
	assert.Equal(t, []string{"hello"}, list.Texts())
}

func TestStore_LoadFailurePropagates(t *testing.T) {
	readErr := errors.New("storage unavailable")
	s := NewStore(failingKV{Store: kv.NewMemory(), getErr: readErr})

	list, err := s.Load(context.Background())
	assert.ErrorIs(t, err, readErr)
	assert.Empty(t, list)
}

func TestStore_CorruptValueIsReplacedOnRecord(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, Key, []byte(`{"not":"a list"}`)))
	s := NewStore(mem)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	list, err := s.Record(ctx, "fresh")
	assert.ErrorIs(t, err, ErrReset)
	assert.Equal(t, []string{"fresh"}, list.Texts())

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, loaded.Texts())
}

// flakyKV fails the next n Get calls, then delegates.
type flakyKV struct {
	kv.Store
	failures int
	err      error
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failures > 0 {
		f.failures--
		return nil, false, f.err
	}
	return f.Store.Get(ctx, key)
}

func TestStore_RecordReadFailureKeepsStoredHistory(t *testing.T) {
	ctx := context.Background()
	backend := &flakyKV{Store: kv.NewMemory(), err: errors.New("database is locked (SQLITE_BUSY)")}
	s := NewStore(backend)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		_, err := s.Record(ctx, text)
		require.NoError(t, err)
	}

	backend.failures = 1
	list, err := s.Record(ctx, "f")
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.err)
	assert.NotErrorIs(t, err, ErrCorrupt)
	assert.Nil(t, list)

	stored, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, stored.Texts())

	list, err = s.Record(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "e", "d", "c", "b"}, list.Texts())
}

func TestStore_RecordRecoversCorruptFileBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "qrpop.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))
	backend, err := kv.OpenFile(path)
	require.NoError(t, err)
	s := NewStore(backend)

	_, err = s.Record(ctx, "first")
	assert.ErrorIs(t, err, ErrReset)

	list, err := s.Record(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, list.Texts())

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, loaded.Texts())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	s.Record(ctx, "a")
	require.NoError(t, s.Clear(ctx))

	list, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStore_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	s := NewStore(db, WithClock(func() time.Time { return ts }))

	_, err = s.Record(ctx, "https://example.com")
	require.NoError(t, err)

	list, err := NewStore(db).Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://example.com", list[0].Text)
	assert.True(t, list[0].Timestamp.Equal(ts))
}
