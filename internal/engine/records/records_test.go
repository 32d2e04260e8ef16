package records

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_placement/internal/engine"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)

// newTestStore returns a Store over a fresh memory KV and a fixed clock.
func newTestStore(t *testing.T) (*Store, engine.KV) {
	t.Helper()
	kv := engine.NewMemoryKV()
	return New(kv, WithClock(func() time.Time { return testNow })), kv
}

func putRaw(t *testing.T, kv engine.KV, key, value string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), key, value))
}
