package scheduler

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/labeltracker/internal/repository/file"
	syncmgr "github.com/mamadbah2/labeltracker/internal/sync"
)

func TestConstantScheduleKeepsSubSecondDelays(t *testing.T) {
	base := time.UnixMilli(1700000000000)

	assert.Equal(t, base.Add(30*time.Millisecond), constantSchedule{delay: 30 * time.Millisecond}.Next(base))
	assert.Equal(t, base.Add(30*time.Second), constantSchedule{delay: 30 * time.Second}.Next(base))
}

func TestAutoSyncNeverOverlaps(t *testing.T) {
	var inFlight, maxInFlight, total int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt64(&inFlight, 1)
		defer atomic.AddInt64(&inFlight, -1)
		for {
			observed := atomic.LoadInt64(&maxInFlight)
			if current <= observed || atomic.CompareAndSwapInt64(&maxInFlight, observed, current) {
				break
			}
		}
		atomic.AddInt64(&total, 1)
		time.Sleep(100 * time.Millisecond) // sync takes longer than the interval
	}))
	defer server.Close()

	store, err := file.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	cfg := store.LoadConfig()
	cfg.ServerURL = server.URL
	cfg.IsAutoSyncEnabled = true
	require.NoError(t, store.SaveConfig(cfg))

	manager := syncmgr.NewManager(store, zap.NewNop())
	sched := NewScheduler(store, manager, nil, zap.NewNop())
	sched.SetInterval(30 * time.Millisecond)

	sched.Start()
	time.Sleep(250 * time.Millisecond)
	sched.Stop()

	assert.GreaterOrEqual(t, atomic.LoadInt64(&total), int64(1), "at least one sync should have run")
	assert.Equal(t, int64(1), atomic.LoadInt64(&maxInFlight), "overlapping ticks must be skipped, not queued")
}

func TestSchedulerRearmsOnConfigChange(t *testing.T) {
	var total int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&total, 1)
	}))
	defer server.Close()

	store, err := file.NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	manager := syncmgr.NewManager(store, zap.NewNop())
	sched := NewScheduler(store, manager, nil, zap.NewNop())
	sched.SetInterval(20 * time.Millisecond)
	defer sched.Stop()

	// auto-sync disabled: nothing runs
	sched.Start()
	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt64(&total))

	// the config write itself must re-arm the loop
	cfg := store.LoadConfig()
	cfg.ServerURL = server.URL
	cfg.IsAutoSyncEnabled = true
	require.NoError(t, store.SaveConfig(cfg))

	time.Sleep(120 * time.Millisecond)
	assert.Greater(t, atomic.LoadInt64(&total), int64(0))

	// disabling tears the loop down again
	cfg.IsAutoSyncEnabled = false
	require.NoError(t, store.SaveConfig(cfg))
	time.Sleep(50 * time.Millisecond) // drain any tick that was already running
	settled := atomic.LoadInt64(&total)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt64(&total))
}
