package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, 1), name)
	}
	for _, name := range []string{"b", "d", "f", "unknown"} {
		assert.False(t, m.Enabled(name, 1), name)
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=x%")

	assert.True(t, m.Enabled("always", 1))
	assert.True(t, m.Enabled("always", 0))
	assert.False(t, m.Enabled("never", 1))
	assert.False(t, m.Enabled("broken", 1))

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42), "rollout must be deterministic per user")
	}
	assert.False(t, m.Enabled("canary", 0), "anonymous callers are outside partial rollouts")

	enabled := 0
	for uid := uint(1); uid <= 1000; uid++ {
		if m.Enabled("canary", uid) {
			enabled++
		}
	}
	assert.InDelta(t, 250, enabled, 80)
}

func TestDefaultsAndOverrides(t *testing.T) {
	m := NewManager("")
	assert.False(t, m.Enabled(DashboardAnalytics, 1))
	assert.True(t, m.Enabled(LiveFeed, 1))
	assert.True(t, m.Enabled(AvatarUploads, 1))

	m = NewManager(" Dashboard_Analytics = ON , live_feed=off, bad ,=on")
	assert.True(t, m.Enabled(DashboardAnalytics, 1))
	assert.False(t, m.Enabled(LiveFeed, 1))
	assert.Equal(t, map[string]bool{
		AvatarUploads:      true,
		DashboardAnalytics: true,
		LiveFeed:           false,
	}, m.Snapshot(7))
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(LiveFeed, 1))
	assert.Empty(t, m.Snapshot(1))
}
