package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	c := &Consumer{LogDir: dir}

	at := time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)
	for _, ev := range []ActivityEvent{
		{Type: EventFriendAdded, ActorID: 1, TargetID: 2, OccurredAt: at},
		{Type: EventFriendRemoved, ActorID: 1, TargetID: 2, OccurredAt: at},
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, c.Handle(body))
	}

	data, err := os.ReadFile(filepath.Join(dir, "activity.log"))
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-10-15T10:00:00Z] friend.added | actor_id=1 | target_id=2\n"+
			"[2026-10-15T10:00:00Z] friend.removed | actor_id=1 | target_id=2\n",
		string(data))
}

func TestHandleRejectsGarbage(t *testing.T) {
	c := &Consumer{LogDir: t.TempDir()}
	assert.Error(t, c.Handle([]byte("not json")))
	assert.Error(t, c.Handle([]byte(`{"actor_id":1}`)))
}

func TestNewEventIsUTC(t *testing.T) {
	ev := NewEvent(EventTourCreated, 4, 9)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.Equal(t, uint64(9), ev.TargetID)
}
