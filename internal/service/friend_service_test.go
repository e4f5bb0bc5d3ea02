package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinetour/internal/apperr"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/queue"
	"github.com/iliyamo/cinetour/internal/testsupport"
)

var (
	alice = model.User{ID: testsupport.AliceID, Username: "alice"}
	bob   = model.User{ID: testsupport.BobID, Username: "bob"}
)

func newFriendService(t *testing.T) (*FriendService, *testsupport.DB, *testsupport.Publisher) {
	t.Helper()
	db := testsupport.Seed()
	pub := &testsupport.Publisher{}
	return NewFriendService(db.Friends(), pub, nil), db, pub
}

func TestFriendRoundTrip(t *testing.T) {
	svc, _, pub := newFriendService(t)
	ctx := context.Background()

	edge, err := svc.Add(ctx, alice.ID, bob.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, edge.OwnerID)
	assert.Equal(t, bob.ID, edge.FriendID)

	friends, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].FriendID)
	assert.Equal(t, "bob", friends[0].Username)

	removed, err := svc.Remove(ctx, alice.ID, bob.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, edge.ID, removed.ID)

	friends, err = svc.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	assert.Equal(t, []string{queue.EventFriendAdded, queue.EventFriendRemoved}, pub.Types())
}

func TestFriendAddTwiceConflictsEveryTime(t *testing.T) {
	svc, db, _ := newFriendService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, alice.ID, bob.ID, alice)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.Add(ctx, alice.ID, bob.ID, alice)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	}
	assert.Equal(t, 1, db.FriendCount())
}

func TestFriendConcurrentAddCreatesOneEdge(t *testing.T) {
	svc, db, pub := newFriendService(t)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, alice.ID, bob.ID, alice)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, db.FriendCount())
	assert.Equal(t, []string{queue.EventFriendAdded}, pub.Types())
}

func TestFriendEdgesAreDirected(t *testing.T) {
	svc, _, _ := newFriendService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, alice.ID, bob.ID, alice)
	require.NoError(t, err)
	_, err = svc.Add(ctx, bob.ID, alice.ID, bob)
	require.NoError(t, err)

	friends, err := svc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, alice.ID, friends[0].FriendID)
}

func TestFriendMutationsRequireOwner(t *testing.T) {
	svc, db, pub := newFriendService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, alice.ID, testsupport.CarolID, bob)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = svc.Remove(ctx, alice.ID, testsupport.CarolID, bob)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	assert.Equal(t, 0, db.FriendCount())
	assert.Empty(t, pub.Events())
}

func TestFriendRejectsSelf(t *testing.T) {
	svc, db, _ := newFriendService(t)
	_, err := svc.Add(context.Background(), alice.ID, alice.ID, alice)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Equal(t, "friendId must differ from userId", apperr.Message(err))

	_, err = svc.Remove(context.Background(), alice.ID, alice.ID, alice)
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
	assert.Equal(t, "friendId must differ from userId", apperr.Message(err))
	assert.Equal(t, int64(0), db.Calls())
}

func TestFriendRemoveMissingIsNotFound(t *testing.T) {
	svc, _, pub := newFriendService(t)
	_, err := svc.Remove(context.Background(), alice.ID, bob.ID, alice)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, pub.Events())
}

func TestFriendAddUnknownUser(t *testing.T) {
	svc, _, _ := newFriendService(t)
	_, err := svc.Add(context.Background(), alice.ID, 999, alice)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFriendStoreFailureIsInternal(t *testing.T) {
	svc, db, _ := newFriendService(t)
	db.Err = errors.New("connection reset")

	_, err := svc.List(context.Background(), alice.ID)
	assert.ErrorIs(t, err, apperr.ErrInternal)
	_, err = svc.Add(context.Background(), alice.ID, bob.ID, alice)
	assert.ErrorIs(t, err, apperr.ErrInternal)
}

func TestFriendPublishFailureDoesNotFailAdd(t *testing.T) {
	db := testsupport.Seed()
	svc := NewFriendService(db.Friends(), &testsupport.Publisher{Err: errors.New("broker down")}, nil)

	_, err := svc.Add(context.Background(), alice.ID, bob.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, db.FriendCount())
}

func TestFriendID(t *testing.T) {
	num := func(v float64) *float64 { return &v }

	id, err := FriendID(1, num(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)

	for name, raw := range map[string]*float64{
		"missing":  nil,
		"zero":     num(0),
		"negative": num(-3),
		"fraction": num(2.5),
		"self":     num(1),
	} {
		_, err := FriendID(1, raw)
		assert.ErrorIs(t, err, apperr.ErrBadRequest, name)
	}
}
