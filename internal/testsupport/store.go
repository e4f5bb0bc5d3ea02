// Package testsupport provides in-memory stand-ins for the MySQL
// repositories and the event publisher.  They follow the same contracts,
// including the sentinel errors, so services and handlers can be tested
// without a database.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/cinetour/internal/auth"
	"github.com/iliyamo/cinetour/internal/model"
	"github.com/iliyamo/cinetour/internal/repository"
)

// DB is the shared state behind the fake repositories.
type DB struct {
	mu sync.Mutex

	users    map[uint64]model.User
	joined   map[uint64]time.Time
	sessions map[string]uint64 // token hash -> user id

	friends      []model.FriendEdge
	nextFriendID uint64

	cinemas    []model.Cinema
	programmes map[uint64]model.Programme
	tours      map[uint64]model.Tour
	nextTourID uint64

	calls atomic.Int64

	// Err, when set, is returned by every store call.
	Err error
}

func NewDB() *DB {
	return &DB{
		users:      make(map[uint64]model.User),
		joined:     make(map[uint64]time.Time),
		sessions:   make(map[string]uint64),
		programmes: make(map[uint64]model.Programme),
		tours:      make(map[uint64]model.Tour),
	}
}

// Calls reports how many store operations have run.
func (db *DB) Calls() int64 { return db.calls.Load() }

// enter counts a store call, takes the lock and returns the injected
// failure, if any.  The lock is held either way.
func (db *DB) enter() error {
	db.calls.Add(1)
	db.mu.Lock()
	return db.Err
}

// Seeding helpers.  They do not count as store calls.

func (db *DB) AddUser(u model.User) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.users[u.ID] = u
	db.joined[u.ID] = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// AddSession stores raw under its hash, as the login flow would.
func (db *DB) AddSession(raw string, userID uint64) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.sessions[auth.HashToken(raw)] = userID
}

func (db *DB) AddCinema(c model.Cinema) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.cinemas = append(db.cinemas, c)
}

// AddProgramme stores p without a tour; tours are created through Tours.
func (db *DB) AddProgramme(p model.Programme) {
	db.mu.Lock()
	defer db.mu.Unlock()
	p.Tour = nil
	db.programmes[p.ID] = p
}

// User returns the stored row for assertions.
func (db *DB) User(id uint64) (model.User, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	return u, ok
}

// FriendCount returns the number of stored edges.
func (db *DB) FriendCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.friends)
}

func (db *DB) Sessions() Sessions     { return Sessions{db} }
func (db *DB) Users() Users           { return Users{db} }
func (db *DB) Friends() Friends       { return Friends{db} }
func (db *DB) Cinemas() Cinemas       { return Cinemas{db} }
func (db *DB) Programmes() Programmes { return Programmes{db} }
func (db *DB) Tours() Tours           { return Tours{db} }

type Sessions struct{ db *DB }

func (s Sessions) UserBySessionHash(_ context.Context, hash string) (model.User, bool, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.User{}, false, err
	}
	id, ok := s.db.sessions[hash]
	if !ok {
		return model.User{}, false, nil
	}
	u, ok := s.db.users[id]
	return u, ok, nil
}

type Users struct{ db *DB }

func (s Users) ListPublic(context.Context) ([]model.PublicUser, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(s.db.users))
	for _, u := range s.db.users {
		out = append(out, u.Public())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s Users) GetByID(_ context.Context, id uint64) (model.User, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.User{}, err
	}
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s Users) GetByUsername(_ context.Context, username string) (model.User, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range s.db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s Users) GetProfile(_ context.Context, id uint64) (model.Profile, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.Profile{}, err
	}
	if _, ok := s.db.users[id]; !ok {
		return model.Profile{}, repository.ErrUserNotFound
	}
	p := model.Profile{UserID: id, MemberSince: s.db.joined[id]}
	for _, e := range s.db.friends {
		if e.OwnerID == id {
			p.FriendCount++
		}
	}
	for _, t := range s.db.tours {
		if t.HostID == id {
			p.HostedTourCount++
		}
	}
	return p, nil
}

func (s Users) Update(_ context.Context, id uint64, upd model.ProfileUpdate) (model.User, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.User{}, err
	}
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	for _, other := range s.db.users {
		if other.ID != id && other.Username == upd.Username {
			return model.User{}, repository.ErrUsernameTaken
		}
	}
	u.Username = upd.Username
	u.FirstName = upd.FirstName
	u.LastName = upd.LastName
	u.Email = upd.Email
	u.SelfDescription = upd.SelfDescription
	s.db.users[id] = u
	return u, nil
}

// Delete removes the user with the same cascade as the foreign keys.
func (s Users) Delete(_ context.Context, id uint64) (model.User, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.User{}, err
	}
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	delete(s.db.users, id)
	delete(s.db.joined, id)
	for h, uid := range s.db.sessions {
		if uid == id {
			delete(s.db.sessions, h)
		}
	}
	kept := s.db.friends[:0]
	for _, e := range s.db.friends {
		if e.OwnerID != id && e.FriendID != id {
			kept = append(kept, e)
		}
	}
	s.db.friends = kept
	for tid, t := range s.db.tours {
		if t.HostID == id {
			delete(s.db.tours, tid)
		}
	}
	return u, nil
}

type Friends struct{ db *DB }

func (s Friends) ListByOwner(_ context.Context, ownerID uint64) ([]model.Friend, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.Friend, 0)
	for _, e := range s.db.friends {
		if e.OwnerID != ownerID {
			continue
		}
		u := s.db.users[e.FriendID]
		out = append(out, model.Friend{FriendEdge: e, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName})
	}
	return out, nil
}

func (s Friends) Create(_ context.Context, ownerID, friendID uint64) (model.FriendEdge, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.FriendEdge{}, err
	}
	if ownerID == friendID {
		return model.FriendEdge{}, repository.ErrSelfFriend
	}
	if _, ok := s.db.users[ownerID]; !ok {
		return model.FriendEdge{}, repository.ErrUserNotFound
	}
	if _, ok := s.db.users[friendID]; !ok {
		return model.FriendEdge{}, repository.ErrUserNotFound
	}
	for _, e := range s.db.friends {
		if e.OwnerID == ownerID && e.FriendID == friendID {
			return model.FriendEdge{}, repository.ErrFriendExists
		}
	}
	s.db.nextFriendID++
	e := model.FriendEdge{ID: s.db.nextFriendID, OwnerID: ownerID, FriendID: friendID, CreatedAt: time.Now().UTC()}
	s.db.friends = append(s.db.friends, e)
	return e, nil
}

func (s Friends) Delete(_ context.Context, ownerID, friendID uint64) (model.FriendEdge, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.FriendEdge{}, err
	}
	for i, e := range s.db.friends {
		if e.OwnerID == ownerID && e.FriendID == friendID {
			s.db.friends = append(s.db.friends[:i], s.db.friends[i+1:]...)
			return e, nil
		}
	}
	return model.FriendEdge{}, repository.ErrFriendNotFound
}

type Cinemas struct{ db *DB }

func (s Cinemas) ListAll(context.Context) ([]model.Cinema, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append(make([]model.Cinema, 0, len(s.db.cinemas)), s.db.cinemas...), nil
}

type Programmes struct{ db *DB }

// withTour attaches the stored tour, if any.  Callers hold the lock.
func (db *DB) withTour(p model.Programme) model.Programme {
	for _, t := range db.tours {
		if t.ProgrammeID == p.ID {
			p.Tour = &model.ProgrammeTour{ID: t.ID, HostID: t.HostID, HostUsername: db.users[t.HostID].Username}
		}
	}
	return p
}

func (s Programmes) ListUpcoming(context.Context) ([]model.Programme, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.Programme, 0, len(s.db.programmes))
	for _, p := range s.db.programmes {
		out = append(out, s.db.withTour(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartsAt.Equal(out[j].StartsAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartsAt.Before(out[j].StartsAt)
	})
	return out, nil
}

func (s Programmes) GetByID(_ context.Context, id uint64) (model.Programme, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.Programme{}, err
	}
	p, ok := s.db.programmes[id]
	if !ok {
		return model.Programme{}, repository.ErrProgrammeNotFound
	}
	return s.db.withTour(p), nil
}

type Tours struct{ db *DB }

func (s Tours) ListWithProgramme(context.Context) ([]model.Tour, []model.Programme, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}
	tours := make([]model.Tour, 0, len(s.db.tours))
	for _, t := range s.db.tours {
		tours = append(tours, t)
	}
	sort.Slice(tours, func(i, j int) bool {
		a, b := s.db.programmes[tours[i].ProgrammeID], s.db.programmes[tours[j].ProgrammeID]
		if a.StartsAt.Equal(b.StartsAt) {
			return tours[i].ID < tours[j].ID
		}
		return a.StartsAt.Before(b.StartsAt)
	})
	programmes := make([]model.Programme, 0, len(tours))
	for _, t := range tours {
		programmes = append(programmes, s.db.withTour(s.db.programmes[t.ProgrammeID]))
	}
	return tours, programmes, nil
}

func (s Tours) GetByID(_ context.Context, id uint64) (model.Tour, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.Tour{}, err
	}
	t, ok := s.db.tours[id]
	if !ok {
		return model.Tour{}, repository.ErrTourNotFound
	}
	return t, nil
}

func (s Tours) Create(_ context.Context, programmeID, hostID uint64, body string) (model.Tour, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.Tour{}, err
	}
	if _, ok := s.db.programmes[programmeID]; !ok {
		return model.Tour{}, repository.ErrProgrammeNotFound
	}
	host, ok := s.db.users[hostID]
	if !ok {
		return model.Tour{}, repository.ErrProgrammeNotFound
	}
	for _, t := range s.db.tours {
		if t.ProgrammeID == programmeID {
			return model.Tour{}, repository.ErrTourExists
		}
	}
	s.db.nextTourID++
	t := model.Tour{
		ID:           s.db.nextTourID,
		ProgrammeID:  programmeID,
		HostID:       hostID,
		HostUsername: host.Username,
		Body:         body,
		CreatedAt:    time.Now().UTC(),
	}
	s.db.tours[t.ID] = t
	return t, nil
}

func (s Tours) Delete(_ context.Context, id uint64) (model.Tour, error) {
	err := s.db.enter()
	defer s.db.mu.Unlock()
	if err != nil {
		return model.Tour{}, err
	}
	t, ok := s.db.tours[id]
	if !ok {
		return model.Tour{}, repository.ErrTourNotFound
	}
	delete(s.db.tours, id)
	return t, nil
}
