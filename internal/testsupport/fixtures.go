package testsupport

import (
	"time"

	"github.com/iliyamo/cinetour/internal/model"
)

// Fixture identities and tokens.
const (
	AliceID    uint64 = 1
	BobID      uint64 = 2
	CarolID    uint64 = 42
	AliceToken        = "alice-token"
	BobToken          = "bob-token"
	CarolToken        = "abc"
)

// Screenings seeded by Seed.  2026-10-15 is a Thursday.
var (
	FirstScreening  = time.Date(2026, time.October, 15, 18, 30, 0, 0, time.UTC)
	SecondScreening = time.Date(2026, time.October, 16, 20, 0, 0, 0, time.UTC)
)

// Seed returns a DB with three users holding one session each, two
// cinemas and two screenings without tours.
func Seed() *DB {
	db := NewDB()
	db.AddUser(model.User{ID: AliceID, Username: "alice", FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com", SelfDescription: "Films at dusk"})
	db.AddUser(model.User{ID: BobID, Username: "bob", FirstName: "Bob", LastName: "Baker", Email: "bob@example.com", SelfDescription: "Subtitles please"})
	db.AddUser(model.User{ID: CarolID, Username: "carol", FirstName: "Carol", LastName: "Chen", Email: "carol@example.com", SelfDescription: "Documentaries"})
	db.AddSession(AliceToken, AliceID)
	db.AddSession(BobToken, BobID)
	db.AddSession(CarolToken, CarolID)

	db.AddCinema(model.Cinema{ID: 1, Name: "Bio Rex", Address: "Lapinlahdenkatu 1"})
	db.AddCinema(model.Cinema{ID: 2, Name: "Kino Regina", Address: "Eerikinkatu 15"})

	db.AddProgramme(model.Programme{
		ID:       10,
		StartsAt: FirstScreening,
		Cinema:   model.ProgrammeCinema{ID: 1, Name: "Bio Rex"},
		Film:     model.ProgrammeFilm{ID: 100, Title: "Stalker", Genre: "Drama", EnglishFriendly: true},
	})
	db.AddProgramme(model.Programme{
		ID:       11,
		StartsAt: SecondScreening,
		Cinema:   model.ProgrammeCinema{ID: 2, Name: "Kino Regina"},
		Film:     model.ProgrammeFilm{ID: 101, Title: "Mirror", Genre: "Drama"},
	})
	return db
}
