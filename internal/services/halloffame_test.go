package services

import (
	"testing"
	"time"

	"github.com/Janussr/jsr-casino-backend/internal/models"
)

func TestHallOfFameCountsWins(t *testing.T) {
	db := newTestDB(t)
	games := NewGameService(db)
	hof := NewHallOfFameService(db)
	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")

	// Alice wins twice, Bob once.
	winners := []uint{alice.ID, bob.ID, alice.ID}
	for _, winnerID := range winners {
		game, err := games.StartGame()
		if err != nil {
			t.Fatalf("start game: %v", err)
		}
		if _, err := games.AddScore(game.ID, winnerID, 10); err != nil {
			t.Fatalf("add score: %v", err)
		}
		if _, err := games.EndGame(game.ID); err != nil {
			t.Fatalf("end game: %v", err)
		}
	}

	entries, err := hof.GetHallOfFame()
	if err != nil {
		t.Fatalf("get hall of fame: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != alice.ID || entries[0].Wins != 2 {
		t.Fatalf("expected alice first with 2 wins, got %+v", entries[0])
	}
	if entries[0].PlayerName != "Alice" {
		t.Fatalf("expected resolved player name, got %q", entries[0].PlayerName)
	}
	if entries[1].UserID != bob.ID || entries[1].Wins != 1 {
		t.Fatalf("expected bob second with 1 win, got %+v", entries[1])
	}
}

func TestHallOfFameTieOrdering(t *testing.T) {
	db := newTestDB(t)
	hof := NewHallOfFameService(db)
	alice := createUser(t, db, "alice", "Alice")
	bob := createUser(t, db, "bob", "Bob")

	now := time.Now().UTC()
	rows := []models.HallOfFame{
		{GameID: 1, UserID: bob.ID, WinningScore: 5, WinDate: now},
		{GameID: 2, UserID: alice.ID, WinningScore: 7, WinDate: now},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed hall of fame: %v", err)
		}
	}

	entries, err := hof.GetHallOfFame()
	if err != nil {
		t.Fatalf("get hall of fame: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != alice.ID {
		t.Fatalf("expected tie broken by lowest user id, got %+v", entries[0])
	}
}

func TestHallOfFameEmpty(t *testing.T) {
	db := newTestDB(t)
	hof := NewHallOfFameService(db)

	entries, err := hof.GetHallOfFame()
	if err != nil {
		t.Fatalf("get hall of fame: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}
