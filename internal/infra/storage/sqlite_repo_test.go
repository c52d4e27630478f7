package storage

import (
	"context"
	"testing"
	"time"

	"github.com/MRamiBalles/sdop/internal/events"
)

func newRepo(t *testing.T) *SQLiteEventRepository {
	t.Helper()
	db, err := InitSQLite(":memory:")
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteEventRepository(db)
}

func journal(t *testing.T, repo *SQLiteEventRepository, gameID string) {
	t.Helper()
	evs := []events.GameEvent{
		{ID: "1", Timestamp: t0, Type: events.EventTypePetBorn, ActorID: "a",
			Payload: map[string]string{"name": "Bean", "species": "Blob"}},
		{ID: "2", Timestamp: t0.Add(time.Hour), Type: events.EventTypeSceneChanged, ActorID: "a",
			Payload: map[string]string{"scene": "FoodSelect"}},
		{ID: "3", Timestamp: t0.Add(time.Hour), Type: events.EventTypeFed, ActorID: "a",
			Payload: map[string]string{"food": "Bread"}},
		{ID: "4", Timestamp: t0.Add(2 * time.Hour), Type: events.EventTypePoopSpawned, ActorID: "a",
			Payload: map[string]int{"count": 1}},
		{ID: "5", Timestamp: t0.Add(3 * time.Hour), Type: events.EventTypePoopCleared, ActorID: "a",
			Payload: map[string]int{"count": 1}},
	}
	if err := repo.Append(context.Background(), gameID, evs); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestAppendAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	journal(t, repo, "g1")
	journal(t, repo, "g1") // engine ids repeat across sessions
	journal(t, repo, "g2")

	all, err := repo.GetByGameID(ctx, "g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 10 {
		t.Fatalf("expected 10 events, got %d", len(all))
	}
	if all[0].EventType != "PET_BORN" || !all[0].Timestamp.Equal(t0.Time()) {
		t.Errorf("unexpected first event %+v", all[0])
	}
	if all[0].Payload["name"] != "Bean" {
		t.Errorf("payload lost: %+v", all[0].Payload)
	}

	fed, err := repo.GetByEventType(ctx, "g1", "FED")
	if err != nil {
		t.Fatal(err)
	}
	if len(fed) != 2 {
		t.Errorf("expected 2 FED events, got %d", len(fed))
	}

	since, err := repo.GetSince(ctx, "g2", t0.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 2 || since[0].EventType != "POOP_SPAWNED" {
		t.Errorf("unexpected since result %+v", since)
	}
}

func TestAppendNothing(t *testing.T) {
	repo := newRepo(t)
	if err := repo.Append(context.Background(), "g", nil); err != nil {
		t.Fatal(err)
	}
}

func TestGenerateRecap(t *testing.T) {
	repo := newRepo(t)
	journal(t, repo, "g1")
	rec := NewReconstructor(repo)

	recap, err := rec.GenerateRecap(context.Background(), "g1", t0.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(recap.Events) != 3 {
		t.Fatalf("expected scene changes filtered out, got %+v", recap.Events)
	}
	if recap.Events[0].Summary != "Ate Bread." || recap.Events[0].Impact != "POSITIVE" {
		t.Errorf("unexpected recap entry %+v", recap.Events[0])
	}
	if recap.Events[1].Impact != "NEGATIVE" {
		t.Errorf("poop should be negative: %+v", recap.Events[1])
	}
	if recap.Events[2].Summary != "Cleaned up 1 poops." {
		t.Errorf("unexpected summary %q", recap.Events[2].Summary)
	}
	if recap.Counts["FED"] != 1 || recap.Counts["SCENE_CHANGED"] != 0 {
		t.Errorf("unexpected counts %+v", recap.Counts)
	}
}

func TestRecapEmptyJournal(t *testing.T) {
	recap, err := NewReconstructor(newRepo(t)).GenerateRecap(context.Background(), "none", t0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recap.Events) != 0 {
		t.Errorf("expected no events")
	}
}
