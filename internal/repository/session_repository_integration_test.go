package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

// Needs a running MongoDB; set MONGO_TEST_URI to enable, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 go test ./internal/repository/...
func connectTestDB(t *testing.T) {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	database.Client = client
	database.DB = client.Database("portal_test")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.DB.Drop(ctx); err != nil {
		t.Fatalf("drop test db: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
}

func TestClaimActiveSingleWinner(t *testing.T) {
	connectTestDB(t)
	repo := NewSessionRepository()
	ctx := context.Background()

	first := bson.NewObjectID()
	second := bson.NewObjectID()

	ok, err := repo.ClaimActive(ctx, first)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !ok {
		t.Fatal("first claim should win")
	}

	ok, err = repo.ClaimActive(ctx, second)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if ok {
		t.Fatal("second claim should lose while the pointer is held")
	}

	p, err := repo.ActivePointer(ctx)
	if err != nil {
		t.Fatalf("pointer: %v", err)
	}
	if p == nil || p.SessionID != first {
		t.Fatalf("pointer should still reference the first session, got %+v", p)
	}

	// Releasing with the wrong session id must be a no-op.
	if err := repo.ReleaseActive(ctx, second); err != nil {
		t.Fatalf("release wrong id: %v", err)
	}
	if p, _ := repo.ActivePointer(ctx); p == nil {
		t.Fatal("pointer released by a session that never held it")
	}

	if err := repo.ReleaseActive(ctx, first); err != nil {
		t.Fatalf("release: %v", err)
	}
	if p, _ := repo.ActivePointer(ctx); p != nil {
		t.Fatalf("pointer should be gone, got %+v", p)
	}

	// After release the slot opens up again.
	ok, err = repo.ClaimActive(ctx, second)
	if err != nil || !ok {
		t.Fatalf("reclaim after release: ok=%v err=%v", ok, err)
	}
}

func TestClaimActiveConcurrent(t *testing.T) {
	connectTestDB(t)
	repo := NewSessionRepository()
	ctx := context.Background()

	const racers = 16
	wins := make(chan bool, racers)
	for i := 0; i < racers; i++ {
		go func() {
			ok, err := repo.ClaimActive(ctx, bson.NewObjectID())
			if err != nil {
				t.Errorf("claim: %v", err)
			}
			wins <- ok
		}()
	}

	winners := 0
	for i := 0; i < racers; i++ {
		if <-wins {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
}

func TestPushActivityBoundsAndActiveGuard(t *testing.T) {
	connectTestDB(t)
	repo := NewSessionRepository()
	ctx := context.Background()

	s := &models.Session{
		ID:          bson.NewObjectID(),
		SessionType: "Fall",
		Year:        2025,
		StartDate:   time.Now().UTC(),
		IsActive:    true,
		Activities:  []models.ActivityLogEntry{},
	}
	if err := repo.Insert(ctx, s); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Push past the cap; only the most recent ActivityLimit entries may
	// survive.
	const overflow = 5
	total := models.ActivityLimit + overflow
	for i := 0; i < total; i++ {
		entry := models.ActivityLogEntry{
			Type:        "class_created",
			Description: fmt.Sprintf("entry %d", i),
			Timestamp:   time.Now().UTC(),
		}
		if err := repo.PushActivity(ctx, s.ID, entry); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	stored, err := repo.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored.Activities) != models.ActivityLimit {
		t.Fatalf("log holds %d entries, want %d", len(stored.Activities), models.ActivityLimit)
	}
	if got := stored.Activities[0].Description; got != fmt.Sprintf("entry %d", overflow) {
		t.Fatalf("oldest surviving entry = %q, want %q", got, fmt.Sprintf("entry %d", overflow))
	}
	if got := stored.Activities[len(stored.Activities)-1].Description; got != fmt.Sprintf("entry %d", total-1) {
		t.Fatalf("newest entry = %q, want %q", got, fmt.Sprintf("entry %d", total-1))
	}

	if err := repo.End(ctx, s.ID, nil, time.Now().UTC()); err != nil {
		t.Fatalf("end: %v", err)
	}

	// Ended sessions refuse further log entries.
	entry := models.ActivityLogEntry{Type: "class_created", Description: "late", Timestamp: time.Now().UTC()}
	if err := repo.PushActivity(ctx, s.ID, entry); err != mongo.ErrNoDocuments {
		t.Fatalf("push after end: err = %v, want ErrNoDocuments", err)
	}
}
