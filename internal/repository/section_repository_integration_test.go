package repository

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/bootstrap"
	"portal-webbase/database"
	"portal-webbase/internal/models"
)

func TestUpsertAssignmentClaimIsExclusive(t *testing.T) {
	connectTestDB(t)
	if err := bootstrap.EnsureIndexes(database.DB); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	repo := NewSectionRepository()
	ctx := context.Background()

	class := &models.Class{
		ID:        bson.NewObjectID(),
		Program:   "BSCS",
		ClassName: "BSCS Semester 1",
		Semester:  1,
		Sections:  []string{"A"},
		Subjects:  []string{"Databases"},
	}
	winner := bson.NewObjectID()
	loser := bson.NewObjectID()
	now := time.Now().UTC()

	if err := repo.UpsertAssignment(ctx, class, "A", "Databases", winner, "", now); err != nil {
		t.Fatalf("first claim: %v", err)
	}

	// A second claim for the same slot must not overwrite the winner; the
	// unclaimed-only filter pushes it into an insert that the partial
	// unique index rejects.
	err := repo.UpsertAssignment(ctx, class, "A", "Databases", loser, "", now)
	if !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("second claim: err = %v, want duplicate key", err)
	}

	taken, err := repo.FindAssignedSections(ctx, class.ID, "Databases", []string{"A"})
	if err != nil {
		t.Fatalf("assigned sections: %v", err)
	}
	if len(taken) != 1 || taken[0] != "A" {
		t.Fatalf("assigned sections = %v", taken)
	}

	cur, err := database.DB.Collection("class_sections").Find(ctx, bson.M{"class_id": class.ID, "section": "A", "subject": "Databases"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	var docs []models.ClassSection
	if err := cur.All(ctx, &docs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("slot exists %d times, want 1", len(docs))
	}
	if docs[0].AssignedTeacher == nil || *docs[0].AssignedTeacher != winner {
		t.Fatalf("slot held by %v, want the first claimant", docs[0].AssignedTeacher)
	}

	// After the slot is released it can be claimed again.
	if err := repo.ClearAssignment(ctx, class.ID, "A", "Databases"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := repo.UpsertAssignment(ctx, class, "A", "Databases", loser, "", now); err != nil {
		t.Fatalf("reclaim after release: %v", err)
	}
}
