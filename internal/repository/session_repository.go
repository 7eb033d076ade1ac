package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

type SessionRepository struct {
	col     *mongo.Collection
	pointer *mongo.Collection
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		col:     database.DB.Collection("sessions"),
		pointer: database.DB.Collection("session_pointer"),
	}
}

// ClaimActive atomically claims the fixed-id active-session pointer for
// sessionID. Returns false when another session already holds it. Two
// concurrent start() calls race on the _id, never on a find-then-insert.
func (r *SessionRepository) ClaimActive(ctx context.Context, sessionID bson.ObjectID) (bool, error) {
	res, err := r.pointer.UpdateOne(ctx,
		bson.M{"_id": models.ActiveSessionPointerID},
		bson.M{"$setOnInsert": bson.M{
			"session_id": sessionID,
			"claimed_at": time.Now().UTC(),
		}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// ReleaseActive drops the pointer, but only while it still references
// sessionID.
func (r *SessionRepository) ReleaseActive(ctx context.Context, sessionID bson.ObjectID) error {
	_, err := r.pointer.DeleteOne(ctx, bson.M{
		"_id":        models.ActiveSessionPointerID,
		"session_id": sessionID,
	})
	return err
}

func (r *SessionRepository) ActivePointer(ctx context.Context) (*models.ActiveSessionPointer, error) {
	var p models.ActiveSessionPointer
	err := r.pointer.FindOne(ctx, bson.M{"_id": models.ActiveSessionPointerID}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SessionRepository) Insert(ctx context.Context, s *models.Session) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *SessionRepository) Delete(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Session, error) {
	var s models.Session
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindActive resolves the pointer to its session document.
func (r *SessionRepository) FindActive(ctx context.Context) (*models.Session, error) {
	p, err := r.ActivePointer(ctx)
	if err != nil || p == nil {
		return nil, err
	}
	return r.FindByID(ctx, p.SessionID)
}

// PushActivity appends one log entry, keeping only the most recent
// ActivityLimit entries so the document stays bounded.
func (r *SessionRepository) PushActivity(ctx context.Context, sessionID bson.ObjectID, entry models.ActivityLogEntry) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": sessionID, "is_active": true},
		bson.M{"$push": bson.M{"activities": bson.M{
			"$each":  bson.A{entry},
			"$slice": -models.ActivityLimit,
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// End closes the session: flips is_active, stamps end_date and stores the
// closing snapshot. The pointer release happens in the same transaction at
// the service layer.
func (r *SessionRepository) End(sc context.Context, sessionID bson.ObjectID, snapshot *models.SessionSnapshot, endedAt time.Time) error {
	res, err := r.col.UpdateOne(sc,
		bson.M{"_id": sessionID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":    false,
			"end_date":     endedAt,
			"session_data": snapshot,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns sessions newest-first, optionally keyed by a created cursor.
func (r *SessionRepository) List(ctx context.Context, filter bson.M, limit int64) ([]models.Session, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.Session
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
