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

type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{col: database.DB.Collection("registration_requests")}
}

func (r *RegistrationRepository) Insert(ctx context.Context, req *models.RegistrationRequest) error {
	_, err := r.col.InsertOne(ctx, req)
	return err
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RegistrationRepository) FindByEmail(ctx context.Context, email string) (*models.RegistrationRequest, error) {
	var req models.RegistrationRequest
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *RegistrationRepository) FindByStatus(ctx context.Context, status string) ([]models.RegistrationRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reqs []models.RegistrationRequest
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RegistrationRepository) SetStatus(ctx context.Context, id bson.ObjectID, status string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *RegistrationRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
