package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

type ClassRepository struct {
	col *mongo.Collection
}

func NewClassRepository() *ClassRepository {
	return &ClassRepository{col: database.DB.Collection("classes")}
}

func (r *ClassRepository) Insert(ctx context.Context, class *models.Class) error {
	_, err := r.col.InsertOne(ctx, class)
	return err
}

func (r *ClassRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Class, error) {
	var c models.Class
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) FindByName(ctx context.Context, className string) (*models.Class, error) {
	var c models.Class
	if err := r.col.FindOne(ctx, bson.M{"class_name": className}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) FindAll(ctx context.Context) ([]models.Class, error) {
	opts := options.Find().SetSort(bson.D{{Key: "program", Value: 1}, {Key: "semester", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var classes []models.Class
	if err := cur.All(ctx, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *ClassRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountBySemester groups classes on their semester number.
func (r *ClassRepository) CountBySemester(ctx context.Context) (map[string]int64, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$toString", Value: "$semester"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]int64)
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// DeleteByID returns false when no class document matched, so the cascade
// can report "not found but related data cleaned".
func (r *ClassRepository) DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
