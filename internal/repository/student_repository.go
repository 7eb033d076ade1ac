package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository() *StudentRepository {
	return &StudentRepository{col: database.DB.Collection("students")}
}

func (r *StudentRepository) Insert(ctx context.Context, s *models.Student) error {
	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *StudentRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Student, error) {
	var s models.Student
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// PushEnrollment appends the enrollment and bumps the denormalized counter
// as one update. Runs inside the enrollment transaction.
func (r *StudentRepository) PushEnrollment(sc context.Context, studentID bson.ObjectID, e models.Enrollment) error {
	res, err := r.col.UpdateOne(sc,
		bson.M{"_id": studentID},
		bson.M{
			"$push": bson.M{"enrollments": e},
			"$inc":  bson.M{"enrollment_count": 1},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PullEnrollments removes every enrollment matching classID+subject+section
// across all students and returns the number of student documents touched,
// not the number of entries pulled. Part of the unassign cascade; counters
// are repaired afterwards by the reconciliation pass.
func (r *StudentRepository) PullEnrollments(ctx context.Context, classID bson.ObjectID, subject, section string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"enrollments": bson.M{"$elemMatch": bson.M{
			"class_id": classID,
			"subject":  subject,
			"section":  section,
		}}},
		bson.M{
			"$pull": bson.M{"enrollments": bson.M{
				"class_id": classID,
				"subject":  subject,
				"section":  section,
			}},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// PullEnrollmentsByClass removes every enrollment referencing the class and
// returns the number of student documents touched. Second step of the
// delete-class cascade.
func (r *StudentRepository) PullEnrollmentsByClass(ctx context.Context, classID bson.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"enrollments.class_id": classID},
		bson.M{
			"$pull": bson.M{"enrollments": bson.M{"class_id": classID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// RecountEnrollments recomputes enrollment_count from the enrollments array
// for every student. Idempotent repair operation.
func (r *StudentRepository) RecountEnrollments(ctx context.Context) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{}, mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "enrollment_count", Value: bson.D{
				{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$enrollments", bson.A{}}}}},
			}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountBy groups students on one field ("program", "semester").
func (r *StudentRepository) CountBy(ctx context.Context, field string) (map[string]int64, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
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

func (r *StudentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []models.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
