package repository

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

type SectionRepository struct {
	col *mongo.Collection
}

func NewSectionRepository() *SectionRepository {
	return &SectionRepository{col: database.DB.Collection("class_sections")}
}

// FindAssignedSections returns the section codes among sections that
// already carry a teacher for this class+subject. Used as the duplicate
// pre-check before a new assignment is written.
func (r *SectionRepository) FindAssignedSections(ctx context.Context, classID bson.ObjectID, subject string, sections []string) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"class_id":         classID,
		"subject":          subject,
		"section":          bson.M{"$in": sections},
		"assigned_teacher": bson.M{"$ne": nil},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []models.ClassSection
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	taken := make([]string, 0, len(docs))
	for _, d := range docs {
		taken = append(taken, d.Section)
	}
	return taken, nil
}

// UpsertAssignment claims the (class, section, subject) section for a
// teacher, creating the document when the subject has not been bound yet.
// The filter requires the slot to be unclaimed, so a racing second claim
// falls through to an insert and trips the partial unique index instead of
// overwriting the winner. Runs inside the assignment transaction.
func (r *SectionRepository) UpsertAssignment(sc context.Context, class *models.Class, section, subject string, teacherID bson.ObjectID, room string, now time.Time) error {
	filter := bson.M{
		"class_id":         class.ID,
		"section":          section,
		"subject":          subject,
		"assigned_teacher": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"assigned_teacher": teacherID,
			"assigned_at":      now,
			"program":          class.Program,
			"semester":         strconv.Itoa(class.Semester),
			"room":             room,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"class_id":          class.ID,
			"section":           section,
			"subject":           subject,
			"students":          []bson.ObjectID{},
			"enrolled_students": 0,
			"createdAt":         now,
		},
	}
	_, err := r.col.UpdateOne(sc, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

// InsertSection creates an unbound section document (no subject yet).
// Runs inside the class-creation transaction.
func (r *SectionRepository) InsertSection(sc context.Context, section *models.ClassSection) error {
	_, err := r.col.InsertOne(sc, section)
	return err
}

// FindEnrollable resolves the section a student may enroll into.
func (r *SectionRepository) FindEnrollable(ctx context.Context, classID bson.ObjectID, program, semester, section, subject string) (*models.ClassSection, error) {
	var s models.ClassSection
	err := r.col.FindOne(ctx, bson.M{
		"class_id": classID,
		"program":  program,
		"semester": semester,
		"section":  section,
		"subject":  subject,
	}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.ClassSection, error) {
	var s models.ClassSection
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) FindByClass(ctx context.Context, classID bson.ObjectID) ([]models.ClassSection, error) {
	cur, err := r.col.Find(ctx, bson.M{"class_id": classID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sections []models.ClassSection
	if err := cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *SectionRepository) FindAll(ctx context.Context) ([]models.ClassSection, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sections []models.ClassSection
	if err := cur.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// AddStudent pushes the student reference and bumps the denormalized
// counter as one update. Runs inside the enrollment transaction.
func (r *SectionRepository) AddStudent(sc context.Context, sectionID, studentID bson.ObjectID) error {
	res, err := r.col.UpdateOne(sc,
		bson.M{"_id": sectionID},
		bson.M{
			"$push": bson.M{"students": studentID},
			"$inc":  bson.M{"enrolled_students": 1},
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

// ClearAssignment resets teacher, roster and counter on the matching
// section. Part of the unassign cascade (not transactional).
func (r *SectionRepository) ClearAssignment(ctx context.Context, classID bson.ObjectID, section, subject string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"class_id": classID, "section": section, "subject": subject},
		bson.M{"$set": bson.M{
			"assigned_teacher":  nil,
			"assigned_at":       nil,
			"students":          []bson.ObjectID{},
			"enrolled_students": 0,
			"updatedAt":         time.Now().UTC(),
		}},
	)
	return err
}

func (r *SectionRepository) DeleteByClass(ctx context.Context, classID bson.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"class_id": classID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SectionRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// RecountStudents recomputes enrolled_students from the students array for
// every section. The $size pipeline form makes the repair idempotent.
func (r *SectionRepository) RecountStudents(ctx context.Context) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{}, mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "enrolled_students", Value: bson.D{
				{Key: "$size", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$students", bson.A{}}}}},
			}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
