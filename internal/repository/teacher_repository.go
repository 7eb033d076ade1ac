package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"portal-webbase/database"
	"portal-webbase/internal/models"
)

type TeacherRepository struct {
	col *mongo.Collection
}

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{col: database.DB.Collection("users")}
}

func (r *TeacherRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id, "role": models.RoleTeacher}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByCredentialUsername locates the teacher holding an assignment whose
// join username matches, case-insensitively.
func (r *TeacherRepository) FindByCredentialUsername(ctx context.Context, username string) (*models.User, error) {
	pattern := "^" + regexp.QuoteMeta(username) + "$"
	var u models.User
	err := r.col.FindOne(ctx, bson.M{
		"role": models.RoleTeacher,
		"class_assignments.class_credentials.username": bson.M{"$regex": pattern, "$options": "i"},
	}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// PushAssignment appends one assignment entry as a unit. Runs inside the
// assignment transaction.
func (r *TeacherRepository) PushAssignment(sc context.Context, teacherID bson.ObjectID, a models.ClassAssignment) error {
	res, err := r.col.UpdateOne(sc,
		bson.M{"_id": teacherID, "role": models.RoleTeacher},
		bson.M{
			"$push": bson.M{"class_assignments": a},
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

// PullAssignment removes the assignment entries for classID+subject whose
// stored section set covers the given sections. Matching is done in Go as a
// set comparison, so section order in the stored document never matters.
func (r *TeacherRepository) PullAssignment(ctx context.Context, teacherID, classID bson.ObjectID, subject string, match func(storedSections []string) bool) (bool, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": teacherID, "role": models.RoleTeacher}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}

	kept := make([]models.ClassAssignment, 0, len(u.ClassAssignments))
	removed := false
	for _, a := range u.ClassAssignments {
		if a.ClassID == classID && a.Subject == subject && match(a.Sections) {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return false, nil
	}

	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": teacherID},
		bson.M{"$set": bson.M{"class_assignments": kept, "updatedAt": time.Now().UTC()}},
	)
	return true, err
}

// PullAssignmentsByClass drops every assignment referencing the class from
// every teacher. First step of the delete-class cascade.
func (r *TeacherRepository) PullAssignmentsByClass(ctx context.Context, classID bson.ObjectID) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"role": models.RoleTeacher, "class_assignments.class_id": classID},
		bson.M{
			"$pull": bson.M{"class_assignments": bson.M{"class_id": classID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *TeacherRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"role": models.RoleTeacher})
}

// FindUserByEmail looks the user up regardless of role; the users
// collection also holds admins.
func (r *TeacherRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *TeacherRepository) InsertUser(ctx context.Context, u *models.User) error {
	_, err := r.col.InsertOne(ctx, u)
	return err
}
