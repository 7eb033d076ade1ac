package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the write paths depend on. The
// partial unique index on class_sections only covers assigned sections,
// unbound ones keep subject null and may repeat per class.
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	_, err := db.Collection("classes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "class_name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_class_name"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("class_sections").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "class_id", Value: 1},
			{Key: "section", Value: 1},
			{Key: "subject", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetName("uniq_class_section_subject").
			SetPartialFilterExpression(bson.M{"subject": bson.M{"$type": "string"}}),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_email"),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_student_email"),
	})
	if err != nil {
		return err
	}

	// Credential usernames are matched case-insensitively at login, the
	// collation makes the uniqueness check agree with that lookup.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "class_assignments.class_credentials.username", Value: 1}},
		Options: options.Index().
			SetName("idx_credential_username").
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("registration_requests").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_registration_email_status"),
	})
	return err
}
