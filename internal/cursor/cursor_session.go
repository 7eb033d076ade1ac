package cursor

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Cursor keys session pages on (start_date, _id).
type Cursor struct {
	StartedAt int64  `json:"startedAt"`
	ID        string `json:"id"`
}

func EncodeSessionCursor(t time.Time, id bson.ObjectID) string {
	b, _ := json.Marshal(Cursor{
		StartedAt: t.UnixMilli(),
		ID:        id.Hex(),
	})
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeSessionCursor(s string) (time.Time, bson.ObjectID, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return time.Time{}, bson.NilObjectID, err
	}

	var p Cursor
	if err := json.Unmarshal(raw, &p); err != nil {
		return time.Time{}, bson.NilObjectID, err
	}

	oid, err := bson.ObjectIDFromHex(p.ID)
	if err != nil {
		return time.Time{}, bson.NilObjectID, err
	}

	return time.UnixMilli(p.StartedAt).UTC(), oid, nil
}
