package cursor

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSessionCursorRoundTrip(t *testing.T) {
	started := time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC)
	id := bson.NewObjectID()

	enc := EncodeSessionCursor(started, id)
	gotTime, gotID, err := DecodeSessionCursor(enc)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !gotTime.Equal(started) {
		t.Errorf("time = %v, want %v", gotTime, started)
	}
	if gotID != id {
		t.Errorf("id = %s, want %s", gotID.Hex(), id.Hex())
	}
}

func TestDecodeSessionCursorRejectsGarbage(t *testing.T) {
	for _, in := range []string{"not-base64!!", "aGVsbG8=", ""} {
		if _, _, err := DecodeSessionCursor(in); err == nil {
			t.Errorf("DecodeSessionCursor(%q) accepted invalid input", in)
		}
	}
}
