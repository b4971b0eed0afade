package mongodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func TestPatchUpdate(t *testing.T) {
	p := document.NewPatch("65f000000000000000000001")
	p.SetField("role", "admin")
	p.UnsetField("agent_id")
	p.UnsetField("contact")

	update := patchUpdate(p, "2025-03-09T10:00:00Z")
	assert.Equal(t, bson.M{
		"$set":   bson.M{"role": "admin", "_updatedAt": "2025-03-09T10:00:00Z"},
		"$unset": bson.M{"agent_id": "", "contact": ""},
	}, update)
}

func TestPatchUpdateWithoutUnset(t *testing.T) {
	update := patchUpdate(document.NewPatch("x"), "ts")
	assert.NotContains(t, update, "$unset")
	assert.Equal(t, bson.M{"_updatedAt": "ts"}, update["$set"])
}

func TestClassify(t *testing.T) {
	unauthorized := mongo.CommandError{Code: codeUnauthorized, Name: "Unauthorized", Message: "not authorized on estate"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no documents", err: mongo.ErrNoDocuments, want: models.ErrNotFound},
		{name: "unauthorized", err: unauthorized, want: models.ErrPermissionDenied},
		{name: "wrapped unauthorized", err: fmt.Errorf("insert: %w", unauthorized), want: models.ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tt.err), tt.want)
		})
	}

	other := errors.New("boom")
	assert.Equal(t, other, classify(other))
	assert.NotErrorIs(t, classify(mongo.CommandError{Code: 11000}), models.ErrPermissionDenied)
}

func TestToDocument(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	doc := toDocument(bson.M{
		"_id":     oid,
		"_type":   "property",
		"price":   int32(250000),
		"updated": primitive.NewDateTimeFromTime(at),
		"agent":   bson.M{"_type": "reference", "_ref": "u1"},
		"property_img": bson.A{
			bson.D{{Key: "_key", Value: "k1"}, {Key: "asset", Value: bson.M{"_ref": "image-1"}}},
		},
	})

	assert.Equal(t, oid.Hex(), doc.ID())
	assert.Equal(t, int64(250000), doc["price"])
	assert.Equal(t, "2025-03-09T10:00:00Z", doc["updated"])
	assert.Equal(t, map[string]any{"_type": "reference", "_ref": "u1"}, doc["agent"])
	assert.Equal(t, []any{
		map[string]any{"_key": "k1", "asset": map[string]any{"_ref": "image-1"}},
	}, doc["property_img"])
}

func TestAssetID(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65f0a1b2c3d4e5f601234567")
	require.NoError(t, err)
	assert.Equal(t, "image-65f0a1b2c3d4e5f601234567", assetID(models.AssetImage, oid))
	assert.Equal(t, "file-65f0a1b2c3d4e5f601234567", assetID(models.AssetFile, oid))
}

func TestInvalidIDs(t *testing.T) {
	s := &Store{now: time.Now}

	_, err := s.Get(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.Patch(context.Background(), document.NewPatch("not-an-object-id"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.NoError(t, s.Delete(context.Background(), "not-an-object-id"))
}
