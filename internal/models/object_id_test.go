package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectIDEncodesAsObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": ObjectID(oid.Hex())})
	require.NoError(t, err)

	var decoded struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, oid, decoded.ID)

	var back struct {
		ID ObjectID `bson:"_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, oid.Hex(), back.ID.String())
}

func TestObjectIDFromStringValue(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": "user-1"})
	require.NoError(t, err)

	var back struct {
		ID ObjectID `bson:"_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, ObjectID("user-1"), back.ID)
}

func TestObjectIDValid(t *testing.T) {
	assert.True(t, ObjectID(primitive.NewObjectID().Hex()).Valid())
	assert.False(t, ObjectID("a1b2c3").Valid())
	assert.False(t, ObjectID("").Valid())

	_, err := bson.Marshal(bson.M{"_id": ObjectID("nope")})
	assert.Error(t, err)
}
