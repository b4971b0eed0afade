package models

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID is a document id held as its hex string. It encodes to a BSON
// ObjectID so filters built from request ids match stored _id values.
//
//nolint:recvcheck // use pointer receiver to match bson.UnmarshalValue
type ObjectID string

// Valid reports whether the id can be used against the mongodb backend.
// Ids issued by other backends never are.
func (o ObjectID) Valid() bool {
	return primitive.IsValidObjectID(string(o))
}

func (o ObjectID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	p, err := primitive.ObjectIDFromHex(string(o))
	if err != nil {
		return bson.TypeNull, nil, InvalidField("_id", "%q is not an object id", string(o))
	}
	return bson.MarshalValue(p)
}

func (o *ObjectID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeString {
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*o = ObjectID(s)
		return nil
	}
	var p primitive.ObjectID
	if err := bson.UnmarshalValue(t, data, &p); err != nil {
		return err
	}
	*o = ObjectID(p.Hex())
	return nil
}

func (o ObjectID) String() string {
	return string(o)
}
