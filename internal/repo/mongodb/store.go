// Package mongodb is the self-hosted content store: documents in one
// collection, binaries in a GridFS bucket.
package mongodb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
)

var _ store.ContentStore = (*Store)(nil)

const (
	collectionDocuments = "documents"

	// mongo "Unauthorized"
	codeUnauthorized = 13
)

type Store struct {
	coll   *mongo.Collection
	bucket *gridfs.Bucket
	now    func() time.Time
}

func NewStore(db *DB, bucketName string) (*Store, error) {
	bucket, err := gridfs.NewBucket(db.Database, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("init gridfs bucket: %w", err)
	}
	return &Store{
		coll:   db.Database.Collection(collectionDocuments),
		bucket: bucket,
		now:    time.Now,
	}, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: document.FieldType, Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create _type index: %w", classify(err))
	}
	return nil
}

func (s *Store) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	ts := s.timestamp()
	entry := bson.M{}
	for k, v := range doc {
		entry[k] = v
	}
	oid := primitive.NewObjectID()
	entry[document.FieldID] = oid
	entry[document.FieldCreatedAt] = ts
	entry[document.FieldUpdatedAt] = ts

	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("insert one: %w", classify(err))
	}
	return toDocument(entry), nil
}

func (s *Store) Patch(ctx context.Context, patch *document.Patch) (document.Document, error) {
	if !models.ObjectID(patch.ID).Valid() {
		return nil, fmt.Errorf("patch %s: %w", patch.ID, models.ErrNotFound)
	}
	opts := options.
		FindOneAndUpdate().
		SetReturnDocument(options.After)

	var updated bson.M
	err := s.coll.FindOneAndUpdate(ctx, idFilter(patch.ID), patchUpdate(patch, s.timestamp()), opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("patch %s: %w", patch.ID, classify(err))
	}
	return toDocument(updated), nil
}

// Delete removes a document by id. Deleting a missing id succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !models.ObjectID(id).Valid() {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("delete %s: %w", id, classify(err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (document.Document, error) {
	if !models.ObjectID(id).Valid() {
		return nil, fmt.Errorf("get %s: %w", id, models.ErrNotFound)
	}
	var found bson.M
	if err := s.coll.FindOne(ctx, idFilter(id)).Decode(&found); err != nil {
		return nil, fmt.Errorf("get %s: %w", id, classify(err))
	}
	return toDocument(found), nil
}

func (s *Store) List(ctx context.Context, q store.Query) ([]document.Document, error) {
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}

	cursor, err := s.coll.Find(ctx, bson.M{document.FieldType: q.Type}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Type, classify(err))
	}
	var found []bson.M
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("cursor all: %w", classify(err))
	}

	docs := make([]document.Document, 0, len(found))
	for _, m := range found {
		docs = append(docs, toDocument(m))
	}
	return docs, nil
}

// Upload stores the binary in GridFS. The asset id is "<kind>-<hex>".
func (s *Store) Upload(ctx context.Context, kind models.AssetKind, asset models.Asset) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{
		"kind":         string(kind),
		"content_type": asset.ContentType,
	})
	oid, err := s.bucket.UploadFromStream(asset.Filename, bytes.NewReader(asset.Data), opts)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", asset.Filename, classify(err))
	}
	return assetID(kind, oid), nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func idFilter(id string) bson.M {
	return bson.M{document.FieldID: models.ObjectID(id)}
}

// patchUpdate turns a patch into a $set/$unset update. _updatedAt is always
// refreshed.
func patchUpdate(p *document.Patch, updatedAt string) bson.M {
	set := bson.M{document.FieldUpdatedAt: updatedAt}
	for k, v := range p.Set {
		set[k] = v
	}
	update := bson.M{"$set": set}
	if len(p.Unset) > 0 {
		unset := bson.M{}
		for _, f := range p.Unset {
			unset[f] = ""
		}
		update["$unset"] = unset
	}
	return update
}

func assetID(kind models.AssetKind, oid primitive.ObjectID) string {
	return fmt.Sprintf("%s-%s", kind, oid.Hex())
}

func classify(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeUnauthorized) {
		return fmt.Errorf("%w: %w", models.ErrPermissionDenied, err)
	}
	return err
}

func toDocument(m bson.M) document.Document {
	doc := make(document.Document, len(m))
	for k, v := range m {
		doc[k] = normalize(v)
	}
	return doc
}

// normalize converts driver types into plain JSON friendly values.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case int32:
		return int64(t)
	}
	return v
}
