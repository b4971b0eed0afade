package sanity

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		Dataset:     "test",
		Token:       "tok",
		BaseURL:     srv.URL,
		ReadRetries: 2,
		Timeout:     2 * time.Second,
	})
	require.NoError(t, err)
	c.SetRetryWaitTime(time.Millisecond, 5*time.Millisecond)
	return c
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2023-03-09/data/mutate/test", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("returnDocuments"))
		assert.Equal(t, "sync", r.URL.Query().Get("visibility"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "client", gjson.GetBytes(body, "mutations.0.create._type").String())
		assert.Equal(t, "Ann", gjson.GetBytes(body, "mutations.0.create.first_name").String())

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"transactionId":"tx","results":[{"id":"c1","operation":"create","document":{"_id":"c1","_type":"client","first_name":"Ann"}}]}`)
	})

	doc, err := c.Create(context.Background(), document.Document{"_type": "client", "first_name": "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "c1", doc.ID())
	assert.Equal(t, "Ann", doc["first_name"])
}

func TestPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		patch := gjson.GetBytes(body, "mutations.0.patch")
		assert.Equal(t, "u1", patch.Get("id").String())
		assert.Equal(t, "admin", patch.Get("set.role").String())
		assert.Equal(t, `["agent_id","contact"]`, patch.Get("unset").Raw)

		_, _ = io.WriteString(w, `{"results":[{"id":"u1","operation":"update","document":{"_id":"u1","_type":"user","role":"admin"}}]}`)
	})

	p := document.NewPatch("u1")
	p.SetField("role", "admin")
	p.UnsetField("agent_id")
	p.UnsetField("contact")

	doc, err := c.Patch(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "admin", doc["role"])
	assert.False(t, doc.Has("agent_id"))
}

func TestPatchMissingDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":{"description":"The mutation(s) failed: Document \"p9\" not found","type":"mutationError","items":[{"error":{"id":"p9","type":"documentNotFoundError"},"index":0}]}}`)
	})

	_, err := c.Patch(context.Background(), document.NewPatch("p9"))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "c1", gjson.GetBytes(body, "mutations.0.delete.id").String())
		_, _ = io.WriteString(w, `{"transactionId":"tx","results":[]}`)
	})

	require.NoError(t, c.Delete(context.Background(), "c1"))
}

func TestWritesAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"message":"unavailable"}`)
	})

	_, err := c.Create(context.Background(), document.Document{"_type": "user"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unavailable")
	assert.EqualValues(t, 1, hits.Load())
}

func TestUploadPermissionDenied(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"description":"Insufficient permissions; permission \"create\" required","type":"forbidden"}}`)
	})

	_, err := c.Upload(context.Background(), models.AssetImage, models.Asset{Data: []byte("x"), Filename: "a.png"})
	require.ErrorIs(t, err, models.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "Insufficient permissions")
	assert.EqualValues(t, 1, hits.Load())
}

func TestUploadFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2023-03-09/assets/files/test", r.URL.Path)
		assert.Equal(t, "lease.pdf", r.URL.Query().Get("filename"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "%PDF-1.4", string(body))

		_, _ = io.WriteString(w, `{"document":{"_id":"file-abc-pdf","_type":"sanity.fileAsset"}}`)
	})

	id, err := c.Upload(context.Background(), models.AssetFile, models.Asset{
		Data:        []byte("%PDF-1.4"),
		Filename:    "lease.pdf",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "file-abc-pdf", id)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2023-03-09/data/query/test", r.URL.Path)
		assert.Equal(t, "*[_id == $id][0]", r.URL.Query().Get("query"))
		switch r.URL.Query().Get("$id") {
		case `"p1"`:
			_, _ = io.WriteString(w, `{"result":{"_id":"p1","_type":"property","price":250000}}`)
		default:
			_, _ = io.WriteString(w, `{"result":null}`)
		}
	})

	doc, err := c.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "property", doc.Type())
	assert.EqualValues(t, 250000, doc["price"])

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListRetriesQueries(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "*[_type == $type] | order(created_at desc)", r.URL.Query().Get("query"))
		assert.Equal(t, `"user"`, r.URL.Query().Get("$type"))
		_, _ = io.WriteString(w, `{"result":[{"_id":"u2","_type":"user"},{"_id":"u1","_type":"user"}]}`)
	})

	docs, err := c.List(context.Background(), store.Query{Type: "user", OrderBy: "created_at", Descending: true})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "u2", docs[0].ID())
	assert.EqualValues(t, 2, hits.Load())
}

func TestListQuery(t *testing.T) {
	assert.Equal(t, "*[_type == $type]", listQuery(store.Query{Type: "client"}))
	assert.Equal(t, "*[_type == $type] | order(first_name asc)", listQuery(store.Query{Type: "client", OrderBy: "first_name"}))
}

func TestNewRequiresTarget(t *testing.T) {
	_, err := New(Config{ProjectID: "abc"})
	assert.Error(t, err)

	_, err = New(Config{Dataset: "production"})
	assert.Error(t, err)

	c, err := New(Config{ProjectID: "abc", Dataset: "production", APIVersion: "v2021-10-21"})
	require.NoError(t, err)
	assert.Equal(t, "https://abc.api.sanity.io/v2021-10-21", c.write.BaseURL)
}
