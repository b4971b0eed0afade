// Package sanity is the content store backed by the Sanity HTTP API.
package sanity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tidwall/gjson"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/document"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/internal/repo/store"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/util"
)

var _ store.ContentStore = (*Client)(nil)

const defaultAPIVersion = "2023-03-09"

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	// BaseURL overrides https://<project>.api.sanity.io
	BaseURL string
	// ReadRetries applies to queries only; writes are never retried.
	ReadRetries int
	Timeout     time.Duration
}

type Client struct {
	read    *resty.Client
	write   *resty.Client
	dataset string
	metrics *prometheus.HistogramVec
}

func New(conf Config) (*Client, error) {
	if conf.Dataset == "" {
		return nil, errors.New("sanity: dataset is required")
	}
	base := strings.TrimRight(conf.BaseURL, "/")
	if base == "" {
		if conf.ProjectID == "" {
			return nil, errors.New("sanity: project id is required")
		}
		base = fmt.Sprintf("https://%s.api.sanity.io", conf.ProjectID)
	}
	version := conf.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	base = fmt.Sprintf("%s/v%s", base, strings.TrimPrefix(version, "v"))

	timeout := conf.Timeout
	if timeout == 0 {
		timeout = util.DefaultRestyOptions.Timeout
	}

	metrics, err := util.GetHistogramVec("content_store_request_duration_seconds", "operation", "status")
	if err != nil {
		return nil, fmt.Errorf("sanity metrics: %w", err)
	}

	newClient := func(retries int) *resty.Client {
		c := util.NewRestyClient(util.RestyOptions{RetryCount: retries, Timeout: timeout}).
			SetBaseURL(base).
			SetHeader("Accept", "application/json")
		if conf.Token != "" {
			c.SetAuthToken(conf.Token)
		}
		return c
	}

	return &Client{
		read:    newClient(conf.ReadRetries),
		write:   newClient(0),
		dataset: conf.Dataset,
		metrics: metrics,
	}, nil
}

// SetRetryWaitTime adjusts the backoff between query retries.
func (c *Client) SetRetryWaitTime(wait, maxWait time.Duration) {
	c.read.SetRetryWaitTime(wait).SetRetryMaxWaitTime(maxWait)
}

func (c *Client) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	return c.mutate(ctx, "create", map[string]any{"create": doc})
}

func (c *Client) Patch(ctx context.Context, patch *document.Patch) (document.Document, error) {
	body := map[string]any{"id": patch.ID}
	if len(patch.Set) > 0 {
		body["set"] = patch.Set
	}
	if len(patch.Unset) > 0 {
		body["unset"] = patch.Unset
	}
	return c.mutate(ctx, "patch", map[string]any{"patch": body})
}

// Delete removes a document by id. Deleting a missing id succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.send("delete", c.mutateRequest(ctx, map[string]any{"delete": map[string]any{"id": id}}),
		http.MethodPost, c.path("data/mutate"))
	return err
}

func (c *Client) Get(ctx context.Context, id string) (document.Document, error) {
	res, err := c.query(ctx, "get", "*[_id == $id][0]", map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if !res.IsObject() {
		return nil, fmt.Errorf("sanity get %s: %w", id, models.ErrNotFound)
	}
	return decodeDocument(res.Raw)
}

func (c *Client) List(ctx context.Context, q store.Query) ([]document.Document, error) {
	res, err := c.query(ctx, "list", listQuery(q), map[string]any{"type": q.Type})
	if err != nil {
		return nil, err
	}
	docs := make([]document.Document, 0, len(res.Array()))
	for _, item := range res.Array() {
		doc, err := decodeDocument(item.Raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Upload stores a binary as an image or file asset and returns the asset
// document id.
func (c *Client) Upload(ctx context.Context, kind models.AssetKind, asset models.Asset) (string, error) {
	endpoint := "assets/images"
	if kind == models.AssetFile {
		endpoint = "assets/files"
	}
	contentType := asset.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req := c.write.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetQueryParam("filename", asset.Filename).
		SetBody(asset.Data)

	resp, err := c.send("upload", req, http.MethodPost, c.path(endpoint))
	if err != nil {
		return "", err
	}
	id := gjson.GetBytes(resp.Body(), "document._id").String()
	if id == "" {
		return "", errors.New("sanity upload: response has no document id")
	}
	return id, nil
}

func (c *Client) path(endpoint string) string {
	return "/" + endpoint + "/" + c.dataset
}

func (c *Client) mutateRequest(ctx context.Context, mutation map[string]any) *resty.Request {
	return c.write.R().
		SetContext(ctx).
		SetQueryParam("returnDocuments", "true").
		SetQueryParam("visibility", "sync").
		SetBody(map[string]any{"mutations": []any{mutation}})
}

func (c *Client) mutate(ctx context.Context, op string, mutation map[string]any) (document.Document, error) {
	resp, err := c.send(op, c.mutateRequest(ctx, mutation), http.MethodPost, c.path("data/mutate"))
	if err != nil {
		return nil, err
	}
	res := gjson.GetBytes(resp.Body(), "results.0.document")
	if !res.IsObject() {
		if op == "patch" {
			return nil, fmt.Errorf("sanity patch: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("sanity %s: response has no document", op)
	}
	return decodeDocument(res.Raw)
}

func (c *Client) query(ctx context.Context, op, groq string, params map[string]any) (gjson.Result, error) {
	req := c.read.R().
		SetContext(ctx).
		SetQueryParam("query", groq)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("sanity %s: encode $%s: %w", op, name, err)
		}
		req.SetQueryParam("$"+name, string(encoded))
	}

	resp, err := c.send(op, req, http.MethodGet, c.path("data/query"))
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.GetBytes(resp.Body(), "result"), nil
}

func (c *Client) send(op string, req *resty.Request, method, path string) (*resty.Response, error) {
	start := time.Now()
	resp, err := req.Execute(method, path)

	status := "error"
	if resp != nil && resp.RawResponse != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	c.metrics.WithLabelValues(op, status).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, fmt.Errorf("sanity %s: %w", op, err)
	}
	if resp.IsError() {
		return nil, responseError(op, resp)
	}
	return resp, nil
}

func responseError(op string, resp *resty.Response) error {
	body := resp.Body()
	desc := describe(body)
	if desc == "" {
		desc = resp.Status()
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("sanity %s: %w: %s", op, models.ErrPermissionDenied, desc)
	case resp.StatusCode() == http.StatusNotFound, documentNotFound(body):
		return fmt.Errorf("sanity %s: %w: %s", op, models.ErrNotFound, desc)
	}
	return fmt.Errorf("sanity %s: status %d: %s", op, resp.StatusCode(), desc)
}

func describe(body []byte) string {
	for _, path := range []string{"error.description", "message", "error"} {
		if res := gjson.GetBytes(body, path); res.Type == gjson.String && res.String() != "" {
			return res.String()
		}
	}
	return ""
}

// documentNotFound reports a mutation rejected because its target is gone.
func documentNotFound(body []byte) bool {
	for _, t := range gjson.GetBytes(body, "error.items.#.error.type").Array() {
		if t.String() == "documentNotFoundError" {
			return true
		}
	}
	return false
}

func listQuery(q store.Query) string {
	groq := "*[_type == $type]"
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		groq += fmt.Sprintf(" | order(%s %s)", q.OrderBy, dir)
	}
	return groq
}

func decodeDocument(raw string) (document.Document, error) {
	var doc document.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
