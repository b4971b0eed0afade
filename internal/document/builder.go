package document

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
	"github.com/nguyentranbao-ct/estate-backoffice/pkg/util"
)

// Uploader stores a binary and returns its asset id.
type Uploader interface {
	Upload(ctx context.Context, kind models.AssetKind, asset models.Asset) (string, error)
}

// Draft is a build result together with the asset ids uploaded for it.
type Draft[T any] struct {
	Value    T
	Uploaded []string
}

type Builder struct {
	uploader  Uploader
	minImages int
	newKey    func() string
	now       func() time.Time
}

type Option func(*Builder)

func WithMinImages(n int) Option {
	return func(b *Builder) { b.minImages = n }
}

func WithKeyFunc(fn func() string) Option {
	return func(b *Builder) { b.newKey = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(b *Builder) { b.now = fn }
}

func NewBuilder(uploader Uploader, opts ...Option) *Builder {
	b := &Builder{
		uploader:  uploader,
		minImages: 1,
		newKey:    uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) MinImages() int {
	return b.minImages
}

// uploads collects the asset ids uploaded during one build.
type uploads struct {
	mu  sync.Mutex
	ids []string
}

func (u *uploads) add(id string) {
	u.mu.Lock()
	u.ids = append(u.ids, id)
	u.mu.Unlock()
}

func (u *uploads) list() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.ids...)
}

// pendingAsset is an asset validated before any upload starts. A non-empty
// id means the asset already exists in the store.
type pendingAsset struct {
	kind  models.AssetKind
	id    string
	asset models.Asset
}

// prepareAsset validates a pre-uploaded id or an inline payload. It returns
// nil when neither is given.
func prepareAsset(field string, kind models.AssetKind, assetID string, inline *models.InlineAsset) (*pendingAsset, error) {
	if assetID != "" {
		return &pendingAsset{kind: kind, id: assetID}, nil
	}
	if inline == nil {
		return nil, nil
	}
	asset, err := DecodeInline(kind, inline)
	if err != nil {
		return nil, &models.ValidationError{Field: field, Message: err.Error()}
	}
	return &pendingAsset{kind: kind, asset: asset}, nil
}

// upload stores a pending inline asset and returns its id.
func (b *Builder) upload(ctx context.Context, up *uploads, p *pendingAsset) (string, error) {
	if p.id != "" {
		return p.id, nil
	}
	if b.uploader == nil {
		return "", fmt.Errorf("%w: no asset uploader configured", models.ErrUpload)
	}
	id, err := b.uploader.Upload(ctx, p.kind, p.asset)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", models.ErrUpload, p.asset.Filename, err)
	}
	up.add(id)
	return id, nil
}

func prepareImages(images models.PropertyImages) ([]*pendingAsset, error) {
	out := make([]*pendingAsset, 0, images.Count())
	for i, id := range images.ImageAssetIDs {
		if id == "" {
			return nil, models.InvalidField("imageAssetIds", "entry %d is empty", i)
		}
		out = append(out, &pendingAsset{kind: models.AssetImage, id: id})
	}
	for i := range images.Images {
		p, err := prepareAsset(fmt.Sprintf("images[%d]", i), models.AssetImage, "", &images.Images[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// uploadImages uploads inline images concurrently. Each result lands in the
// slot of its input so submission order is kept; the first failure cancels
// the rest.
func (b *Builder) uploadImages(ctx context.Context, up *uploads, pending []*pendingAsset) ([]string, error) {
	ids := make([]string, len(pending))
	group, gctx := errgroup.WithContext(ctx)
	for i, p := range pending {
		if p.id != "" {
			ids[i] = p.id
			continue
		}
		group.Go(func() error {
			id, err := b.upload(gctx, up, p)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (b *Builder) keyedImages(ids []string) []any {
	return util.ConvertList(ids, func(id string) any {
		return KeyedImage(b.newKey(), id)
	})
}

func (b *Builder) keyedClients(clients models.PropertyClients) ([]any, error) {
	out := make([]any, 0, clients.Count())
	for i, c := range clients.Clients {
		if c.Ref == "" {
			return nil, models.InvalidField("clients", "entry %d has no _ref", i)
		}
		key := c.Key
		if key == "" {
			key = b.newKey()
		}
		out = append(out, KeyedReference(key, c.Ref))
	}
	for i, id := range clients.ClientIDs {
		if id == "" {
			return nil, models.InvalidField("clientIds", "entry %d is empty", i)
		}
		out = append(out, KeyedReference(b.newKey(), id))
	}
	return out, nil
}

type pendingContract struct {
	key   string
	title string
	file  *pendingAsset
}

func (b *Builder) prepareContracts(in []models.ContractInput) ([]pendingContract, error) {
	out := make([]pendingContract, 0, len(in))
	for i, c := range in {
		if c.Title == "" {
			return nil, models.InvalidField("contracts", "entry %d has no title", i)
		}
		ref := ""
		if c.File != nil {
			ref = c.File.Asset.Ref
		}
		file, err := prepareAsset(fmt.Sprintf("contracts[%d].file", i), models.AssetFile, ref, c.Inline())
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, models.InvalidField("contracts", "entry %d has no file", i)
		}
		key := c.Key
		if key == "" {
			key = b.newKey()
		}
		out = append(out, pendingContract{key: key, title: c.Title, file: file})
	}
	return out, nil
}

// uploadContracts uploads inline contract files one after another.
func (b *Builder) uploadContracts(ctx context.Context, up *uploads, in []pendingContract) ([]any, error) {
	out := make([]any, 0, len(in))
	for _, c := range in {
		id, err := b.upload(ctx, up, c.file)
		if err != nil {
			return nil, err
		}
		out = append(out, Contract(c.key, c.title, id))
	}
	return out, nil
}

func requireString(field, v string) error {
	if v == "" {
		return models.MissingField(field)
	}
	return nil
}

func requireNumber(field string, n models.Number) error {
	if !n.Present() || n.Float() == 0 {
		return models.MissingField(field)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func setIfPresent(p *Patch, field, v string) {
	if v != "" {
		p.SetField(field, v)
	}
}

// setOrUnset applies the edit rule for removable fields: a present value is
// set, an absent one removes the field.
func setOrUnset(p *Patch, field string, present bool, value func() any) {
	if present {
		p.SetField(field, value())
		return
	}
	p.UnsetField(field)
}
