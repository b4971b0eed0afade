// Package document holds the write shapes sent to the content store and the
// builder that turns request payloads into them.
package document

const (
	TypeUser     = "user"
	TypeClient   = "client"
	TypeProperty = "property"
)

const (
	FieldID        = "_id"
	FieldType      = "_type"
	FieldRev       = "_rev"
	FieldCreatedAt = "_createdAt"
	FieldUpdatedAt = "_updatedAt"
	FieldKey       = "_key"
	FieldRef       = "_ref"
)

// Document is a content store document: system fields plus entity fields.
type Document map[string]any

func (d Document) ID() string {
	s, _ := d[FieldID].(string)
	return s
}

func (d Document) Type() string {
	s, _ := d[FieldType].(string)
	return s
}

// Has reports whether field is present.
func (d Document) Has(field string) bool {
	_, ok := d[field]
	return ok
}

// Patch is a partial update of one document. A field is never both set and
// unset.
type Patch struct {
	ID    string
	Set   map[string]any
	Unset []string
}

func NewPatch(id string) *Patch {
	return &Patch{ID: id, Set: map[string]any{}}
}

func (p *Patch) SetField(field string, value any) {
	p.Set[field] = value
	for i, f := range p.Unset {
		if f == field {
			p.Unset = append(p.Unset[:i], p.Unset[i+1:]...)
			break
		}
	}
}

func (p *Patch) UnsetField(field string) {
	delete(p.Set, field)
	for _, f := range p.Unset {
		if f == field {
			return
		}
	}
	p.Unset = append(p.Unset, field)
}

func (p *Patch) Empty() bool {
	return len(p.Set) == 0 && len(p.Unset) == 0
}

func Reference(id string) map[string]any {
	return map[string]any{
		FieldType: "reference",
		FieldRef:  id,
	}
}

func KeyedReference(key, id string) map[string]any {
	ref := Reference(id)
	ref[FieldKey] = key
	return ref
}

func Image(assetID string) map[string]any {
	return map[string]any{
		FieldType: "image",
		"asset":   Reference(assetID),
	}
}

func KeyedImage(key, assetID string) map[string]any {
	img := Image(assetID)
	img[FieldKey] = key
	return img
}

func File(assetID string) map[string]any {
	return map[string]any{
		FieldType: "file",
		"asset":   Reference(assetID),
	}
}

func Contract(key, title, fileAssetID string) map[string]any {
	return map[string]any{
		FieldKey:  key,
		FieldType: "contract",
		"title":   title,
		"file":    File(fileAssetID),
	}
}
