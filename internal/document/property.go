package document

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func (b *Builder) NewProperty(ctx context.Context, req *models.CreatePropertyRequest) (*Draft[Document], error) {
	if err := firstError(
		requireString("address", req.Address),
		requireNumber("price", req.Price),
		requireNumber("square_footage", req.SquareFootage),
		requireString("built_in", req.BuiltIn),
	); err != nil {
		return nil, err
	}
	if err := b.checkImageCount(req.PropertyImages); err != nil {
		return nil, err
	}

	images, err := prepareImages(req.PropertyImages)
	if err != nil {
		return nil, err
	}
	clients, err := b.keyedClients(req.PropertyClients)
	if err != nil {
		return nil, err
	}

	propertyID := b.now().UnixMilli()
	if req.PropertyID.Present() {
		propertyID = req.PropertyID.Int()
	}

	doc := Document{
		FieldType:        TypeProperty,
		"property_id":    propertyID,
		"address":        req.Address,
		"price":          req.Price.Value(),
		"square_footage": req.SquareFootage.Value(),
		"built_in":       req.BuiltIn,
	}
	if req.AgentID != "" {
		doc["agent"] = Reference(req.AgentID)
	}
	if len(clients) > 0 {
		doc["clients"] = clients
	}

	up := &uploads{}
	ids, err := b.uploadImages(ctx, up, images)
	if err != nil {
		return &Draft[Document]{Uploaded: up.list()}, err
	}
	if len(ids) > 0 {
		doc["property_img"] = b.keyedImages(ids)
	}

	return &Draft[Document]{Value: doc, Uploaded: up.list()}, nil
}

// PropertyPatch builds the edit of a property. agent and clients are removed
// when absent. Images are replaced only when new ones are supplied.
func (b *Builder) PropertyPatch(ctx context.Context, req *models.EditPropertyRequest) (*Draft[*Patch], error) {
	if req.PropertyID == "" {
		return nil, models.MissingField("propertyId")
	}

	var images []*pendingAsset
	if req.PropertyImages.Count() > 0 {
		if err := b.checkImageCount(req.PropertyImages); err != nil {
			return nil, err
		}
		var err error
		images, err = prepareImages(req.PropertyImages)
		if err != nil {
			return nil, err
		}
	}
	clients, err := b.keyedClients(req.PropertyClients)
	if err != nil {
		return nil, err
	}

	p := NewPatch(req.PropertyID)
	setIfPresent(p, "address", req.Address)
	if req.Price.Present() {
		p.SetField("price", req.Price.Value())
	}
	if req.SquareFootage.Present() {
		p.SetField("square_footage", req.SquareFootage.Value())
	}
	setIfPresent(p, "built_in", req.BuiltIn)
	setOrUnset(p, "agent", req.AgentID != "", func() any { return Reference(req.AgentID) })
	setOrUnset(p, "clients", len(clients) > 0, func() any { return clients })

	up := &uploads{}
	if len(images) > 0 {
		ids, err := b.uploadImages(ctx, up, images)
		if err != nil {
			return &Draft[*Patch]{Uploaded: up.list()}, err
		}
		p.SetField("property_img", b.keyedImages(ids))
	}

	return &Draft[*Patch]{Value: p, Uploaded: up.list()}, nil
}

func (b *Builder) checkImageCount(images models.PropertyImages) error {
	if images.Count() < b.minImages {
		return &models.ValidationError{
			Field:   "property_img",
			Message: fmt.Sprintf("minimum %d image(s) required, got %d", b.minImages, images.Count()),
		}
	}
	return nil
}
