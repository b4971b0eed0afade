package document

import (
	"context"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func (b *Builder) NewClient(ctx context.Context, req *models.CreateClientRequest) (*Draft[Document], error) {
	if err := firstError(
		requireString("first_name", req.FirstName),
		requireString("last_name", req.LastName),
		requireString("email", req.Email),
		requireString("address", req.Address),
	); err != nil {
		return nil, err
	}

	img, err := prepareAsset("image", models.AssetImage, req.ImageAssetID, req.Inline())
	if err != nil {
		return nil, err
	}
	contracts, err := b.prepareContracts(req.Contracts)
	if err != nil {
		return nil, err
	}

	doc := Document{
		FieldType:    TypeClient,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"address":    req.Address,
	}
	if req.Contact.Present() {
		doc["contact"] = req.Contact.Int()
	}
	if req.AgentID != "" {
		doc["agent"] = Reference(req.AgentID)
	}

	up := &uploads{}
	if img != nil {
		id, err := b.upload(ctx, up, img)
		if err != nil {
			return &Draft[Document]{Uploaded: up.list()}, err
		}
		doc["user_img"] = Image(id)
	}
	if len(contracts) > 0 {
		entries, err := b.uploadContracts(ctx, up, contracts)
		if err != nil {
			return &Draft[Document]{Uploaded: up.list()}, err
		}
		doc["contracts"] = entries
	}

	return &Draft[Document]{Value: doc, Uploaded: up.list()}, nil
}

// ClientPatch builds the edit of a client. contact, agent and contracts are
// removed when absent; contracts are replaced as a whole.
func (b *Builder) ClientPatch(ctx context.Context, req *models.EditClientRequest) (*Draft[*Patch], error) {
	if req.ClientID == "" {
		return nil, models.MissingField("clientId")
	}

	img, err := prepareAsset("image", models.AssetImage, req.ImageAssetID, req.Inline())
	if err != nil {
		return nil, err
	}
	contracts, err := b.prepareContracts(req.Contracts)
	if err != nil {
		return nil, err
	}

	p := NewPatch(req.ClientID)
	setIfPresent(p, "first_name", req.FirstName)
	setIfPresent(p, "last_name", req.LastName)
	setIfPresent(p, "email", req.Email)
	setIfPresent(p, "address", req.Address)
	setOrUnset(p, "contact", req.Contact.Present(), func() any { return req.Contact.Int() })
	setOrUnset(p, "agent", req.AgentID != "", func() any { return Reference(req.AgentID) })

	up := &uploads{}
	if img != nil {
		id, err := b.upload(ctx, up, img)
		if err != nil {
			return &Draft[*Patch]{Uploaded: up.list()}, err
		}
		p.SetField("user_img", Image(id))
	}
	if len(contracts) > 0 {
		entries, err := b.uploadContracts(ctx, up, contracts)
		if err != nil {
			return &Draft[*Patch]{Uploaded: up.list()}, err
		}
		p.SetField("contracts", entries)
	} else {
		p.UnsetField("contracts")
	}

	return &Draft[*Patch]{Value: p, Uploaded: up.list()}, nil
}
