package document

import (
	"context"
	"time"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

// NewUser builds a user document. The role defaults to agent; admins never
// carry an agent_id.
func (b *Builder) NewUser(ctx context.Context, req *models.CreateAgentRequest) (*Draft[Document], error) {
	if err := firstError(
		requireString("first_name", req.FirstName),
		requireString("last_name", req.LastName),
		requireString("email", req.Email),
	); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleAgent
	}
	if role != models.RoleAgent && role != models.RoleAdmin {
		return nil, models.InvalidField("role", "must be one of agent, admin")
	}
	if role == models.RoleAdmin && req.AgentID.Present() {
		return nil, models.InvalidField("agent_id", "must be empty when role is admin")
	}

	img, err := prepareAsset("image", models.AssetImage, req.ImageAssetID, req.Inline())
	if err != nil {
		return nil, err
	}

	doc := Document{
		FieldType:    TypeUser,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"role":       string(role),
		"created_at": b.now().UTC().Format(time.RFC3339Nano),
	}
	if req.AgentID.Present() {
		doc["agent_id"] = req.AgentID.Int()
	}
	if req.Contact.Present() {
		doc["contact"] = req.Contact.Int()
	}

	up := &uploads{}
	if img != nil {
		id, err := b.upload(ctx, up, img)
		if err != nil {
			return &Draft[Document]{Uploaded: up.list()}, err
		}
		doc["user_img"] = Image(id)
	}

	return &Draft[Document]{Value: doc, Uploaded: up.list()}, nil
}

// UserPatch builds the edit of a user. Identity fields are set when given;
// contact is removed when absent and agent_id unless role is agent. Without
// a role the stored role is kept. created_at is never touched.
func (b *Builder) UserPatch(ctx context.Context, req *models.EditAgentRequest) (*Draft[*Patch], error) {
	if req.UserID == "" {
		return nil, models.MissingField("userId")
	}
	switch req.Role {
	case models.RoleAgent:
		if !req.AgentID.Present() {
			return nil, models.InvalidField("agent_id", "is required when role is agent")
		}
	case models.RoleAdmin, "":
	default:
		return nil, models.InvalidField("role", "must be one of agent, admin")
	}

	img, err := prepareAsset("image", models.AssetImage, req.ImageAssetID, req.Inline())
	if err != nil {
		return nil, err
	}

	p := NewPatch(req.UserID)
	setIfPresent(p, "first_name", req.FirstName)
	setIfPresent(p, "last_name", req.LastName)
	setIfPresent(p, "email", req.Email)
	setIfPresent(p, "role", string(req.Role))
	setOrUnset(p, "agent_id", req.Role == models.RoleAgent, func() any { return req.AgentID.Int() })
	setOrUnset(p, "contact", req.Contact.Present(), func() any { return req.Contact.Int() })

	up := &uploads{}
	if img != nil {
		id, err := b.upload(ctx, up, img)
		if err != nil {
			return &Draft[*Patch]{Uploaded: up.list()}, err
		}
		p.SetField("user_img", Image(id))
	}

	return &Draft[*Patch]{Value: p, Uploaded: up.list()}, nil
}
