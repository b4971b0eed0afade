package models

// PropertyImages lists pre-uploaded asset ids first, then inline images.
// The stored image array keeps that order.
type PropertyImages struct {
	ImageAssetIDs []string      `json:"imageAssetIds"`
	Images        []InlineAsset `json:"images" validate:"omitempty,dive"`
}

func (p PropertyImages) Count() int {
	return len(p.ImageAssetIDs) + len(p.Images)
}

// PropertyClients accepts bare ids (fresh keys) and keyed refs (kept keys).
type PropertyClients struct {
	ClientIDs []string   `json:"clientIds"`
	Clients   []KeyedRef `json:"clients" validate:"omitempty,dive"`
}

func (p PropertyClients) Count() int {
	return len(p.ClientIDs) + len(p.Clients)
}

type CreatePropertyRequest struct {
	PropertyID    Number `json:"property_id"`
	Address       string `json:"address" validate:"required"`
	Price         Number `json:"price"`
	SquareFootage Number `json:"square_footage"`
	BuiltIn       string `json:"built_in" validate:"required,datetime=2006-01-02"`
	AgentID       string `json:"agentId"`
	PropertyImages
	PropertyClients
}

type EditPropertyRequest struct {
	PropertyID    string `json:"propertyId" validate:"required"`
	Address       string `json:"address"`
	Price         Number `json:"price"`
	SquareFootage Number `json:"square_footage"`
	BuiltIn       string `json:"built_in" validate:"omitempty,datetime=2006-01-02"`
	AgentID       string `json:"agentId"`
	PropertyImages
	PropertyClients
}

type DeletePropertyRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}
