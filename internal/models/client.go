package models

// ContractInput is one contract entry. The file is either an existing asset
// reference or an inline data URL uploaded before the commit.
type ContractInput struct {
	Key        string   `json:"_key"`
	Title      string   `json:"title" validate:"required"`
	File       *FileRef `json:"file"`
	FileBase64 string   `json:"fileBase64"`
	FileName   string   `json:"fileName"`
	FileType   string   `json:"fileType"`
}

func (c ContractInput) Inline() *InlineAsset {
	if c.FileBase64 == "" {
		return nil
	}
	return &InlineAsset{Data: c.FileBase64, Name: c.FileName, ContentType: c.FileType}
}

type CreateClientRequest struct {
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Address   string          `json:"address" validate:"required"`
	Contact   Number          `json:"contact"`
	AgentID   string          `json:"agentId"`
	Contracts []ContractInput `json:"contracts" validate:"omitempty,dive"`
	ImageFields
}

type EditClientRequest struct {
	ClientID  string          `json:"clientId" validate:"required"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email" validate:"omitempty,email"`
	Address   string          `json:"address"`
	Contact   Number          `json:"contact"`
	AgentID   string          `json:"agentId"`
	Contracts []ContractInput `json:"contracts" validate:"omitempty,dive"`
	ImageFields
}

type DeleteClientRequest struct {
	ClientID string `json:"clientId" validate:"required"`
}
