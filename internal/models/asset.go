package models

// AssetKind selects the media bucket an upload lands in.
type AssetKind string

const (
	AssetImage AssetKind = "image"
	AssetFile  AssetKind = "file"
)

// InlineAsset is a binary sent inside a JSON payload as a data URL
// (data:<mime>;base64,<payload>).
type InlineAsset struct {
	Data        string `json:"data" validate:"required"`
	Name        string `json:"name"`
	ContentType string `json:"type"`
}

// ImageFields are the image inputs shared by agent and client payloads.
// A pre-uploaded asset id takes precedence over inline data.
type ImageFields struct {
	ImageAssetID string `json:"imageAssetId"`
	ImageBase64  string `json:"imageBase64"`
	ImageName    string `json:"imageName"`
	ImageType    string `json:"imageType"`
}

func (f ImageFields) Inline() *InlineAsset {
	if f.ImageBase64 == "" {
		return nil
	}
	return &InlineAsset{Data: f.ImageBase64, Name: f.ImageName, ContentType: f.ImageType}
}

func (f ImageFields) HasImage() bool {
	return f.ImageAssetID != "" || f.ImageBase64 != ""
}

type AssetRef struct {
	Ref string `json:"_ref"`
}

type FileRef struct {
	Asset AssetRef `json:"asset"`
}

// KeyedRef is one entry of a reference array; Key is kept across edits.
type KeyedRef struct {
	Key string `json:"_key"`
	Ref string `json:"_ref" validate:"required"`
}

// Asset is a decoded binary ready for upload.
type Asset struct {
	Data        []byte
	Filename    string
	ContentType string
}
