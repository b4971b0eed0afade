package document

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/vincent-petithory/dataurl"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

// data URLs without a media type default to this one
const defaultDataURLType = "text/plain"

// DecodeInline turns a data URL payload into an uploadable asset. The
// declared content type wins over the data URL media type, which wins over
// content sniffing. A missing filename is derived from the kind and type.
func DecodeInline(kind models.AssetKind, in *models.InlineAsset) (models.Asset, error) {
	if in == nil || in.Data == "" {
		return models.Asset{}, fmt.Errorf("empty inline %s", kind)
	}
	if !strings.HasPrefix(in.Data, "data:") {
		return models.Asset{}, fmt.Errorf("inline %s is not a data URL", kind)
	}

	du, err := dataurl.DecodeString(in.Data)
	if err != nil {
		return models.Asset{}, fmt.Errorf("decode inline %s: %w", kind, err)
	}
	if len(du.Data) == 0 {
		return models.Asset{}, fmt.Errorf("inline %s has no content", kind)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = du.MediaType.ContentType()
	}
	if contentType == "" || contentType == defaultDataURLType {
		contentType = mimetype.Detect(du.Data).String()
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	name := in.Name
	if name == "" {
		name = defaultFilename(kind, contentType)
	}

	return models.Asset{
		Data:        du.Data,
		Filename:    name,
		ContentType: contentType,
	}, nil
}

func defaultFilename(kind models.AssetKind, contentType string) string {
	ext := ""
	if m := mimetype.Lookup(contentType); m != nil {
		ext = m.Extension()
	}
	return fmt.Sprintf("%s-%s%s", kind, uuid.NewString()[:8], ext)
}
