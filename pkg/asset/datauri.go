package asset

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"strings"
)

// DataURILoader decodes images embedded as RFC 2397 data URIs,
// e.g. "data:image/png;base64,iVBORw0...".
type DataURILoader struct {
	maxBytes int64
}

// NewDataURILoader creates a data URI loader. maxBytes <= 0 means DefaultMaxBytes.
func NewDataURILoader(maxBytes int64) *DataURILoader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &DataURILoader{maxBytes: maxBytes}
}

func (d *DataURILoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	header, payload, ok := strings.Cut(ref, ",")
	if !ok || !strings.HasPrefix(strings.ToLower(header), "data:") {
		return nil, ErrInvalidDataURI
	}

	var data []byte
	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
		data = []byte(unescaped)
	}

	return Decode(bytes.NewReader(data), d.maxBytes)
}
