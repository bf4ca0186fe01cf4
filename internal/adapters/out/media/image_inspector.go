// Package media inspects captured images.
package media

import (
	"bytes"
	"fmt"
	"image"

	"workshop/internal/core/domain/services"
	"workshop/internal/pkg/datauri"

	"github.com/disintegration/imaging"
)

var _ services.MediaInspector = ImageInspector{}

// ImageInspector decodes data URIs and bare base64 payloads with imaging.
// Stored references are never fetched.
type ImageInspector struct{}

func NewImageInspector() ImageInspector {
	return ImageInspector{}
}

// CheckImage fails unless the payload decodes to an image.
func (ImageInspector) CheckImage(payload string) error {
	if datauri.IsReference(payload) {
		return nil
	}
	_, err := decodeImage(payload)
	return err
}

// IsBlank treats a canvas as blank when every pixel has the colour and alpha
// of the top-left pixel. Signature pads export an untouched canvas as fully
// transparent or as a flat fill. Stored references count as not blank.
func (ImageInspector) IsBlank(payload string) (bool, error) {
	if datauri.IsReference(payload) {
		return false, nil
	}

	img, err := decodeImage(payload)
	if err != nil {
		return false, err
	}

	canvas := imaging.Clone(img)
	pix := canvas.Pix
	if len(pix) < 4 {
		return true, nil
	}

	background := pix[:4]
	for i := 4; i+4 <= len(pix); i += 4 {
		if !bytes.Equal(pix[i:i+4], background) {
			return false, nil
		}
	}
	return true, nil
}

func decodeImage(payload string) (image.Image, error) {
	data, err := datauri.Decode(payload)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data.Bytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s image: %w", data.MediaType, err)
	}
	return img, nil
}
