package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"os"
	"strings"

	// Packages
	modalica "github.com/mutablelogic/go-modalica"

	// Image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	dataPrefix = "data:"
	filePerm   = 0o644
)

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DecodeBase64 decodes standard or URL base64, padded or not. A data URL
// prefix such as "data:image/png;base64," is removed first.
func DecodeBase64(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, dataPrefix) {
		if i := strings.Index(encoded, ","); i >= 0 {
			encoded = encoded[i+1:]
		}
	}
	encoded = strings.Join(strings.Fields(encoded), "")
	if encoded == "" {
		return nil, modalica.ErrBadParameter.With("empty image")
	}
	for _, encoding := range encodings {
		if data, err := encoding.DecodeString(encoded); err == nil {
			return data, nil
		}
	}
	return nil, modalica.ErrBadParameter.With("image is not base64 encoded")
}

// DecodeImage decodes a base64-encoded image, returning the image and the
// name of its format (png, jpeg, gif, bmp or webp)
func DecodeImage(encoded string) (image.Image, string, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return nil, "", err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", modalica.ErrBadParameter.Withf("decode image: %v", err)
	}
	return img, format, nil
}

// DecodeConfig returns the format and dimensions of a base64-encoded
// image without decoding all of it
func DecodeConfig(encoded string) (image.Config, string, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return image.Config{}, "", err
	}
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", modalica.ErrBadParameter.Withf("decode image: %v", err)
	}
	return config, format, nil
}

// SaveImage writes the decoded bytes of a base64-encoded image to path and
// returns the image format. The data is written only if it decodes as an image.
func SaveImage(encoded, path string) (string, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return "", err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", modalica.ErrBadParameter.Withf("decode image: %v", err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", err
	}
	return format, nil
}
