package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// DecodeImageBase64 accepts either a raw base64 string or a data URL and
// returns the image bytes plus content type. Meal and avatar uploads come in
// this way.
func DecodeImageBase64(b64 string) ([]byte, string, error) {
	contentType := "image/png"
	if strings.HasPrefix(b64, "data:") {
		parts := strings.SplitN(b64, ",", 2)
		if len(parts) != 2 {
			return nil, "", errors.New("malformed data url")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(meta, ";", 2)[0]
		b64 = parts[1]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", errors.New("content type must be image/*")
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", err
	}
	if len(data) > 5*1024*1024 {
		return nil, "", errors.New("image exceeds 5MB limit")
	}
	return data, contentType, nil
}
