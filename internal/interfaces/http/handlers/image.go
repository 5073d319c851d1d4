package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

// maxImageBytes bounds uploaded captures
const maxImageBytes = 10 << 20

// capturedImage is a decoded capture plus the data URL kept as the stored profile image
type capturedImage struct {
	Raw     []byte
	DataURL string
}

// readImage takes the capture from a base64 field (data URL prefix allowed) or a multipart file
func readImage(c *gin.Context, encoded string) (*capturedImage, error) {
	if strings.TrimSpace(encoded) != "" {
		return decodeImage(encoded)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("%w: image is required", domainerrors.ErrInvalidInput)
	}
	if fh.Size > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domainerrors.ErrInvalidImage, maxImageBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidImage, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidImage, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: image is empty", domainerrors.ErrInvalidInput)
	}
	return &capturedImage{
		Raw:     raw,
		DataURL: "data:" + http.DetectContentType(raw) + ";base64," + base64.StdEncoding.EncodeToString(raw),
	}, nil
}

func decodeImage(encoded string) (*capturedImage, error) {
	encoded = strings.TrimSpace(encoded)
	payload := encoded
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return nil, fmt.Errorf("%w: malformed data url", domainerrors.ErrInvalidImage)
		}
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some capture clients drop the padding
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: image is not valid base64", domainerrors.ErrInvalidImage)
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: image is empty", domainerrors.ErrInvalidInput)
	}
	if len(raw) > maxImageBytes {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", domainerrors.ErrInvalidImage, maxImageBytes)
	}
	return &capturedImage{Raw: raw, DataURL: encoded}, nil
}
