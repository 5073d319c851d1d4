package handlers

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainerrors "appraiser-auth.backend/internal/domain/errors"
)

func TestDecodeImage(t *testing.T) {
	raw := []byte("jpeg-bytes")
	enc := base64.StdEncoding.EncodeToString(raw)

	img, err := decodeImage(enc)
	require.NoError(t, err)
	require.Equal(t, raw, img.Raw)
	require.Equal(t, enc, img.DataURL)

	img, err = decodeImage("data:image/jpeg;base64," + enc)
	require.NoError(t, err)
	require.Equal(t, raw, img.Raw)
	require.Equal(t, "data:image/jpeg;base64,"+enc, img.DataURL)

	img, err = decodeImage(base64.RawStdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	require.Equal(t, raw, img.Raw)

	_, err = decodeImage("data:image/jpeg;base64")
	require.ErrorIs(t, err, domainerrors.ErrInvalidImage)

	_, err = decodeImage("%%%not-base64%%%")
	require.ErrorIs(t, err, domainerrors.ErrInvalidImage)
}

func TestReadImage_MultipartAndMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "face.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00})
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/x", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	img, err := readImage(c, "")
	require.NoError(t, err)
	require.Len(t, img.Raw, 5)
	require.Contains(t, img.DataURL, "data:image/jpeg;base64,")

	empty := httptest.NewRequest(http.MethodPost, "/x", nil)
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = empty
	_, err = readImage(c, "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
