package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

func TestCheckProofImage(t *testing.T) {
	img, err := CheckProofImage(pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, ".png", img.Extension)

	img, err = CheckProofImage(jpegHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)

	_, err = CheckProofImage([]byte("just some text"))
	assert.ErrorIs(t, err, ErrInvalidUpload)

	_, err = CheckProofImage(nil)
	assert.ErrorIs(t, err, ErrInvalidUpload)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxProofImageSize)...)
	_, err = CheckProofImage(big)
	assert.ErrorIs(t, err, ErrInvalidUpload)
}
