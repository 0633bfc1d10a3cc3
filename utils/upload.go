package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

const MaxProofImageSize = 5 << 20

var ErrInvalidUpload = errors.New("invalid upload")

var proofImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// ProofImage is a validated delivery proof ready for storage.
type ProofImage struct {
	Data        []byte
	ContentType string
	Extension   string
}

// ReadProofImage reads a multipart file and checks its size and real content
// type. The client supplied filename and header are ignored.
func ReadProofImage(h *multipart.FileHeader) (*ProofImage, error) {
	if h == nil || h.Size <= 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidUpload)
	}
	if h.Size > MaxProofImageSize {
		return nil, fmt.Errorf("%w: file larger than 5MB", ErrInvalidUpload)
	}

	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxProofImageSize+1))
	if err != nil {
		return nil, err
	}
	return CheckProofImage(data)
}

func CheckProofImage(data []byte) (*ProofImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidUpload)
	}
	if len(data) > MaxProofImageSize {
		return nil, fmt.Errorf("%w: file larger than 5MB", ErrInvalidUpload)
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), proofImageTypes...) {
		return nil, fmt.Errorf("%w: %s is not an allowed image type", ErrInvalidUpload, mt.String())
	}
	return &ProofImage{Data: data, ContentType: mt.String(), Extension: mt.Extension()}, nil
}
