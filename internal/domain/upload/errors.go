package upload

import "foodgram/internal/pkg/apperr"

var (
	ErrInvalidImage    = apperr.Validation("INVALID_IMAGE", "image must be a base64 data URI or an uploaded file")
	ErrEmptyImage      = apperr.Validation("EMPTY_IMAGE", "image is empty")
	ErrImageTooLarge   = apperr.Validation("IMAGE_TOO_LARGE", "image exceeds maximum allowed size")
	ErrUnsupportedType = apperr.Validation("UNSUPPORTED_IMAGE_TYPE", "image type is not allowed")
)
