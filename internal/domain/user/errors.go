package user

import "foodgram/internal/pkg/apperr"

var (
	ErrUserNotFound        = apperr.NotFound("USER_NOT_FOUND", "user not found")
	ErrEmailTaken          = apperr.Conflict("EMAIL_TAKEN", "a user with this email already exists")
	ErrUsernameTaken       = apperr.Conflict("USERNAME_TAKEN", "a user with this username already exists")
	ErrInvalidCredentials  = apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrWrongPassword       = apperr.Validation("WRONG_PASSWORD", "current password is incorrect")
	ErrCannotSubscribeSelf = apperr.New(apperr.KindSelfReference, "CANNOT_SUBSCRIBE_TO_SELF", "you cannot subscribe to yourself")
	ErrAlreadySubscribed   = apperr.Conflict("ALREADY_SUBSCRIBED", "already subscribed to this author")
	ErrNotSubscribed       = apperr.NotFound("NOT_SUBSCRIBED", "not subscribed to this author")
)
