package custom_errors

import "errors"

var (
	// Database.
	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")
	ErrNoUpdateRows  = errors.New("no fields to update")

	// Users and auth.
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotVerified    = errors.New("email not verified")
	ErrOTPInvalid         = errors.New("invalid or expired otp")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Categories and posts.
	ErrCategoryNotFound = errors.New("category not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrPostValidation   = errors.New("post validation failed")
	ErrImageAttach      = errors.New("failed to attach images to post")

	// Likes.
	ErrAlreadyLiked = errors.New("post already liked")
	ErrLikeNotFound = errors.New("like not found")

	// Comments.
	ErrCommentNotFound   = errors.New("comment not found")
	ErrInvalidCommentFor = errors.New("comment_for must be support or deny")

	// Follows.
	ErrSelfFollow     = errors.New("cannot follow self")
	ErrFollowNotFound = errors.New("follow relation not found")

	// Authorization on owned resources.
	ErrForbidden = errors.New("operation not allowed for this user")

	// Cache.
	ErrCacheMiss = errors.New("cache miss")

	// Outbound services (mail delivery, storage).
	ErrExternalServiceError = errors.New("external service error")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
