package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsefeed-backend/internal/custom_errors"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: message, Code: "bad_request"})
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: message, Code: "unauthorized"})
}

// Error maps a service error onto an HTTP status through the sentinel
// set; anything unrecognized is a 500 with a generic body.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "internal server error"

	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrUserNotFound),
		errors.Is(err, custom_errors.ErrCategoryNotFound),
		errors.Is(err, custom_errors.ErrCommentNotFound),
		errors.Is(err, custom_errors.ErrLikeNotFound),
		errors.Is(err, custom_errors.ErrFollowNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, custom_errors.ErrForbidden):
		status, code, message = http.StatusForbidden, "forbidden", err.Error()
	case errors.Is(err, custom_errors.ErrInvalidCredentials),
		errors.Is(err, custom_errors.ErrInvalidToken):
		status, code, message = http.StatusUnauthorized, "unauthorized", err.Error()
	case errors.Is(err, custom_errors.ErrEmailExists),
		errors.Is(err, custom_errors.ErrUsernameTaken),
		errors.Is(err, custom_errors.ErrAlreadyLiked):
		status, code, message = http.StatusConflict, "conflict", err.Error()
	case errors.Is(err, custom_errors.ErrPostValidation),
		errors.Is(err, custom_errors.ErrInvalidCommentFor),
		errors.Is(err, custom_errors.ErrSelfFollow),
		errors.Is(err, custom_errors.ErrOTPInvalid),
		errors.Is(err, custom_errors.ErrUserNotVerified),
		errors.Is(err, custom_errors.ErrUnsupportedMediaType):
		status, code, message = http.StatusBadRequest, "bad_request", err.Error()
	}

	c.AbortWithStatusJSON(status, errorBody{Error: message, Code: code})
}
