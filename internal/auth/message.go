package auth

import (
	"errors"
	"strings"

	"github.com/samber/lo"

	"github.com/darkai/darkchat/internal/api"
	pErrors "github.com/darkai/darkchat/internal/errors"
)

// NetworkErrorMessage is shown when the backend could not be reached
const NetworkErrorMessage = "Network error. Try again."

// Message turns an auth failure into the one line shown to the user:
// the server's error or message field, else its raw body, else a network
// error notice.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoUsername) {
		return "Signed in, but the server did not return a username."
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}

	if httpErr, ok := api.AsHTTPError(err); ok {
		return lo.CoalesceOrEmpty(
			strings.TrimSpace(httpErr.Message),
			strings.TrimSpace(httpErr.Body),
			fallbackFor(err),
		)
	}
	return NetworkErrorMessage
}

func fallbackFor(err error) string {
	var e *pErrors.Error
	if pErrors.As(err, &e) && e.Op != "" {
		switch e.Op {
		case opSignIn:
			return "Sign in failed."
		case opSignUp:
			return "Signup failed."
		case opVerify:
			return "OTP verification failed."
		}
	}
	return "Request failed."
}
