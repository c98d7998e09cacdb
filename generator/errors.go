package generator

import (
	"errors"
	"net/http"
)

// Failure categories for a generation attempt. Every remote failure is
// classified into one of these before it reaches the session
// controller; raw transport errors never propagate past this package.
var (
	// ErrInvalidInput: one of the image URLs is syntactically malformed.
	ErrInvalidInput = errors.New("invalid image URL")

	// ErrAssetNotAccessible: an image URL is not publicly reachable. The
	// generation call is never issued in this case.
	ErrAssetNotAccessible = errors.New("image not publicly accessible")

	// ErrRateLimited: the provider returned 429. Retry later, not now.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQuotaExceeded: the provider returned 402. Fatal for the
	// session; resolving it needs account action, not a retry.
	ErrQuotaExceeded = errors.New("payment required, quota exceeded")

	// ErrGenerator: any other provider failure.
	ErrGenerator = errors.New("generation failed")

	// ErrNoResultProduced: the provider answered but returned no image,
	// typically a content-policy or model failure.
	ErrNoResultProduced = errors.New("no image produced")
)

// HTTPStatus maps a classified generation error to the status the
// try-on boundary reports.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrAssetNotAccessible),
		errors.Is(err, ErrNoResultProduced):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
