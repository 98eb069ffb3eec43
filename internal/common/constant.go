package common

const (
	// SessionCookieName is the cookie carrying the signed session token.
	SessionCookieName = "session"

	// FlashCookieName is the cookie carrying one-shot messages for the next page.
	FlashCookieName = "flash"

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"

	// PostDateLayout is the display format of a post's publish date.
	PostDateLayout = "January 02, 2006"
)
