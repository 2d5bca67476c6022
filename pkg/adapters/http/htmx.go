package http

import (
	"net/http"

	"github.com/aretw0/hxnotify/pkg/domain"
)

// htmx request and response headers.
const (
	HeaderRequest            = "HX-Request"
	HeaderTarget             = "HX-Target"
	HeaderRetarget           = domain.HeaderRetarget
	HeaderReswap             = "HX-Reswap"
	HeaderTrigger            = "HX-Trigger"
	HeaderTriggerAfterSettle = "HX-Trigger-After-Settle"

	// HeaderOriginalStatus keeps the handler's status when the middleware rewrites it.
	HeaderOriginalStatus = "X-Hxnotify-Status"
	// HeaderRequestID is echoed back so clients can correlate logs with a response.
	HeaderRequestID = "X-Request-Id"
)

// AlertEvent is the trigger a browser listener turns into a native alert.
const AlertEvent = "show-alert"

// IsHTMXRequest reports whether the request was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderRequest) == "true"
}

// targetSelector turns the HX-Target id into a selector.
func targetSelector(r *http.Request) string {
	if id := r.Header.Get(HeaderTarget); id != "" {
		return "#" + id
	}
	return ""
}
