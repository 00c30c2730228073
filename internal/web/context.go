package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/anonhelper/internal/core"
	appmw "github.com/JonMunkholm/anonhelper/internal/web/middleware"
)

// withClient attaches the caller's IP and User-Agent for run logging.
// The IP has already been resolved by TrustedRealIP.
func withClient(r *http.Request) context.Context {
	return core.WithClient(r.Context(), core.Client{
		IP:        appmw.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
}
