package httpkit

import "net/http"

// MountUnder scopes mw to prefix and lets mount register routes there
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		if mount != nil {
			mount(sub)
		}
	})
}
