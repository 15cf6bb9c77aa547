package httpkit

import (
	"net/http"
	"strings"
)

// MountUnder routes prefix with mw applied then lets mount register endpoints
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount ...func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		for _, fn := range mount {
			if fn != nil {
				fn(sub)
			}
		}
	})
}

// MountAPI mounts under /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(opts), func(api httpkit.Router) {
//		disputes.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
