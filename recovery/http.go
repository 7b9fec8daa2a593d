package recovery

import "net/http"

// HTTPMiddleware 返回 HTTP panic 恢复中间件，panic 时响应 500.
//
//	mux := http.NewServeMux()
//	wrapped := recovery.HTTPMiddleware(recovery.WithLogger(log))(mux)
func HTTPMiddleware(opts ...Option) func(http.Handler) http.Handler {
	o := applyOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					_ = recovered(r.Context(), o, p, captureStack(o.StackSize))
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
