package metrics

import (
	"net/http"
	"time"
)

// NewServer 创建只暴露指标路径的 HTTP 服务.
func NewServer(cfg *Config, c Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(c.Path(), c.Handler())
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
