package health

// health check response
type Response struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version,omitempty"`
	IndexReady bool   `json:"index_ready"`
	Documents  int    `json:"documents"`
}

type PingResponse struct {
	Message string `json:"message"`
}
