package index

// response for a successful index reload
type ReloadResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
}
