package response

// HealthResponse is returned by the liveness summary endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// StatusResponse carries a single probe status
type StatusResponse struct {
	Status string `json:"status"`
}

// RootResponse describes the running service
type RootResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Health  string `json:"health"`
}
