package client

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
