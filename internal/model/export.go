package model

// ExportResponse represents response for POST /session/export
type ExportResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
}
