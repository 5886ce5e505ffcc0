package model

// Page is one page of fellowships as returned by GET /api/fellowships.
type Page struct {
	TotalCount  int          `json:"total_count"`
	Fellowships []Fellowship `json:"fellowships"`
	HasMore     bool         `json:"has_more"`
}

// Result is the acknowledgement body of every mutating endpoint.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Status reports whether the backend has processed data to serve.
type Status struct {
	DataAvailable bool   `json:"data_available"`
	Message       string `json:"message"`
}
