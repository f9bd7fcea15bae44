package model

const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// Check represents an uptime-check definition, exclusively owned by the
// user identified by UserPhone and referenced by that user's checks list.
type Check struct {
	ID             string `json:"id"`
	UserPhone      string `json:"userPhone"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// CreateCheckRequest is used for creating a new check
type CreateCheckRequest struct {
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// UpdateCheckRequest carries a partial update; zero-valued fields are
// treated as absent. At least one optional field must be supplied.
type UpdateCheckRequest struct {
	ID             string `json:"id"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}
