package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PagedEnvelope carries one page of results plus the counts a client needs to
// render pagination controls.
type PagedEnvelope struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
