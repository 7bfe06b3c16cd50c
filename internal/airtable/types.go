package airtable

import (
	"encoding/json"
	"fmt"
)

// Fields is the loosely typed field map of a single record.
type Fields map[string]any

// Record is one row of an Airtable table.
type Record struct {
	ID          string `json:"id"`
	Fields      Fields `json:"fields"`
	CreatedTime string `json:"createdTime,omitempty"`
}

// APIError is the error body Airtable returns next to a non-2xx status.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Type
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// UnmarshalJSON accepts both `"error": "NOT_FOUND"` and
// `"error": {"type": ..., "message": ...}`.
func (e *APIError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Type = s
		return nil
	}
	type plain APIError
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = APIError(p)
	return nil
}

// ListParams are the optional query parameters of a list call.
type ListParams struct {
	View            string
	FilterByFormula string
	PageSize        int
	Fields          []string
	Sort            []SortField
}

type SortField struct {
	Field     string
	Direction string
}

// ListResponse is one page of a table scan.
type ListResponse struct {
	Success bool
	Records []Record
	Offset  string
	Err     *APIError
}

// RecordResponse is the result of a create or update call.
type RecordResponse struct {
	Success bool
	Record  Record
	Err     *APIError
}

type listBody struct {
	Records []Record  `json:"records"`
	Offset  string    `json:"offset,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

type writeBody struct {
	Fields   Fields `json:"fields"`
	Typecast bool   `json:"typecast,omitempty"`
}

type recordBody struct {
	Record
	Error *APIError `json:"error,omitempty"`
}
