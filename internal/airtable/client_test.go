package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("key123", "appBase",
		WithHTTPClient(server.Client()),
		WithBaseURL(server.URL),
		WithRetries(2, time.Millisecond),
	)
}

func TestListRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/appBase/Draft Standings", r.URL.Path)
		assert.Equal(t, "Bearer key123", r.Header.Get("Authorization"))
		assert.Equal(t, "itrA/recB", r.URL.Query().Get("offset"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{
			"records": [
				{"id": "rec1", "fields": {"Name": "Alpha", "DiscordID": "228019100008316948", "Power": 2200.5}}
			],
			"offset": "itrC/recD"
		}`)
	})

	resp, err := client.ListRecords(context.Background(), "Draft Standings", "itrA/recB", nil)

	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "itrC/recD", resp.Offset)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "rec1", resp.Records[0].ID)
	assert.Equal(t, "Alpha", resp.Records[0].Fields["Name"])
	assert.Equal(t, json.Number("2200.5"), resp.Records[0].Fields["Power"])
}

func TestListRecords_QueryParams(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Grid view", q.Get("view"))
		assert.Equal(t, "50", q.Get("pageSize"))
		assert.Equal(t, []string{"Name", "Power"}, q["fields[]"])
		assert.Equal(t, "Power", q.Get("sort[0][field]"))
		assert.Equal(t, "desc", q.Get("sort[0][direction]"))
		assert.Empty(t, q.Get("offset"))
		fmt.Fprintln(w, `{"records": []}`)
	})

	resp, err := client.ListRecords(context.Background(), "Draft Standings", "", &ListParams{
		View:     "Grid view",
		PageSize: 50,
		Fields:   []string{"Name", "Power"},
		Sort:     []SortField{{Field: "Power", Direction: "desc"}},
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Offset)
}

func TestListRecords_StoreError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantType    string
		wantMessage string
	}{
		{"object error", http.StatusUnprocessableEntity, `{"error": {"type": "INVALID_REQUEST", "message": "bad offset"}}`, "INVALID_REQUEST", "bad offset"},
		{"string error", http.StatusNotFound, `{"error": "NOT_FOUND"}`, "NOT_FOUND", ""},
		{"no body", http.StatusForbidden, ``, "HTTP_403", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			resp, err := client.ListRecords(context.Background(), "Map List", "", nil)

			require.NoError(t, err)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Err)
			assert.Equal(t, tt.wantType, resp.Err.Type)
			assert.Equal(t, tt.wantMessage, resp.Err.Message)
		})
	}
}

func TestListRecords_RetriesThrottledRequests(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"type": "RATE_LIMIT_REACHED"}}`)
			return
		}
		fmt.Fprint(w, `{"records": [{"id": "rec1", "fields": {}}]}`)
	})

	resp, err := client.ListRecords(context.Background(), "Map List", "", nil)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, resp.Records, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestListRecords_RetriesExhausted(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error": {"type": "SERVICE_UNAVAILABLE", "message": "try later"}}`)
	})

	resp, err := client.ListRecords(context.Background(), "Map List", "", nil)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Err)
	assert.Equal(t, "try later", resp.Err.Message)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "one attempt plus two retries")
}

func TestListRecords_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient("key", "app", WithBaseURL(server.URL), WithRetries(0, time.Millisecond))

	_, err := client.ListRecords(context.Background(), "Map List", "", nil)

	require.Error(t, err)
}

func TestCreateRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/appBase/Adjustments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body struct {
			Fields   map[string]any `json:"fields"`
			Typecast bool           `json:"typecast"`
		}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.True(t, body.Typecast)
		assert.Equal(t, float64(-5), body.Fields["Points"])

		fmt.Fprint(w, `{"id": "recAdj", "fields": {"Points": -5}, "createdTime": "2026-01-01T00:00:00.000Z"}`)
	})

	resp, err := client.CreateRecord(context.Background(), "Adjustments", Fields{"Points": -5}, true)

	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "recAdj", resp.Record.ID)
	assert.Equal(t, "2026-01-01T00:00:00.000Z", resp.Record.CreatedTime)
}

func TestUpdateRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/appBase/Draft Standings/rec42", r.URL.Path)
		fmt.Fprint(w, `{"id": "rec42", "fields": {"Role": "Captain"}}`)
	})

	resp, err := client.UpdateRecord(context.Background(), "Draft Standings", "rec42", Fields{"Role": "Captain"}, false)

	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "Captain", resp.Record.Fields["Role"])
}

func TestUpdateRecord_StoreError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"type": "MODEL_ID_NOT_FOUND", "message": "Could not find a record with ID rec42."}}`)
	})

	resp, err := client.UpdateRecord(context.Background(), "Draft Standings", "rec42", Fields{"Role": "Captain"}, false)

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "MODEL_ID_NOT_FOUND: Could not find a record with ID rec42.", resp.Err.Error())
}
