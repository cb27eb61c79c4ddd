package spond

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spond-community/spond-go/models"
)

const eventsResponse = `[
	{"id": "e1", "heading": "Practice", "maxAccepted": 5},
	{"id": "e2", "heading": "Match"}
]`

func newEventsServer(t *testing.T, eventCalls *int, lastQuery *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
		case "/sponds/":
			*eventCalls++
			if lastQuery != nil {
				*lastQuery = r.URL.Query()
			}
			assert.Equal(t, "Bearer mocked-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(eventsResponse))
		default:
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
	}))
}

func TestEventsDefaultQuery(t *testing.T) {
	var eventCalls int
	var query url.Values
	server := newEventsServer(t, &eventCalls, &query)
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	events, err := client.Events(context.Background(), EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "asc", query.Get("order"))
	assert.Equal(t, "100", query.Get("max"))
	assert.Equal(t, "false", query.Get("scheduled"))

	// Omitted filters stay out of the query string entirely.
	for _, absent := range []string{
		"minStartTimestamp", "maxStartTimestamp",
		"minEndTimestamp", "maxEndTimestamp",
		"groupId", "subgroupId",
	} {
		assert.False(t, query.Has(absent), "unexpected query param %s", absent)
	}
}

func TestEventsFilteredQuery(t *testing.T) {
	var eventCalls int
	var query url.Values
	server := newEventsServer(t, &eventCalls, &query)
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	minStart := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	maxEnd := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := client.Events(context.Background(), EventFilter{
		GroupID:          "g1",
		SubgroupID:       "sg1",
		IncludeScheduled: true,
		MinStart:         &minStart,
		MaxEnd:           &maxEnd,
		MaxEvents:        25,
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T12:00:00.000Z", query.Get("minStartTimestamp"))
	assert.Equal(t, "2024-06-01T00:00:00.000Z", query.Get("maxEndTimestamp"))
	assert.Equal(t, "g1", query.Get("groupId"))
	assert.Equal(t, "sg1", query.Get("subgroupId"))
	assert.Equal(t, "25", query.Get("max"))
	assert.Equal(t, "true", query.Get("scheduled"))
	assert.Equal(t, "asc", query.Get("order"))
	assert.False(t, query.Has("minEndTimestamp"))
	assert.False(t, query.Has("maxStartTimestamp"))
}

func TestEvent(t *testing.T) {
	var eventCalls int
	server := newEventsServer(t, &eventCalls, nil)
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	event, err := client.Event(context.Background(), "e2")
	require.NoError(t, err)
	assert.Equal(t, "Match", event.Heading)
	assert.Equal(t, 1, eventCalls)

	// Cache hit on the second lookup.
	_, err = client.Event(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, eventCalls)

	_, err = client.Event(context.Background(), "eX")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "eX")
}

func TestUpdateEventMerge(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/login":
			_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
		case r.URL.Path == "/sponds/" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": "e1", "heading": "Old", "maxAccepted": 5, "invites": ["i1", "i2"]}]`))
		case r.URL.Path == "/sponds/e1" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &payload))
			_, _ = w.Write([]byte(`{"id": "e1", "heading": "New", "maxAccepted": 5}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	heading := "New"
	events, err := client.UpdateEvent(context.Background(), "e1", models.EventUpdate{Heading: &heading})
	require.NoError(t, err)

	// Update wins over the cached value.
	assert.Equal(t, "New", payload["heading"])
	// Cached value wins when the update leaves a field alone.
	assert.Equal(t, float64(5), payload["maxAccepted"])
	// Template defaults fill fields neither source supplies.
	assert.Equal(t, "INVITEES", payload["visibility"])
	assert.Equal(t, "EVENT", payload["spondType"])
	// Server fields outside the template ride along.
	assert.Equal(t, []any{"i1", "i2"}, payload["invites"])

	// The event cache now holds the update response.
	require.Len(t, events, 1)
	assert.Equal(t, "New", events[0].Heading)
}

func TestEventAttendanceXlsx(t *testing.T) {
	binary := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x01}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
			return
		}
		assert.Equal(t, "/sponds/e1/export", r.URL.Path)
		_, _ = w.Write(binary)
	}))
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	data, err := client.EventAttendanceXlsx(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, binary, data)
}

func TestChangeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			_, _ = w.Write([]byte(`{"loginToken": "mocked-token"}`))
			return
		}
		assert.Equal(t, "/sponds/e1/responses/u1", r.URL.Path)
		assert.Equal(t, http.MethodPut, r.Method)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"accepted": true}`, string(body))
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient("user@example.com", "hunter2", WithAPIURL(server.URL+"/"))

	raw, err := client.ChangeResponse(context.Background(), "e1", "u1",
		json.RawMessage(`{"accepted": true}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))
}
