package spond

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spond-community/spond-go/models"
)

// isoTimestamp is the wire format for date filters, UTC with
// millisecond precision.
const isoTimestamp = "2006-01-02T15:04:05.000Z07:00"

// EventFilter narrows an Events call. Zero-valued fields are left out
// of the query entirely; MaxEvents defaults to 100.
type EventFilter struct {
	GroupID          string
	SubgroupID       string
	IncludeScheduled bool
	MaxEnd           *time.Time
	MinEnd           *time.Time
	MaxStart         *time.Time
	MinStart         *time.Time
	MaxEvents        int
}

func (f EventFilter) query() url.Values {
	maxEvents := f.MaxEvents
	if maxEvents == 0 {
		maxEvents = 100
	}

	params := url.Values{}
	params.Set("order", "asc")
	params.Set("max", strconv.Itoa(maxEvents))
	params.Set("scheduled", strconv.FormatBool(f.IncludeScheduled))

	if f.MaxEnd != nil {
		params.Set("maxEndTimestamp", f.MaxEnd.UTC().Format(isoTimestamp))
	}
	if f.MaxStart != nil {
		params.Set("maxStartTimestamp", f.MaxStart.UTC().Format(isoTimestamp))
	}
	if f.MinEnd != nil {
		params.Set("minEndTimestamp", f.MinEnd.UTC().Format(isoTimestamp))
	}
	if f.MinStart != nil {
		params.Set("minStartTimestamp", f.MinStart.UTC().Format(isoTimestamp))
	}
	if f.GroupID != "" {
		params.Set("groupId", f.GroupID)
	}
	if f.SubgroupID != "" {
		params.Set("subgroupId", f.SubgroupID)
	}
	return params
}

// Events fetches events matching the filter and replaces the event
// cache wholesale with the result.
func (c *Client) Events(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}

	requestURL := c.apiURL + "sponds/?" + filter.query().Encode()
	respBody, err := c.do(ctx, http.MethodGet, requestURL, c.AuthHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	if err := json.Unmarshal(respBody, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events response: %w", err)
	}
	if events == nil {
		events = []models.Event{}
	}

	c.events = events
	return c.events, nil
}

// Event returns the cached event with the given id, fetching the event
// list first if the cache is empty.
func (c *Client) Event(ctx context.Context, uid string) (*models.Event, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureEvents(ctx); err != nil {
		return nil, err
	}

	for i := range c.events {
		if c.events[i].ID == uid {
			return &c.events[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "event", Key: uid}
}

// UpdateEvent posts a full event payload assembled from a fixed field
// template, the first cached event, and the caller's updates. For each
// template field the cached value wins when present and not
// overridden, then the update value, then the template default.
//
// The cached side reads the event at index 0 of the cache, not the
// event identified by uid. That mirrors the service client this was
// ported from; treat it as a correctness risk when the cache holds
// more than one event.
func (c *Client) UpdateEvent(ctx context.Context, uid string, updates models.EventUpdate) ([]models.Event, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureEvents(ctx); err != nil {
		return nil, err
	}

	var cached map[string]any
	if len(c.events) > 0 {
		m, err := c.events[0].AsMap()
		if err != nil {
			return nil, fmt.Errorf("failed to encode cached event: %w", err)
		}
		cached = m
	}

	supplied, err := updates.AsMap()
	if err != nil {
		return nil, fmt.Errorf("failed to encode event updates: %w", err)
	}

	payload := eventTemplate()
	for key := range payload {
		if truthy(cached[key]) && !truthy(supplied[key]) {
			payload[key] = cached[key]
		} else if truthy(supplied[key]) {
			payload[key] = supplied[key]
		}
	}
	// Carry through server fields outside the template so an update
	// does not silently drop them.
	for key, value := range cached {
		if _, ok := payload[key]; !ok {
			payload[key] = value
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, c.apiURL+"sponds/"+uid, c.AuthHeaders(), body)
	if err != nil {
		return nil, err
	}

	var updated models.Event
	if err := json.Unmarshal(respBody, &updated); err != nil {
		return nil, fmt.Errorf("failed to decode update response: %w", err)
	}

	c.events = []models.Event{updated}
	return c.events, nil
}

// EventAttendanceXlsx downloads the attendance export for an event as
// a raw spreadsheet payload. The bytes are returned unparsed; what to
// do with them is the caller's concern.
func (c *Client) EventAttendanceXlsx(ctx context.Context, uid string) ([]byte, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, c.apiURL+"sponds/"+uid+"/export", c.AuthHeaders(), nil)
}

// ChangeResponse sets a user's response to an event. The payload is
// passed through to the service untouched.
func (c *Client) ChangeResponse(ctx context.Context, uid, user string, payload json.RawMessage) (json.RawMessage, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, c.apiURL+"sponds/"+uid+"/responses/"+user, c.AuthHeaders(), payload)
}

func (c *Client) ensureEvents(ctx context.Context) error {
	if len(c.events) > 0 {
		return nil
	}
	_, err := c.Events(ctx, EventFilter{})
	return err
}

// eventTemplate is the full field set the update endpoint expects,
// with its fixed defaults.
func eventTemplate() map[string]any {
	return map[string]any{
		"heading":          nil,
		"description":      nil,
		"spondType":        "EVENT",
		"startTimestamp":   nil,
		"endTimestamp":     nil,
		"commentsDisabled": false,
		"maxAccepted":      0,
		"rsvpDate":         nil,
		"location": map[string]any{
			"id":        nil,
			"feature":   nil,
			"address":   nil,
			"latitude":  nil,
			"longitude": nil,
		},
		"owners":             []any{map[string]any{"id": nil}},
		"visibility":         "INVITEES",
		"participantsHidden": false,
		"autoReminderType":   "DISABLED",
		"autoAccept":         false,
		"payment":            map[string]any{},
		"attachments":        []any{},
		"id":                 nil,
		"tasks": map[string]any{
			"openTasks": []any{},
			"assignedTasks": []any{map[string]any{
				"name":        nil,
				"description": "",
				"type":        "ASSIGNED",
				"id":          nil,
				"adultsOnly":  true,
				"assignments": map[string]any{
					"memberIds": []any{},
					"profiles":  []any{},
					"remove":    []any{},
				},
			}},
		},
	}
}

// truthy mirrors the merge semantics of the original client: null,
// false, empty strings and zero numbers lose to other sources; objects
// and arrays always count as present.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	default:
		return true
	}
}
