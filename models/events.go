package models

import "encoding/json"

// Location is the location sub-object of an event.
type Location struct {
	ID        *string  `json:"id"`
	Feature   *string  `json:"feature"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Owner identifies an event owner.
type Owner struct {
	ID *string `json:"id"`
}

// Assignments lists who an assigned task is given to.
type Assignments struct {
	MemberIDs []string  `json:"memberIds"`
	Profiles  []Profile `json:"profiles"`
	Remove    []string  `json:"remove"`
}

// AssignedTask is a task assigned to specific members.
type AssignedTask struct {
	Name        *string     `json:"name"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	ID          *string     `json:"id"`
	AdultsOnly  bool        `json:"adultsOnly"`
	Assignments Assignments `json:"assignments"`
}

// Tasks is the task sub-structure of an event.
type Tasks struct {
	OpenTasks     []json.RawMessage `json:"openTasks"`
	AssignedTasks []AssignedTask    `json:"assignedTasks"`
}

// Event represents a Spond event ("spond"). Fields mirror the remote
// schema for everything this client reads or writes; any other fields
// the server sends are preserved in Extra so they survive a round-trip
// through UpdateEvent.
type Event struct {
	ID                 string         `json:"id"`
	Heading            string         `json:"heading"`
	Description        string         `json:"description"`
	SpondType          string         `json:"spondType"`
	StartTimestamp     string         `json:"startTimestamp"`
	EndTimestamp       string         `json:"endTimestamp"`
	CommentsDisabled   bool           `json:"commentsDisabled"`
	MaxAccepted        int            `json:"maxAccepted"`
	RSVPDate           string         `json:"rsvpDate"`
	Location           *Location      `json:"location"`
	Owners             []Owner        `json:"owners"`
	Visibility         string         `json:"visibility"`
	ParticipantsHidden bool           `json:"participantsHidden"`
	AutoReminderType   string         `json:"autoReminderType"`
	AutoAccept         bool           `json:"autoAccept"`
	Payment            map[string]any `json:"payment"`
	Attachments        []any          `json:"attachments"`
	Tasks              *Tasks         `json:"tasks"`

	Extra map[string]json.RawMessage `json:"-"`
}

// eventKnownKeys are the JSON keys bound to Event struct fields; any
// other key in a server payload lands in Extra.
var eventKnownKeys = []string{
	"id", "heading", "description", "spondType", "startTimestamp",
	"endTimestamp", "commentsDisabled", "maxAccepted", "rsvpDate",
	"location", "owners", "visibility", "participantsHidden",
	"autoReminderType", "autoAccept", "payment", "attachments", "tasks",
}

type eventAlias Event

func (e *Event) UnmarshalJSON(data []byte) error {
	var alias eventAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range eventKnownKeys {
		delete(raw, key)
	}
	if len(raw) == 0 {
		raw = nil
	}

	*e = Event(alias)
	e.Extra = raw
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(eventAlias(e))
	if err != nil {
		return nil, err
	}
	if len(e.Extra) == 0 {
		return data, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for key, value := range e.Extra {
		// Struct fields win over stale Extra entries.
		if _, ok := raw[key]; !ok {
			raw[key] = value
		}
	}
	return json.Marshal(raw)
}

// AsMap returns the event as a generic JSON object, Extra included.
func (e Event) AsMap() (map[string]any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventUpdate is a partial update for an event. Only set fields are
// sent; fields left nil keep the cached or default value.
type EventUpdate struct {
	Heading            *string        `json:"heading,omitempty"`
	Description        *string        `json:"description,omitempty"`
	SpondType          *string        `json:"spondType,omitempty"`
	StartTimestamp     *string        `json:"startTimestamp,omitempty"`
	EndTimestamp       *string        `json:"endTimestamp,omitempty"`
	CommentsDisabled   *bool          `json:"commentsDisabled,omitempty"`
	MaxAccepted        *int           `json:"maxAccepted,omitempty"`
	RSVPDate           *string        `json:"rsvpDate,omitempty"`
	Location           *Location      `json:"location,omitempty"`
	Owners             []Owner        `json:"owners,omitempty"`
	Visibility         *string        `json:"visibility,omitempty"`
	ParticipantsHidden *bool          `json:"participantsHidden,omitempty"`
	AutoReminderType   *string        `json:"autoReminderType,omitempty"`
	AutoAccept         *bool          `json:"autoAccept,omitempty"`
	Payment            map[string]any `json:"payment,omitempty"`
	Attachments        []any          `json:"attachments,omitempty"`
	Tasks              *Tasks         `json:"tasks,omitempty"`
}

// AsMap returns only the fields that were set on the update.
func (u EventUpdate) AsMap() (map[string]any, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
