package models

import "encoding/json"

// ChatSession is the response from the chat login endpoint: a host for
// the chat subsystem plus its own auth token, separate from the main
// bearer token.
type ChatSession struct {
	URL  string `json:"url"`
	Auth string `json:"auth"`
}

// UsageError is the structured value returned when SendMessage is
// called without the parameters it needs. It is a value, not a Go
// error; callers inspect it on the outcome.
type UsageError struct {
	Error string `json:"error"`
}

// SendOutcome is the result of SendMessage. Exactly one of the three
// states is set: Response holds the service reply for a delivered
// message, Usage reports a malformed call, and Unresolved is true when
// the recipient could not be matched to any cached person.
type SendOutcome struct {
	Response   json.RawMessage
	Usage      *UsageError
	Unresolved bool
}
