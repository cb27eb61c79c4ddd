// Package spond is a client for the Spond group-organization API. It
// covers login and session handling, group and member lookup, event
// retrieval and update, messaging through the chat subsystem, and
// attendance export.
//
// The client keeps the last-fetched groups and events as in-memory
// caches; point lookups read through them and list calls replace them
// wholesale. No retries, rate limiting or cache invalidation are
// performed; failed calls surface immediately to the caller.
package spond

import (
	"context"

	"github.com/spond-community/spond-go/models"
)

// Client exposes the Spond domain operations. It wraps a Session for
// the main bearer credential and lazily establishes a second,
// independent credential for the chat subsystem on first use.
//
// Client state (token, chat session, caches) is instance-scoped and
// has no concurrent-access protection: a single writer is assumed.
// Callers issuing concurrent cache-populating calls race, and the last
// response wins the wholesale cache replacement.
type Client struct {
	*Session

	chatURL  string
	chatAuth string

	groups []models.Group
	events []models.Event
}

// NewClient creates a client for the given Spond account. Login is
// lazy: the first operation that needs a token performs it.
func NewClient(email, password string, opts ...Option) *Client {
	return &Client{Session: NewSession(email, password, opts...)}
}

// ChatURL returns the chat host established by LoginChat, empty until
// the chat subsystem has been used.
func (c *Client) ChatURL() string { return c.chatURL }

// ensureChat mirrors EnsureAuth for the chat credential: at most one
// chat login while the token is unset.
func (c *Client) ensureChat(ctx context.Context) error {
	if c.chatAuth != "" {
		return nil
	}
	return c.LoginChat(ctx)
}
