package spond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spond-community/spond-go/models"
)

// LoginChat establishes the chat subsystem credential: a chat host URL
// and an auth token independent of the main bearer token. Operations
// that need chat access call this lazily, at most once while the
// credential is unset.
func (c *Client) LoginChat(ctx context.Context) error {
	if err := c.EnsureAuth(ctx); err != nil {
		return err
	}

	respBody, err := c.do(ctx, http.MethodPost, c.apiURL+"chat", c.AuthHeaders(), nil)
	if err != nil {
		return err
	}

	var session models.ChatSession
	if err := json.Unmarshal(respBody, &session); err != nil {
		return fmt.Errorf("failed to decode chat login response: %w", err)
	}

	c.chatURL = session.URL
	c.chatAuth = session.Auth
	return nil
}

// chatHeaders returns the header set for chat endpoints. The chat
// token travels in a plain "auth" header, not bearer-style.
func (c *Client) chatHeaders() map[string]string {
	return map[string]string{
		"auth":         c.chatAuth,
		"Content-Type": "application/json",
	}
}

// Messages returns the ten most recent chat conversations as raw JSON;
// ordering is whatever the service returns.
func (c *Client) Messages(ctx context.Context) (json.RawMessage, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureChat(ctx); err != nil {
		return nil, err
	}

	return c.do(ctx, http.MethodGet, c.chatURL+"/chats/?max=10", c.chatHeaders(), nil)
}

// ContinueChat posts a text message into an existing chat and returns
// the raw service response.
func (c *Client) ContinueChat(ctx context.Context, chatID, text string) (json.RawMessage, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureChat(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]string{
		"chatId": chatID,
		"text":   text,
		"type":   "TEXT",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat message: %w", err)
	}

	return c.do(ctx, http.MethodPost, c.chatURL+"/messages", c.chatHeaders(), body)
}

// SendMessageOptions direct a SendMessage call. ChatID continues an
// existing chat; otherwise both User and GroupUID are required to
// start a new one.
type SendMessageOptions struct {
	Text     string
	User     string
	GroupUID string
	ChatID   string
}

// SendMessage routes a message. With a ChatID it delegates to
// ContinueChat. Otherwise it resolves User through the group cache and
// posts a new message to the resolved person's profile within
// GroupUID.
//
// The outcome carries three distinct non-error shapes: the service
// response for a delivered message, a structured usage error when the
// parameters cannot route anywhere, and an unresolved flag when the
// recipient matches no cached person. Callers depend on telling these
// apart; they are deliberately not folded into the error return.
func (c *Client) SendMessage(ctx context.Context, opts SendMessageOptions) (*models.SendOutcome, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureChat(ctx); err != nil {
		return nil, err
	}

	if opts.ChatID != "" {
		resp, err := c.ContinueChat(ctx, opts.ChatID, opts.Text)
		if err != nil {
			return nil, err
		}
		return &models.SendOutcome{Response: resp}, nil
	}

	if opts.GroupUID == "" || opts.User == "" {
		return &models.SendOutcome{Usage: &models.UsageError{
			Error: "wrong usage, groupId and userId needed or continue chat with chatId",
		}}, nil
	}

	person, err := c.Person(ctx, opts.User)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return &models.SendOutcome{Unresolved: true}, nil
		}
		return nil, err
	}
	if person.Profile == nil {
		return nil, fmt.Errorf("person %q has no profile id to message", opts.User)
	}

	body, err := json.Marshal(map[string]string{
		"text":      opts.Text,
		"type":      "TEXT",
		"recipient": person.Profile.ID,
		"groupId":   opts.GroupUID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.chatURL+"/messages", c.chatHeaders(), body)
	if err != nil {
		return nil, err
	}
	return &models.SendOutcome{Response: resp}, nil
}
