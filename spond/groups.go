package spond

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spond-community/spond-go/models"
)

// GroupFilter narrows a Groups call. The UID field is accepted for
// compatibility with the service surface but is not applied to the
// request; the full group list is always fetched.
type GroupFilter struct {
	UID string
}

// Groups fetches every group visible to the account and replaces the
// group cache wholesale with the result.
func (c *Client) Groups(ctx context.Context, filter GroupFilter) ([]models.Group, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}

	respBody, err := c.do(ctx, http.MethodGet, c.apiURL+"groups/", c.AuthHeaders(), nil)
	if err != nil {
		return nil, err
	}

	var groups []models.Group
	if err := json.Unmarshal(respBody, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups response: %w", err)
	}
	if groups == nil {
		groups = []models.Group{}
	}

	c.groups = groups
	return c.groups, nil
}

// Group returns the cached group with the given id, fetching the group
// list first if the cache is empty. A populated cache is trusted
// as-is; only an explicit Groups call refreshes it.
func (c *Client) Group(ctx context.Context, uid string) (*models.Group, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureGroups(ctx); err != nil {
		return nil, err
	}

	for i := range c.groups {
		if c.groups[i].ID == uid {
			return &c.groups[i], nil
		}
	}
	return nil, &NotFoundError{Resource: "group", Key: uid}
}

// Person resolves an identifier to a member or guardian across every
// cached group. The identifier may be a person id, an email address, a
// "first last" name, or a profile id; members are checked before their
// guardians and groups are walked in cache order, so the first match
// wins.
func (c *Client) Person(ctx context.Context, user string) (*models.Person, error) {
	if err := c.EnsureAuth(ctx); err != nil {
		return nil, err
	}
	if err := c.ensureGroups(ctx); err != nil {
		return nil, err
	}

	for gi := range c.groups {
		members := c.groups[gi].Members
		for mi := range members {
			if matchesPerson(&members[mi].Person, user) {
				return &members[mi].Person, nil
			}
			for li := range members[mi].Guardians {
				if matchesPerson(&members[mi].Guardians[li], user) {
					return &members[mi].Guardians[li], nil
				}
			}
		}
	}
	return nil, &NotFoundError{Resource: "person", Key: user}
}

func (c *Client) ensureGroups(ctx context.Context) error {
	if len(c.groups) > 0 {
		return nil
	}
	_, err := c.Groups(ctx, GroupFilter{})
	return err
}

// matchesPerson applies the identity checks in precedence order: id,
// email, full name, profile id.
func matchesPerson(p *models.Person, user string) bool {
	if p.ID == user {
		return true
	}
	if p.Email != "" && p.Email == user {
		return true
	}
	if p.FullName() == user {
		return true
	}
	if p.Profile != nil && p.Profile.ID == user {
		return true
	}
	return false
}
