package spond

import "fmt"

// AuthError is returned when a login response carries no token. The
// raw response body is embedded so failed logins can be diagnosed.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed, response received: %s", e.Body)
}

// NotFoundError is returned when a group, person or event lookup finds
// no match in the cached collection.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s matched %q", e.Resource, e.Key)
}
