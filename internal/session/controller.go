// Package session is the client-side auth controller: an explicit state
// machine over the linked-account lifecycle, with bounded polling for an
// account that has just finished the hosted OAuth flow.
package session

import (
	"context"
	"errors"
	"time"

	"reachout/internal/model"
)

const (
	// pollAttempts bounds the wait for the gateway to register a freshly
	// linked account after the OAuth redirect.
	pollAttempts = 5
	pollInterval = time.Second
)

// ErrAccountNotReady is returned when polling exhausts its attempts.
var ErrAccountNotReady = errors.New("could not retrieve account, please try connecting again")

// ErrLoginFailed is the generic login failure surfaced to the user.
var ErrLoginFailed = errors.New("failed to fetch profile")

// API is the slice of the server surface the controller needs.
type API interface {
	ConnectedAccount(ctx context.Context) (string, error)
	OwnProfile(ctx context.Context, accountID string) (model.Profile, error)
}

// PollDelay is the pause before the next connected-account attempt. attempt
// is zero-based; there is no pause after the final attempt.
func PollDelay(attempt int) time.Duration {
	if attempt >= pollAttempts-1 {
		return 0
	}
	return pollInterval
}

// Controller drives the session state machine. Not safe for concurrent use;
// the CLI runs one command at a time.
type Controller struct {
	api   API
	store Store

	state     State
	accountID string
	profile   model.Profile
	lastErr   error

	sleep func(context.Context, time.Duration) error
}

func NewController(api API, store Store) *Controller {
	return &Controller{
		api:   api,
		store: store,
		state: Anonymous,
		sleep: sleepCtx,
	}
}

func (c *Controller) State() State           { return c.state }
func (c *Controller) AccountID() string      { return c.accountID }
func (c *Controller) Profile() model.Profile { return c.profile }

// Err returns the failure that moved the controller to Errored.
func (c *Controller) Err() error { return c.lastErr }

// Resume replays the login flow from a persisted account id, if any. With no
// stored session it is a no-op in Anonymous.
func (c *Controller) Resume(ctx context.Context) error {
	p, err := c.store.Load()
	if err != nil || p.AccountID == "" {
		return err
	}
	return c.Login(ctx, p.AccountID)
}

// Login fetches the account's own profile, persists the account id and moves
// to Authenticated. Any failure moves to Errored with a generic message.
func (c *Controller) Login(ctx context.Context, accountID string) error {
	if err := c.apply(EventLoginStarted); err != nil {
		return err
	}

	profile, err := c.api.OwnProfile(ctx, accountID)
	if err != nil {
		_ = c.apply(EventLoginFailed)
		c.lastErr = ErrLoginFailed
		return ErrLoginFailed
	}

	p, _ := c.store.Load()
	p.AccountID = accountID
	if err := c.store.Save(p); err != nil {
		_ = c.apply(EventLoginFailed)
		c.lastErr = err
		return err
	}

	c.accountID = accountID
	c.profile = profile
	c.lastErr = nil
	return c.apply(EventLoginSucceeded)
}

// Logout clears the persisted session and returns to Anonymous
// unconditionally. There is no upstream unlink call.
func (c *Controller) Logout() error {
	err := c.store.Clear()
	c.accountID = ""
	c.profile = model.Profile{}
	c.lastErr = nil
	_ = c.apply(EventLogout)
	return err
}

// Reset recovers from Errored back to Anonymous.
func (c *Controller) Reset() {
	_ = c.apply(EventReset)
}

// WaitForAccount polls the connected-account endpoint until the gateway has
// registered the freshly linked account, then logs in with it.
func (c *Controller) WaitForAccount(ctx context.Context) (string, error) {
	for attempt := 0; attempt < pollAttempts; attempt++ {
		accountID, err := c.api.ConnectedAccount(ctx)
		if err == nil && accountID != "" {
			if err := c.Login(ctx, accountID); err != nil {
				return "", err
			}
			return accountID, nil
		}

		if delay := PollDelay(attempt); delay > 0 {
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}
	}
	return "", ErrAccountNotReady
}

func (c *Controller) apply(e Event) error {
	next, err := transition(c.state, e)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
