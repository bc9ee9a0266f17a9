package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/model"
)

// ListState is the listing screen's render state.
type ListState int

// Listing states. They are mutually exclusive.
const (
	ListEmpty ListState = iota
	ListPopulated
)

// ListingView is what the listing screen renders.
type ListingView struct {
	State    ListState
	Users    []model.User
	Redirect string
}

// List fetches all users. A fetch failure renders the empty state; a 401
// drops the token and sends the browser to the session screen.
func (c *Console) List(ctx context.Context, users Users, tokens TokenStore) ListingView {
	list, err := users.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return ListingView{State: ListEmpty, Redirect: c.expireSession(ctx, tokens)}
		}
		c.logger.ErrorContext(ctx, "failed to list users", slog.String("error", err.Error()))
		return ListingView{State: ListEmpty}
	}

	if len(list) == 0 {
		return ListingView{State: ListEmpty}
	}
	return ListingView{State: ListPopulated, Users: list}
}

// DeleteResult reports what a delete request did.
type DeleteResult struct {
	// Attempted is false when the confirmation was declined.
	Attempted bool
	// Deleted is true when the API accepted the delete; the listing should
	// then be fetched again.
	Deleted bool
}

// Delete removes user id once confirmed. A declined confirmation makes no
// calls. A failed delete is logged only and nothing is shown to the user.
func (c *Console) Delete(ctx context.Context, users Users, id model.UserID, confirmed bool) DeleteResult {
	if !confirmed {
		return DeleteResult{}
	}

	if err := users.DeleteUser(ctx, id); err != nil {
		c.metrics.IncUserDeleteFailed()
		c.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("user_id", id.String()),
			slog.Int("status", api.StatusOf(err)),
			slog.String("error", err.Error()),
		)
		return DeleteResult{Attempted: true}
	}

	c.metrics.IncUserDeleted()
	c.logger.InfoContext(ctx, "user_deleted", slog.String("user_id", id.String()))
	return DeleteResult{Attempted: true, Deleted: true}
}

// expireSession clears a token the API rejected and returns the login route.
func (c *Console) expireSession(ctx context.Context, tokens TokenStore) string {
	c.logger.WarnContext(ctx, "api rejected session token")
	if err := tokens.ClearToken(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear token", slog.String("error", err.Error()))
	}
	return RouteLogin
}
