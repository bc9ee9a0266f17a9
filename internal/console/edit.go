package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/model"
)

// EditForm is the edit screen's input. It has no password.
type EditForm struct {
	Name  string
	Email string
}

// EditView is what the edit screen renders.
type EditView struct {
	ID       model.UserID
	Form     EditForm
	Phase    Phase
	Error    string
	Redirect string
}

// LoadEdit fetches user id to pre-populate the form. On failure the error
// stays on screen and the fields stay empty.
func (c *Console) LoadEdit(ctx context.Context, users Users, tokens TokenStore, id model.UserID) EditView {
	view := EditView{ID: id}

	user, err := users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			view.Redirect = c.expireSession(ctx, tokens)
			return view
		}
		c.logger.ErrorContext(ctx, "failed to load user",
			slog.String("user_id", id.String()),
			slog.Int("status", api.StatusOf(err)),
			slog.String("error", err.Error()),
		)
		view.Phase = PhaseError
		view.Error = Message(Classify(OpLoadUser, api.StatusOf(err)))
		return view
	}

	view.Form = EditForm{Name: user.Name, Email: user.Email}
	return view
}

// Update saves name and email. On success the view redirects straight to
// the listing screen.
func (c *Console) Update(ctx context.Context, users Users, id model.UserID, form EditForm) EditView {
	view := EditView{ID: id, Form: form}

	if key := validateUserUpdate(form); key != MsgNone {
		view.Phase = PhaseError
		view.Error = Message(key)
		return view
	}

	_, err := users.UpdateUser(ctx, id, model.UserUpdate{Name: form.Name, Email: form.Email})
	if err != nil {
		status := api.StatusOf(err)
		c.logger.ErrorContext(ctx, "failed to update user",
			slog.String("user_id", id.String()),
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		view.Phase = PhaseError
		view.Error = Message(Classify(OpUpdateUser, status))
		return view
	}

	c.metrics.IncUserUpdated()
	c.logger.InfoContext(ctx, "user_updated", slog.String("user_id", id.String()))

	view.Phase = PhaseSuccess
	view.Redirect = RouteListing
	return view
}
