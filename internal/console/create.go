package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/model"
)

// CreateForm is the create screen's input.
type CreateForm struct {
	Name     string
	Email    string
	Password string
}

// CreateView is what the create screen renders. The password is never
// carried back; its strength score is.
type CreateView struct {
	Form          CreateForm
	Phase         Phase
	Error         string
	Strength      int
	StrengthLabel string
	HasPassword   bool
	// RedirectTo and RedirectAfter are set once the user exists.
	RedirectTo    string
	RedirectAfter time.Duration
}

// Disabled reports whether the form controls are locked.
func (v CreateView) Disabled() bool {
	return v.Phase == PhaseSuccess
}

// NewCreateView is the idle create screen.
func (c *Console) NewCreateView() CreateView {
	return CreateView{StrengthLabel: StrengthLabel(0)}
}

// Create validates the form, then creates the user. On success the view
// shows a confirmation and schedules a redirect to the listing screen.
func (c *Console) Create(ctx context.Context, users Users, form CreateForm) CreateView {
	score := PasswordStrength(form.Password)
	view := CreateView{
		Form:          CreateForm{Name: form.Name, Email: form.Email},
		Strength:      score,
		StrengthLabel: StrengthLabel(score),
		HasPassword:   form.Password != "",
	}

	if key := validateNewUser(form); key != MsgNone {
		view.Phase = PhaseError
		view.Error = Message(key)
		return view
	}

	user, err := users.CreateUser(ctx, model.NewUser{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		status := api.StatusOf(err)
		c.logger.ErrorContext(ctx, "failed to create user",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		view.Phase = PhaseError
		view.Error = Message(Classify(OpCreateUser, status))
		return view
	}

	c.metrics.IncUserCreated()
	c.logger.InfoContext(ctx, "user_created", slog.String("user_id", user.ID.String()))

	view.Phase = PhaseSuccess
	view.RedirectTo = RouteListing
	view.RedirectAfter = c.createRedirectDelay
	return view
}
