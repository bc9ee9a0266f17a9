package console

import (
	"context"
	"errors"
	"log/slog"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/metrics"
)

// ErrMissingToken means the login response had neither token field.
var ErrMissingToken = errors.New("login response carried no token")

// LoginForm is the session screen's input.
type LoginForm struct {
	Email    string
	Password string
	Remember bool
}

// Ready reports whether both fields are filled in.
func (f LoginForm) Ready() bool {
	return f.Email != "" && f.Password != ""
}

// LoginView is what the session screen renders. The password is never
// carried back into the view.
type LoginView struct {
	Form     LoginForm
	Phase    Phase
	Error    string
	Redirect string
}

// NewLoginView is the idle session screen.
func (c *Console) NewLoginView(remembered bool) LoginView {
	return LoginView{Form: LoginForm{Remember: remembered}}
}

// Login signs in and persists the token. On success the view redirects to
// the listing screen.
func (c *Console) Login(ctx context.Context, auth Authenticator, tokens TokenStore, form LoginForm) LoginView {
	view := LoginView{Form: LoginForm{Email: form.Email, Remember: form.Remember}}

	if !form.Ready() {
		return view
	}

	resp, err := auth.Login(ctx, form.Email, form.Password)
	if err == nil {
		if _, ok := resp.BearerToken(); !ok {
			err = ErrMissingToken
		}
	}
	if err != nil {
		status := api.StatusOf(err)
		c.metrics.IncLogin(metrics.LoginFailed)
		c.logger.WarnContext(ctx, "login failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		view.Phase = PhaseError
		view.Error = Message(Classify(OpLogin, status))
		return view
	}

	token, _ := resp.BearerToken()
	if err := tokens.SetToken(ctx, token, form.Remember); err != nil {
		c.metrics.IncLogin(metrics.LoginFailed)
		c.logger.ErrorContext(ctx, "failed to persist token", slog.String("error", err.Error()))
		view.Phase = PhaseError
		view.Error = Message(MsgLoginFailed)
		return view
	}

	c.metrics.IncLogin(metrics.LoginSuccess)
	c.logger.InfoContext(ctx, "login succeeded", slog.Bool("remember", form.Remember))

	view.Phase = PhaseSuccess
	view.Redirect = RouteListing
	return view
}

// Logout clears the token and returns the route to go to.
func (c *Console) Logout(ctx context.Context, tokens TokenStore) string {
	if err := tokens.ClearToken(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear token", slog.String("error", err.Error()))
	}
	c.metrics.IncLogout()
	return RouteLogin
}
