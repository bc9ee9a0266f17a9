package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/console"
	"github.com/penshort/userconsole/internal/credentials"
	"github.com/penshort/userconsole/internal/middleware"
	"github.com/penshort/userconsole/internal/model"
)

// ConsoleHandler serves the console screens.
type ConsoleHandler struct {
	console     *console.Console
	client      *api.Client
	credentials *credentials.Provider
	pages       *Pages
	logger      *slog.Logger
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(c *console.Console, client *api.Client, provider *credentials.Provider, pages *Pages, logger *slog.Logger) *ConsoleHandler {
	return &ConsoleHandler{
		console:     c,
		client:      client,
		credentials: provider,
		pages:       pages,
		logger:      logger,
	}
}

// LoginPage handles GET /login.
func (h *ConsoleHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.credentials.For(ctx)

	if store.HasToken(ctx) {
		http.Redirect(w, r, console.RouteListing, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, pageLogin, false, h.console.NewLoginView(store.Remembered(ctx)))
}

// Login handles POST /login.
func (h *ConsoleHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	form := console.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
	}

	view := h.console.Login(ctx, h.client, h.credentials.For(ctx), form)
	if view.Redirect != "" {
		http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
		return
	}

	h.render(w, r, formStatus(view.Phase), pageLogin, false, view)
}

// Logout handles POST /logout.
func (h *ConsoleHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	http.Redirect(w, r, h.console.Logout(ctx, h.credentials.For(ctx)), http.StatusSeeOther)
}

// Listing handles GET /.
func (h *ConsoleHandler) Listing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := h.credentials.For(ctx)

	view := h.console.List(ctx, h.client.WithAuth(store), store)
	if view.Redirect != "" {
		http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, pageListing, true, view)
}

// deleteView fills delete.html.
type deleteView struct {
	ID model.UserID
}

// ConfirmDelete handles GET /users/{id}/delete. It makes no API calls.
func (h *ConsoleHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, pageDelete, true, deleteView{ID: id})
}

// Delete handles POST /users/{id}/delete.
// Only confirm=yes reaches the API. A successful delete sends the browser
// back to the listing, whose load is the re-fetch. A declined or failed
// delete answers 204 so the browser stays on the current page.
func (h *ConsoleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	confirmed := r.PostFormValue("confirm") == "yes"
	result := h.console.Delete(ctx, h.client.WithAuth(h.credentials.For(ctx)), id, confirmed)
	if !result.Deleted {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, console.RouteListing, http.StatusSeeOther)
}

// CreatePage handles GET /create-user.
func (h *ConsoleHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageCreate, true, h.console.NewCreateView())
}

// Create handles POST /create-user.
func (h *ConsoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	form := console.CreateForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	view := h.console.Create(ctx, h.client.WithAuth(h.credentials.For(ctx)), form)
	h.render(w, r, formStatus(view.Phase), pageCreate, true, view)
}

// EditPage handles GET /edit-user/{id}.
func (h *ConsoleHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	store := h.credentials.For(ctx)

	view := h.console.LoadEdit(ctx, h.client.WithAuth(store), store, id)
	if view.Redirect != "" {
		http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
		return
	}

	h.render(w, r, http.StatusOK, pageEdit, true, view)
}

// Edit handles POST /edit-user/{id}.
func (h *ConsoleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}
	if !h.parseForm(w, r) {
		return
	}

	ctx := r.Context()
	form := console.EditForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
	}

	view := h.console.Update(ctx, h.client.WithAuth(h.credentials.For(ctx)), id, form)
	if view.Redirect != "" {
		http.Redirect(w, r, view.Redirect, http.StatusSeeOther)
		return
	}

	h.render(w, r, formStatus(view.Phase), pageEdit, true, view)
}

// NotFound renders the 404 page.
func (h *ConsoleHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pageError, false, errorView{
		Title:  "Page not found",
		Detail: "The page you asked for does not exist.",
	})
}

// MethodNotAllowed renders the 405 page.
func (h *ConsoleHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusMethodNotAllowed, pageError, false, errorView{
		Title:  "Method not allowed",
		Detail: "This page does not accept that kind of request.",
	})
}

func (h *ConsoleHandler) userID(w http.ResponseWriter, r *http.Request) (model.UserID, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.NotFound(w, r)
		return "", false
	}
	return model.UserID(id), true
}

func (h *ConsoleHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("invalid form body",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		h.render(w, r, http.StatusBadRequest, pageError, false, errorView{
			Title:  "Bad request",
			Detail: "The form could not be read. Please try again.",
		})
		return false
	}
	return true
}

func (h *ConsoleHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, authenticated bool, view any) {
	if err := h.pages.Render(w, status, page, pageData{Authenticated: authenticated, View: view}); err != nil {
		h.logger.Error("failed to render page",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// formStatus is the status a re-rendered form is served with.
func formStatus(phase console.Phase) int {
	if phase == console.PhaseError {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
