package console

import (
	"context"
	"net/http"
	"sync"

	"github.com/penshort/userconsole/internal/api"
	"github.com/penshort/userconsole/internal/model"
)

// fakeAPI is an in-memory Users and Authenticator that counts calls.
type fakeAPI struct {
	mu sync.Mutex

	users []model.User
	login *model.LoginResponse

	// status > 0 makes the matching call fail with that status;
	// transport makes it fail without a response.
	loginStatus  int
	listStatus   int
	getStatus    int
	createStatus int
	updateStatus int
	deleteStatus int

	calls       map[string]int
	lastCreate  model.NewUser
	lastUpdate  model.UserUpdate
	lastLoginPW string
}

func newFakeAPI(users ...model.User) *fakeAPI {
	return &fakeAPI{users: users, calls: map[string]int{}}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) fail(op string, status int) error {
	if status == 0 {
		return nil
	}
	if status < 0 {
		return &api.Error{Op: op, Message: "request failed"}
	}
	return &api.Error{Op: op, Status: status, Message: http.StatusText(status)}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpLogin]++
	f.lastLoginPW = password
	if err := f.fail(api.OpLogin, f.loginStatus); err != nil {
		return nil, err
	}
	if f.login == nil {
		return &model.LoginResponse{AccessToken: "tok"}, nil
	}
	return f.login, nil
}

func (f *fakeAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpListUsers]++
	if err := f.fail(api.OpListUsers, f.listStatus); err != nil {
		return nil, err
	}
	return append([]model.User(nil), f.users...), nil
}

func (f *fakeAPI) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpGetUser]++
	if err := f.fail(api.OpGetUser, f.getStatus); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, f.fail(api.OpGetUser, http.StatusNotFound)
}

func (f *fakeAPI) CreateUser(ctx context.Context, input model.NewUser) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpCreateUser]++
	f.lastCreate = input
	if err := f.fail(api.OpCreateUser, f.createStatus); err != nil {
		return nil, err
	}
	u := model.User{ID: "new", Name: input.Name, Email: input.Email}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, id model.UserID, input model.UserUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpUpdateUser]++
	f.lastUpdate = input
	if err := f.fail(api.OpUpdateUser, f.updateStatus); err != nil {
		return nil, err
	}
	return &model.User{ID: id, Name: input.Name, Email: input.Email}, nil
}

func (f *fakeAPI) DeleteUser(ctx context.Context, id model.UserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[api.OpDeleteUser]++
	if err := f.fail(api.OpDeleteUser, f.deleteStatus); err != nil {
		return err
	}
	kept := f.users[:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

// fakeTokens records token writes.
type fakeTokens struct {
	token    string
	remember bool
	sets     int
	cleared  int
	setErr   error
}

func (f *fakeTokens) SetToken(ctx context.Context, token string, remember bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.token = token
	f.remember = remember
	return nil
}

func (f *fakeTokens) ClearToken(ctx context.Context) error {
	f.cleared++
	f.token = ""
	return nil
}
