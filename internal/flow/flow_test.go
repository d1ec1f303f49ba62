package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/model"
	"github.com/iliyamo/user-admin-portal/internal/utils"
)

// Test doubles for the flow's collaborators. They count calls so the
// tests can assert which operations issued network traffic and which
// were short-circuited.

const testSecret = "test-secret"

func testToken(userID, role string) string {
	at, err := utils.NewAccessToken(testSecret, userID, role, 60)
	if err != nil {
		panic(err)
	}
	return at.Token
}

type fakeProvider struct {
	token       string // token to hand out on success
	signInErr   error
	signUpErr   error
	signInCalls int
	signUpCalls int
	signedOut   bool
}

func (p *fakeProvider) SignIn(_ context.Context, _, _ string) (string, error) {
	p.signInCalls++
	if p.signInErr != nil {
		return "", p.signInErr
	}
	return p.token, nil
}

func (p *fakeProvider) SignUp(_ context.Context, _, _, _ string) (string, error) {
	p.signUpCalls++
	if p.signUpErr != nil {
		return "", p.signUpErr
	}
	return p.token, nil
}

func (p *fakeProvider) SignOut(_ context.Context) error {
	p.signedOut = true
	return nil
}

func (p *fakeProvider) IDToken() string { return p.token }

type fakeDirectory struct {
	mu          sync.Mutex
	records     map[string]model.UserProfile
	order       []string
	listErr     error
	getErr      error
	updateErr   error
	listCalls   int
	getCalls    int
	updateCalls int
	lastToken   string
}

func newFakeDirectory(users ...model.UserProfile) *fakeDirectory {
	d := &fakeDirectory{records: make(map[string]model.UserProfile)}
	for _, u := range users {
		d.records[u.ID] = u
		d.order = append(d.order, u.ID)
	}
	return d
}

func (d *fakeDirectory) List(_ context.Context, token string) ([]model.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls++
	d.lastToken = token
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]model.UserProfile, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.records[id])
	}
	return out, nil
}

func (d *fakeDirectory) GetByID(_ context.Context, token, id string) (model.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.getCalls++
	d.lastToken = token
	if d.getErr != nil {
		return model.UserProfile{}, d.getErr
	}
	u, ok := d.records[id]
	if !ok {
		return model.UserProfile{}, directory.ErrNotFound
	}
	return u, nil
}

func (d *fakeDirectory) Update(_ context.Context, token, id string, in directory.UpdateRecord) (model.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updateCalls++
	d.lastToken = token
	if d.updateErr != nil {
		return model.UserProfile{}, d.updateErr
	}
	u, ok := d.records[id]
	if !ok {
		return model.UserProfile{}, directory.ErrNotFound
	}
	u.DisplayName = in.DisplayName
	u.PhotoURL = in.PhotoURL
	u.Role = in.Role
	u.IsActive = in.IsActive
	d.records[id] = u
	return u, nil
}

func (d *fakeDirectory) Create(_ context.Context, token, id string, u model.UserProfile) (model.UserProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastToken = token
	u.ID = id
	d.records[id] = u
	d.order = append(d.order, id)
	return u, nil
}

func (d *fakeDirectory) Delete(_ context.Context, token, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastToken = token
	if _, ok := d.records[id]; !ok {
		return directory.ErrNotFound
	}
	delete(d.records, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

// networkCalls reports the total number of directory operations that
// would have hit the wire.
func (d *fakeDirectory) networkCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.listCalls + d.getCalls + d.updateCalls
}

type memTokens struct {
	mu      sync.Mutex
	token   string
	loadErr error
	saveErr error
}

func (m *memTokens) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.loadErr
}

func (m *memTokens) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

var errBoom = errors.New("directory unavailable")
