package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/user-admin-portal/internal/model"
)

// REST talks to the hosted directory API:
//
//	GET  {base}/users/fetch-users-data        (Bearer) -> [UserProfile]
//	PUT  {base}/users/update-user-data/{id}   (Bearer) -> UserProfile or {success:bool}
//	POST {base}/users/create-user-data/{id}   (Bearer) -> UserProfile
//	DELETE {base}/users/delete-user-data/{id} (Bearer) -> 204
//
// The API exposes no per-id fetch, so GetByID loads the collection
// and picks the record out, the same way the original dashboard
// resolves the signed-in user.
type REST struct {
	BaseURL string
	Client  *http.Client
}

func NewREST(baseURL string, client *http.Client) *REST {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &REST{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (r *REST) List(ctx context.Context, token string) ([]model.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/users/fetch-users-data", nil)
	if err != nil {
		return nil, err
	}
	var users []model.UserProfile
	if err := r.do(req, token, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *REST) GetByID(ctx context.Context, token, id string) (model.UserProfile, error) {
	users, err := r.List(ctx, token)
	if err != nil {
		return model.UserProfile{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.UserProfile{}, ErrNotFound
}

// updateResp accepts both answer shapes the API is known to produce:
// the updated record itself, or a bare {success:bool} envelope.
type updateResp struct {
	Success *bool `json:"success"`
	model.UserProfile
}

func (r *REST) Update(ctx context.Context, token, id string, in UpdateRecord) (model.UserProfile, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return model.UserProfile{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		r.BaseURL+"/users/update-user-data/"+id, bytes.NewReader(body))
	if err != nil {
		return model.UserProfile{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out updateResp
	if err := r.do(req, token, &out); err != nil {
		return model.UserProfile{}, err
	}
	if out.Success != nil && !*out.Success {
		return model.UserProfile{}, ErrRejected
	}
	if out.UserProfile.ID == "" {
		// success:true without a record; fetch the fresh state.
		return r.GetByID(ctx, token, id)
	}
	return out.UserProfile, nil
}

func (r *REST) Create(ctx context.Context, token, id string, u model.UserProfile) (model.UserProfile, error) {
	body, err := json.Marshal(u)
	if err != nil {
		return model.UserProfile{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.BaseURL+"/users/create-user-data/"+id, bytes.NewReader(body))
	if err != nil {
		return model.UserProfile{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out model.UserProfile
	if err := r.do(req, token, &out); err != nil {
		return model.UserProfile{}, err
	}
	if out.ID == "" {
		out = u
		out.ID = id
	}
	return out, nil
}

func (r *REST) Delete(ctx context.Context, token, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		r.BaseURL+"/users/delete-user-data/"+id, nil)
	if err != nil {
		return err
	}
	return r.do(req, token, nil)
}

// do sends the request with the Bearer token and decodes a JSON body
// into out when out is non-nil. Non-2xx statuses become errors here
// so callers never see raw HTTP details.
func (r *REST) do(req *http.Request, token string, out any) error {
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("directory request failed: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("directory returned malformed response: %w", err)
	}
	return nil
}
