package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RESTProvider talks to an external identity platform over HTTP:
//
//	POST {base}/auth/login    {email,password}              -> {token}
//	POST {base}/auth/register {email,password,displayName}  -> {token}
//	POST {base}/auth/logout   (Bearer token)                -> 204
//
// The platform API key is sent on every request; the base URL and
// key come from configuration, never from code.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client

	mu    sync.Mutex
	token string // token of the current sign-in, "" when signed out
}

// NewRESTProvider builds a provider client with a sane default HTTP
// timeout. Pass client=nil to use the default.
func NewRESTProvider(baseURL, apiKey string, client *http.Client) *RESTProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RESTProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  client,
	}
}

type credentialsReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type tokenResp struct {
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}

func (p *RESTProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	tok, err := p.exchange(ctx, "/auth/login", credentialsReq{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	p.setToken(tok)
	return tok, nil
}

func (p *RESTProvider) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	tok, err := p.exchange(ctx, "/auth/register", credentialsReq{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	})
	if err != nil {
		return "", err
	}
	p.setToken(tok)
	return tok, nil
}

// SignOut invalidates the current token with the platform. A missing
// token makes this a no-op; the local token is dropped either way.
func (p *RESTProvider) SignOut(ctx context.Context) error {
	tok := p.IDToken()
	p.setToken("")
	if tok == "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	p.auth(req)
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("provider logout failed: %s", resp.Status)
	}
	return nil
}

func (p *RESTProvider) IDToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *RESTProvider) setToken(tok string) {
	p.mu.Lock()
	p.token = tok
	p.mu.Unlock()
}

func (p *RESTProvider) auth(req *http.Request) {
	if p.APIKey != "" {
		req.Header.Set("X-Api-Key", p.APIKey)
	}
}

// exchange posts credentials to the given path and decodes the token
// envelope. 401/403 map to ErrInvalidCredentials; any other non-2xx
// status becomes a descriptive error.
func (p *RESTProvider) exchange(ctx context.Context, path string, body credentialsReq) (string, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	p.auth(req)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out tokenResp
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider request failed: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("provider returned malformed response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("provider returned no token")
	}
	return out.Token, nil
}
