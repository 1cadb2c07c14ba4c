// Package gateway implements the dual-mode persistence layer. Every call
// prefers the remote backend; the first transport failure trips a sticky
// per-instance breaker and all later calls use the local file store for the
// lifetime of the Gateway.
package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thanush/resumai/internal/api"
	"github.com/thanush/resumai/internal/localstore"
	"github.com/thanush/resumai/internal/types"
)

// Sentinel errors surfaced to callers regardless of which mode served the
// request.
var (
	ErrDuplicateUser      = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("no active session")
)

// Local store keys.
const (
	keyToken   = "token"
	keyUser    = "user"
	keyUsers   = "users"
	keyHistory = "history"
)

// localUser is a fallback-mode account record. The local table only exists so
// auth keeps working offline; passwords are stored as-is, matching the scope
// of a single-machine dev fallback.
type localUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Gateway routes persistence calls between the remote API and the local store.
type Gateway struct {
	remote *api.Client
	local  *localstore.Store

	mu         sync.Mutex
	remoteDown bool
}

// New creates a Gateway in remote-preferred mode.
func New(remote *api.Client, local *localstore.Store) *Gateway {
	return &Gateway{remote: remote, local: local}
}

// RemoteAvailable reports whether the breaker is still closed.
func (g *Gateway) RemoteAvailable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.remoteDown
}

// tripOnTransport opens the breaker when err is a transport-level failure.
// Non-success HTTP statuses mean the backend is up and are left alone.
func (g *Gateway) tripOnTransport(err error) bool {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 0 {
		return false
	}
	g.mu.Lock()
	if !g.remoteDown {
		g.remoteDown = true
		log.Printf("[gateway] remote backend unreachable, switching to local storage: %v", err)
	}
	g.mu.Unlock()
	return true
}

// Register creates an account remotely when possible, locally otherwise. On
// remote success the session token and user record are persisted locally.
func (g *Gateway) Register(ctx context.Context, email, password, name string) (*types.User, error) {
	if g.RemoteAvailable() {
		resp, err := g.remote.Register(ctx, email, password, name)
		if err == nil {
			return resp.User, g.storeSession(resp.Token, resp.User)
		}
		if !g.tripOnTransport(err) {
			var apiErr *api.Error
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
				return nil, ErrDuplicateUser
			}
			return nil, err
		}
	}
	return g.registerLocal(email, password, name)
}

// Login authenticates remotely when possible, locally otherwise.
func (g *Gateway) Login(ctx context.Context, email, password string) (*types.User, error) {
	if g.RemoteAvailable() {
		resp, err := g.remote.Login(ctx, email, password)
		if err == nil {
			return resp.User, g.storeSession(resp.Token, resp.User)
		}
		if !g.tripOnTransport(err) {
			var apiErr *api.Error
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	}
	return g.loginLocal(email, password)
}

// Logout clears the active session.
func (g *Gateway) Logout() error {
	if err := g.local.Delete(keyToken); err != nil {
		return err
	}
	return g.local.Delete(keyUser)
}

// ActiveUser returns the signed-in user, or ErrNotAuthenticated.
func (g *Gateway) ActiveUser() (*types.User, error) {
	var user types.User
	found, err := g.local.Get(keyUser, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotAuthenticated
	}
	return &user, nil
}

// SaveAnalysis records one analysis. The local write happens first and
// unconditionally; remote sync is best effort and its failure is only logged.
// Once the local write succeeds the call cannot fail.
func (g *Gateway) SaveAnalysis(ctx context.Context, userID, resumeText string, analysis types.ResumeAnalysis) (*types.HistoryItem, error) {
	analysis.Clamp()

	item := types.HistoryItem{
		ID:         uuid.New(),
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
		ResumeText: resumeText,
		Analysis:   analysis,
	}

	var items []types.HistoryItem
	if _, err := g.local.Get(keyHistory, &items); err != nil {
		return nil, err
	}
	items = append([]types.HistoryItem{item}, items...)
	if err := g.local.Set(keyHistory, items); err != nil {
		return nil, err
	}

	if g.RemoteAvailable() {
		if token := g.token(); token != "" {
			if err := g.remote.SaveAnalysis(ctx, token, resumeText, analysis); err != nil {
				g.tripOnTransport(err)
				log.Printf("[gateway] remote sync of analysis failed, kept locally: %v", err)
			}
		}
	}
	return &item, nil
}

// UserHistory returns the user's locally stored analyses, newest first.
func (g *Gateway) UserHistory(userID string) ([]types.HistoryItem, error) {
	var items []types.HistoryItem
	if _, err := g.local.Get(keyHistory, &items); err != nil {
		return nil, err
	}

	filtered := make([]types.HistoryItem, 0, len(items))
	for _, it := range items {
		if it.UserID == userID {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// RemoteHistory fetches the active session's history from the backend. It does
// not consult the breaker; callers ask for remote data explicitly.
func (g *Gateway) RemoteHistory(ctx context.Context) ([]types.HistoryItem, error) {
	token := g.token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return g.remote.ListAnalyses(ctx, token)
}

// DeleteHistoryItem removes one locally stored analysis owned by userID.
func (g *Gateway) DeleteHistoryItem(userID string, id uuid.UUID) error {
	var items []types.HistoryItem
	if _, err := g.local.Get(keyHistory, &items); err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID == id && it.UserID == userID {
			continue
		}
		kept = append(kept, it)
	}
	return g.local.Set(keyHistory, kept)
}

// registerLocal creates an account in the local user table. Email matching is
// exact, byte for byte.
func (g *Gateway) registerLocal(email, password, name string) (*types.User, error) {
	var users []localUser
	if _, err := g.local.Get(keyUsers, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateUser
		}
	}

	if name == "" {
		name = emailLocalPart(email)
	}
	record := localUser{ID: uuid.New().String(), Email: email, Name: name, Password: password}
	users = append(users, record)
	if err := g.local.Set(keyUsers, users); err != nil {
		return nil, err
	}

	user := &types.User{ID: record.ID, Email: record.Email, Name: record.Name}
	return user, g.storeSession(email, user)
}

// loginLocal authenticates against the local user table. Any mismatch yields
// the same generic error.
func (g *Gateway) loginLocal(email, password string) (*types.User, error) {
	var users []localUser
	if _, err := g.local.Get(keyUsers, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			user := &types.User{ID: u.ID, Email: u.Email, Name: u.Name}
			return user, g.storeSession(email, user)
		}
	}
	return nil, ErrInvalidCredentials
}

// storeSession persists the token and user record for later calls. In local
// mode the token is the email itself.
func (g *Gateway) storeSession(token string, user *types.User) error {
	if err := g.local.Set(keyToken, token); err != nil {
		return err
	}
	return g.local.Set(keyUser, user)
}

func (g *Gateway) token() string {
	var token string
	if found, err := g.local.Get(keyToken, &token); err != nil || !found {
		return ""
	}
	return token
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
