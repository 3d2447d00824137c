// Package auth keeps track of who is signed in. It talks to the backend's
// auth endpoint, persists the result and tells subscribers about changes.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/darkai/darkchat/internal/api"
	pErrors "github.com/darkai/darkchat/internal/errors"
	"github.com/darkai/darkchat/internal/form"
	"github.com/darkai/darkchat/internal/logger"
)

const (
	opSignIn pErrors.Op = "auth.SignIn"
	opSignUp pErrors.Op = "auth.SignUp"
	opVerify pErrors.Op = "auth.VerifyOTP"
)

// ErrNoUsername is returned when signin succeeds but the response carries
// no username. Nothing is persisted in that case.
var ErrNoUsername = errors.New("signin response did not include a username")

// ValidationError carries the per-field problems found before any request
type ValidationError struct {
	Fields form.Errors
	order  []string
}

func (e *ValidationError) Error() string {
	for _, f := range e.order {
		if msg, ok := e.Fields[f]; ok {
			return msg
		}
	}
	return "invalid input"
}

func validate(op pErrors.Op, kind form.Kind, fields map[string]string) error {
	errs := form.Validate(kind, fields)
	if len(errs) == 0 {
		return nil
	}
	return pErrors.E(op, pErrors.KindInvalid, &ValidationError{Fields: errs, order: kind.Fields()})
}

// Authenticator is the part of the API client the session needs
type Authenticator interface {
	Auth(ctx context.Context, req api.AuthRequest) (*api.AuthResponse, error)
}

// Verification is the pending OTP step of a signup
type Verification struct {
	Username string
	Email    string
}

// Session is the auth service. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	store   *Store
	client  Authenticator
	state   State
	subs    map[int]func(State)
	nextSub int
	now     func() time.Time
	log     *slog.Logger
}

// NewSession loads the saved state from store
func NewSession(store *Store, client Authenticator) (*Session, error) {
	st, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{
		store:  store,
		client: client,
		state:  st,
		subs:   make(map[int]func(State)),
		now:    time.Now,
		log:    logger.WithComponent("auth"),
	}, nil
}

// CurrentUser returns the display name, if signed in
func (s *Session) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Username, s.state.SignedIn()
}

// State returns a copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn for state changes. Call the returned func to
// stop receiving them.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
		})
	}
}

// SignIn authenticates with email and password and persists the username
func (s *Session) SignIn(ctx context.Context, email, password string) (State, error) {
	if err := validate(opSignIn, form.Signin, map[string]string{
		form.FieldEmail:    email,
		form.FieldPassword: password,
	}); err != nil {
		return State{}, err
	}

	resp, err := s.client.Auth(ctx, api.AuthRequest{
		Action:   api.ActionSignIn,
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		s.log.Warn("signin failed", "kind", pErrors.GetKind(err).String(), "error", err)
		return State{}, pErrors.E(opSignIn, pErrors.GetKind(err), err)
	}
	if resp.Username == "" {
		s.log.Warn("signin succeeded without a username")
		return State{}, ErrNoUsername
	}

	return s.set(State{
		Username:   resp.Username,
		Email:      strings.TrimSpace(email),
		Token:      resp.Token,
		SignedInAt: s.now(),
	})
}

// SignUp registers a new account. The backend then mails an OTP, which is
// confirmed with VerifyOTP. Nothing is persisted yet.
func (s *Session) SignUp(ctx context.Context, username, email, password string) (*Verification, error) {
	if err := validate(opSignUp, form.Signup, map[string]string{
		form.FieldUsername: username,
		form.FieldEmail:    email,
		form.FieldPassword: password,
	}); err != nil {
		return nil, err
	}

	v := &Verification{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
	}
	if _, err := s.client.Auth(ctx, api.AuthRequest{
		Action:   api.ActionSignUp,
		Username: v.Username,
		Email:    v.Email,
		Password: password,
	}); err != nil {
		s.log.Warn("signup failed", "kind", pErrors.GetKind(err).String(), "error", err)
		return nil, pErrors.E(opSignUp, pErrors.GetKind(err), err)
	}
	s.log.Info("signup accepted, awaiting OTP", "email", v.Email)
	return v, nil
}

// VerifyOTP confirms a signup and signs the new user in
func (s *Session) VerifyOTP(ctx context.Context, v *Verification, otp string) (State, error) {
	if v == nil {
		return State{}, pErrors.E(opVerify, pErrors.KindInvalid, "no signup to verify")
	}
	if strings.TrimSpace(v.Username) == "" {
		return State{}, pErrors.E(opVerify, pErrors.KindInvalid, &ValidationError{
			Fields: form.Errors{form.FieldUsername: "Username is required"},
			order:  []string{form.FieldUsername},
		})
	}
	if err := validate(opVerify, form.Verify, map[string]string{form.FieldOTP: otp}); err != nil {
		return State{}, err
	}

	resp, err := s.client.Auth(ctx, api.AuthRequest{
		Action: api.ActionVerify,
		Email:  v.Email,
		OTP:    strings.TrimSpace(otp),
	})
	if err != nil {
		s.log.Warn("otp verification failed", "kind", pErrors.GetKind(err).String(), "error", err)
		return State{}, pErrors.E(opVerify, pErrors.GetKind(err), err)
	}

	return s.set(State{
		Username:   strings.TrimSpace(v.Username),
		Email:      v.Email,
		Token:      resp.Token,
		SignedInAt: s.now(),
	})
}

// SignOut forgets the saved name and token
func (s *Session) SignOut() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.update(State{})
	s.log.Info("signed out")
	return nil
}

// TokenExpiry returns the expiry of the saved token, if it has one
func (s *Session) TokenExpiry() (time.Time, bool) {
	return TokenExpiry(s.State().Token)
}

func (s *Session) set(st State) (State, error) {
	if err := s.store.Save(st); err != nil {
		return State{}, err
	}
	s.update(st)
	s.log.Info("signed in", "username", st.Username)
	return st, nil
}

// update swaps the state and notifies subscribers outside the lock
func (s *Session) update(st State) {
	s.mu.Lock()
	s.state = st
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}
