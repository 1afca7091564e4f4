// FILE: internal/service/session_service.go
package service

import (
	"context"
	"sync"
	"time"

	"news-feed-client/internal/dto"
	"news-feed-client/internal/entity"
	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"
	"news-feed-client/internal/remote"
	"news-feed-client/internal/repository/contract"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

type ISessionService interface {
	// Initialize rehydrates the session from the credential store. It must
	// complete before any preference-dependent feed request is issued; the
	// session reads as Authenticating until it reaches a terminal state.
	Initialize(ctx context.Context) error
	Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error)
	// Register creates an account but does NOT authenticate: the backend
	// returns a user without a token, so the session stays unauthenticated
	// until an explicit login.
	Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error)
	UpdateUser(ctx context.Context, req *dto.UpdateProfileRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
	// Logout is unconditional and never fails.
	Logout(ctx context.Context)
	// ForceLogout is the single central handler for authentication-rejected
	// responses from any remote call. Wired as the transport's 401 hook.
	ForceLogout(reason string)
	Current() entity.Session
	// Token returns the active bearer token, "" when unauthenticated.
	// Wired as the transport's token source.
	Token() string
}

type sessionService struct {
	auth        remote.IAuthClient
	credentials contract.CredentialRepository
	validate    *validator.Validate
	log         logger.ILogger

	mu     sync.Mutex
	status entity.SessionStatus
	user   *entity.User
	token  string
}

func NewSessionService(auth remote.IAuthClient, credentials contract.CredentialRepository, log logger.ILogger) ISessionService {
	return &sessionService{
		auth:        auth,
		credentials: credentials,
		validate:    validator.New(),
		log:         log,
		status:      entity.SessionUnauthenticated,
	}
}

func (s *sessionService) Initialize(ctx context.Context) error {
	// 1. Read the credential store. Absent or corrupted reads as a clean
	// unauthenticated start.
	cred, err := s.credentials.Load(ctx)
	if err != nil || cred == nil {
		s.clear(ctx)
		return nil
	}

	s.mu.Lock()
	s.status = entity.SessionAuthenticating
	s.token = cred.Token
	s.mu.Unlock()

	// 2. Skip the doomed round-trip when the token is visibly expired.
	// The claims are peeked unverified; only the server can truly validate.
	if tokenExpired(cred.Token) {
		s.log.Info("session", "stored token expired, clearing credentials", nil)
		s.clear(ctx)
		return nil
	}

	// 3. Confirm the token with the remote "who am I" endpoint. Success
	// re-persists the fresh snapshot, healing stale local copies.
	user, err := s.auth.Me(ctx)
	if err != nil {
		s.clear(ctx)
		return err
	}

	if err := s.credentials.Save(ctx, &entity.Credential{Token: cred.Token, User: user}); err != nil {
		s.log.Warn("session", "failed to re-persist credential after rehydration", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.status = entity.SessionAuthenticated
	s.user = user
	s.mu.Unlock()

	return nil
}

func (s *sessionService) Login(ctx context.Context, req *dto.LoginRequest) (*entity.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "invalid login request", err)
	}

	res, err := s.auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	cred := &entity.Credential{Token: res.AccessToken, User: &res.User}
	if err := s.credentials.Save(ctx, cred); err != nil {
		// The in-memory session still works; it just won't survive restart.
		s.log.Warn("session", "failed to persist credential", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.status = entity.SessionAuthenticated
	s.user = &res.User
	s.token = res.AccessToken
	s.mu.Unlock()

	return &res.User, nil
}

func (s *sessionService) Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "invalid registration request", err)
	}
	return s.auth.Register(ctx, req)
}

func (s *sessionService) UpdateUser(ctx context.Context, req *dto.UpdateProfileRequest) (*entity.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "invalid profile update", err)
	}

	s.mu.Lock()
	token := s.token
	authenticated := s.status == entity.SessionAuthenticated
	s.mu.Unlock()
	if !authenticated {
		return nil, apierror.New(apierror.KindAuthRejected, "not authenticated")
	}

	// The server response replaces the snapshot wholesale. Merging the
	// partial request into the local copy would drift from server-side
	// derived fields.
	user, err := s.auth.Update(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.credentials.Save(ctx, &entity.Credential{Token: token, User: user}); err != nil {
		s.log.Warn("session", "failed to persist updated user snapshot", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return user, nil
}

func (s *sessionService) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apierror.Wrap(apierror.KindValidation, "invalid password change request", err)
	}
	return s.auth.ChangePassword(ctx, req)
}

func (s *sessionService) Logout(ctx context.Context) {
	s.clear(ctx)
}

func (s *sessionService) ForceLogout(reason string) {
	s.log.Warn("session", "authentication rejected, forcing logout", map[string]interface{}{"reason": reason})
	s.clear(context.Background())
}

func (s *sessionService) Current() entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := entity.Session{Status: s.status}
	if s.user != nil {
		u := *s.user
		snapshot.User = &u
	}
	return snapshot
}

func (s *sessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *sessionService) clear(ctx context.Context) {
	if err := s.credentials.Clear(ctx); err != nil {
		s.log.Warn("session", "failed to clear credential store", map[string]interface{}{"error": err.Error()})
	}

	s.mu.Lock()
	s.status = entity.SessionUnauthenticated
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

// tokenExpired reports whether the token carries an exp claim in the past.
// Tokens without parseable claims are treated as live and left for the
// server to judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
