package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/tahweela/tahweela-backend/pkg/auth"
	"github.com/tahweela/tahweela-backend/pkg/config"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

// LoginInput identifies the account to sign in. The identity provider is
// mocked: the email alone selects or creates the account.
type LoginInput struct {
	Email       string         `json:"email" validate:"required,email"`
	DisplayName string         `json:"display_name,omitempty" validate:"omitempty,max=120"`
	CompanyName string         `json:"company_name,omitempty" validate:"omitempty,max=200"`
	UserType    enums.UserType `json:"user_type,omitempty" validate:"omitempty,oneof=buyer supplier admin"`
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LogoutHook runs after a session ends.
type LogoutHook func(ctx context.Context, userID string)

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	JWT       config.JWTConfig
	Directory *Directory
	Logger    *logger.Logger
	Clock     func() time.Time
}

// Service issues access tokens and keeps one Session per token.
type Service struct {
	jwt       config.JWTConfig
	directory *Directory
	logg      *logger.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	hooks    []LogoutHook
}

func NewService(params ServiceParams) (*Service, error) {
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	directory := params.Directory
	if directory == nil {
		directory = NewDirectory()
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		jwt:       params.JWT,
		directory: directory,
		logg:      logg,
		now:       now,
		sessions:  make(map[string]*Session),
	}, nil
}

// OnLogout registers a hook invoked after every logout.
func (s *Service) OnLogout(hook LogoutHook) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.directory.FindOrCreate(ctx, in)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	issuedAt := s.now().UTC()
	token, err := pkgauth.MintAccessToken(s.jwt, issuedAt, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		UserType: user.UserType,
		JTI:      sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	session := NewSession(s.directory)
	session.Login(ctx, user)

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user logged in")
	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   issuedAt.Add(s.jwt.TTL()),
	}, nil
}

// Session returns the live session for a token id.
func (s *Service) Session(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// Active reports whether the token id still has a live session.
func (s *Service) Active(sessionID string) bool {
	_, ok := s.Session(sessionID)
	return ok
}

// Logout ends the session and runs logout hooks. Unknown sessions are a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	hooks := append([]LogoutHook(nil), s.hooks...)
	s.mu.Unlock()
	if !ok {
		return
	}

	var userID string
	if st := session.State(); st.User != nil {
		userID = st.User.ID
	}
	session.Logout(ctx)
	s.logg.Info(s.logg.WithUserID(ctx, userID), "user logged out")
	for _, hook := range hooks {
		hook(ctx, userID)
	}
}

func (s *Service) UpdateProfile(ctx context.Context, sessionID string, upd ProfileUpdate) Result {
	session, ok := s.Session(sessionID)
	if !ok {
		return Result{Error: "session not found"}
	}
	return session.UpdateProfile(ctx, upd)
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	user, err := s.directory.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
