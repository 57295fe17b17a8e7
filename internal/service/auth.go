package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"onboardly.app/portal/common/id"
	"onboardly.app/portal/core/config"
	"onboardly.app/portal/internal/model"
	"onboardly.app/portal/internal/store"
)

const SessionDuration = 7 * 24 * time.Hour

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrAdminNotFound  = errors.New("admin not found")
	ErrSessionExpired = errors.New("session expired")
)

// WorkOSClient is the slice of the WorkOS user management API used for admin
// sign-in.
type WorkOSClient interface {
	GetAuthorizationURL(opts usermanagement.GetAuthorizationURLOpts) (string, error)
	AuthenticateWithCode(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error)
}

type workOSClient struct{}

// NewWorkOSClient configures the package level WorkOS client with apiKey.
func NewWorkOSClient(apiKey string) WorkOSClient {
	usermanagement.SetAPIKey(apiKey)
	return workOSClient{}
}

func (workOSClient) GetAuthorizationURL(opts usermanagement.GetAuthorizationURLOpts) (string, error) {
	u, err := usermanagement.GetAuthorizationURL(opts)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (workOSClient) AuthenticateWithCode(ctx context.Context, opts usermanagement.AuthenticateWithCodeOpts) (usermanagement.AuthenticateResponse, error) {
	return usermanagement.AuthenticateWithCode(ctx, opts)
}

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.Admin, *model.Session, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.Admin, error)
	Logout(ctx context.Context, sessionID int64) error
}

type authService struct {
	adminStore   store.AdminStore
	sessionStore store.SessionStore
	workos       WorkOSClient
	cfg          config.WorkOSConfig
}

func NewAuthService(
	adminStore store.AdminStore,
	sessionStore store.SessionStore,
	workos WorkOSClient,
	cfg config.WorkOSConfig,
) AuthService {
	return &authService{
		adminStore:   adminStore,
		sessionStore: sessionStore,
		workos:       workos,
		cfg:          cfg,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := s.workos.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.Admin, *model.Session, error) {
	authResponse, err := s.workos.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	workosUser := authResponse.User

	var avatarURL *string
	if workosUser.ProfilePictureURL != "" {
		avatarURL = &workosUser.ProfilePictureURL
	}

	admin := &model.Admin{
		ID:        id.New(),
		Name:      buildAdminName(workosUser),
		Email:     workosUser.Email,
		AvatarURL: avatarURL,
		WorkOSID:  &workosUser.ID,
	}

	if err := s.adminStore.UpsertByWorkOSID(ctx, admin); err != nil {
		slog.ErrorContext(ctx, "failed to upsert admin",
			"error", err,
			"email", admin.Email,
			"workos_id", workosUser.ID,
		)
		return nil, nil, fmt.Errorf("upserting admin: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		AdminID:   admin.ID,
		ExpiresAt: time.Now().Add(SessionDuration),
	}
	if authResponse.AccessToken != "" {
		if sid := workOSSessionID(authResponse.AccessToken); sid != "" {
			session.WorkOSSessionID = &sid
		}
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"admin_id", admin.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "admin authenticated",
		"admin_id", admin.ID,
		"email", admin.Email,
		"session_id", session.ID,
	)

	return admin, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.Admin, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	admin, err := s.adminStore.GetByID(ctx, session.AdminID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("getting admin: %w", err)
	}

	return admin, nil
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func buildAdminName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}

// workOSSessionID reads the sid claim of a WorkOS access token. The token came
// straight from WorkOS over TLS, so it is not verified here.
func workOSSessionID(accessToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
