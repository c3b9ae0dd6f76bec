package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	actiondomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/accountaction/domain"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/mail"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/security"
	sessionrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/repository"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/store"
	userdomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// Sentinel errors for the auth service; handlers map them to HTTP problem
// responses and gRPC codes. Session mismatches and missing sessions share
// one error so callers cannot probe which tokens exist.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailNotConfirmed      = errors.New("email address not confirmed")
	ErrWeakPassword           = errors.New("password must be between 8 and 72 characters")
	ErrInvalidSession         = errors.New("invalid or expired session")
	ErrInvalidActionToken     = errors.New("invalid or expired action token")
	ErrUserNotFound           = errors.New("user not found")
)

// AuthResult is the outcome of any operation that opens or refreshes a
// session: the authenticated user plus the session's token pair.
type AuthResult struct {
	User             *userdomain.User
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AuthService implements registration, email confirmation, login, token
// refresh, logout, password reset and account state management. Every
// operation runs in a single database transaction through the store.
type AuthService struct {
	store        store.Store
	codec        *security.TokenCodec
	hasher       *security.Hasher
	mailer       mail.Sender
	requireEmail bool
}

// NewAuthService returns an AuthService with the given dependencies. When
// requireEmailConfirmation is set, new accounts cannot log in until the
// emailed confirmation link is redeemed.
func NewAuthService(st store.Store, codec *security.TokenCodec, hasher *security.Hasher, mailer mail.Sender, requireEmailConfirmation bool) *AuthService {
	return &AuthService{
		store:        st,
		codec:        codec,
		hasher:       hasher,
		mailer:       mailer,
		requireEmail: requireEmailConfirmation,
	}
}

// Register creates a user account. The username is derived from the email
// local part and the password is stored as a bcrypt hash. When confirmation
// is required a confirmation link is emailed and no session is created (the
// returned AuthResult is nil); otherwise the account is logged in right away.
func (s *AuthService) Register(ctx context.Context, email, password, displayName, phone string, avatar []byte) (*userdomain.User, *AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}
	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, nil, err
	}

	var created *userdomain.User
	var session *AuthResult
	var confirmToken string
	err = s.store.InTx(ctx, func(r store.Repos) error {
		existing, err := r.Users.GetByEmail(ctx, email, true)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyRegistered
		}

		id := uuid.NewString()
		u := &userdomain.User{
			ID:             id,
			Email:          email,
			Username:       userdomain.GenerateUsername(email, id),
			DisplayName:    displayName,
			PasswordHash:   hash,
			Role:           userdomain.RoleUser,
			Phone:          phone,
			Avatar:         avatar,
			EmailConfirmed: !s.requireEmail,
		}
		created, err = r.Users.Create(ctx, u)
		if err != nil {
			return err
		}

		if s.requireEmail {
			confirmToken, err = s.issueActionToken(ctx, r, created.ID, actiondomain.PurposeConfirmEmail)
			return err
		}
		session, err = s.openSession(ctx, r, created)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if confirmToken != "" {
		if err := s.mailer.SendEmailConfirmation(ctx, created.Email, confirmToken); err != nil {
			return nil, nil, err
		}
	}
	return created, session, nil
}

// ConfirmEmail redeems an emailed confirmation token, marks the account's
// email verified and opens the account's first session. The token is single
// use.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*AuthResult, error) {
	var result *AuthResult
	err := s.store.InTx(ctx, func(r store.Repos) error {
		rec, err := s.consumeActionToken(ctx, r, token, actiondomain.PurposeConfirmEmail)
		if err != nil {
			return err
		}
		if err := r.Users.ConfirmEmail(ctx, rec.UserID); err != nil {
			return err
		}
		u, err := r.Users.GetByID(ctx, rec.UserID, false)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrInvalidActionToken
		}
		result, err = s.openSession(ctx, r, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login authenticates the email/password pair and opens a fresh session. The
// session id is assigned by the store and embedded in both tokens before the
// token pair is written back, all within one transaction.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var result *AuthResult
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByEmail(ctx, email, false)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrInvalidCredentials
		}
		if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		if s.requireEmail && !u.EmailConfirmed {
			return ErrEmailNotConfirmed
		}
		result, err = s.openSession(ctx, r, u)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access token.
// The refresh token and session expiration are preserved; only the access
// token is rotated. The presented token must decode, a session must hold
// exactly that token, its row must match the token's user and session claims
// and it must not be expired. All failures collapse into ErrInvalidSession so
// the response does not reveal which check tripped.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	info, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, ErrInvalidSession
	}

	var result *AuthResult
	err = s.store.InTx(ctx, func(r store.Repos) error {
		sess, err := r.Sessions.GetByRefreshToken(ctx, refreshToken)
		if err != nil {
			return err
		}
		if sess == nil || sess.ID != info.SessionID || sess.UserID != info.UserID ||
			!sess.ExpiresAt.After(time.Now()) {
			return ErrInvalidSession
		}
		u, err := r.Users.GetByID(ctx, sess.UserID, false)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrInvalidSession
		}

		access, accessExp, err := s.codec.CreateAccessToken(tokenInfo(u, sess.ID))
		if err != nil {
			return err
		}
		if err := r.Sessions.Update(ctx, sess.ID, access, sess.RefreshToken, sess.ExpiresAt); err != nil {
			return err
		}
		result = &AuthResult{
			User:             u,
			AccessToken:      access,
			RefreshToken:     sess.RefreshToken,
			AccessExpiresAt:  accessExp,
			RefreshExpiresAt: sess.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Logout removes the session holding the refresh token. ErrInvalidSession is
// returned when no such session exists; callers clear client state either
// way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.store.InTx(ctx, func(r store.Repos) error {
		err := r.Sessions.Delete(ctx, refreshToken)
		if errors.Is(err, sessionrepo.ErrNotFound) {
			return ErrInvalidSession
		}
		return err
	})
}

// ResendConfirmation re-issues the confirmation email for an unconfirmed
// account. Like ForgotPassword it succeeds silently for unknown or already
// confirmed emails so the endpoint cannot be used to probe registrations.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var confirmToken, to string
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByEmail(ctx, email, false)
		if err != nil {
			return err
		}
		if u == nil || u.EmailConfirmed {
			return nil
		}
		if err := r.ActionTokens.DeleteByUser(ctx, u.ID, actiondomain.PurposeConfirmEmail); err != nil {
			return err
		}
		confirmToken, err = s.issueActionToken(ctx, r, u.ID, actiondomain.PurposeConfirmEmail)
		to = u.Email
		return err
	})
	if err != nil {
		return err
	}
	if confirmToken == "" {
		return nil
	}
	return s.mailer.SendEmailConfirmation(ctx, to, confirmToken)
}

// ForgotPassword issues a password reset link for the account with the given
// email. Unknown addresses are silently accepted so the endpoint cannot be
// used to probe which emails are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var resetToken, to string
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByEmail(ctx, email, false)
		if err != nil {
			return err
		}
		if u == nil {
			return nil
		}
		if err := r.ActionTokens.DeleteByUser(ctx, u.ID, actiondomain.PurposeResetPassword); err != nil {
			return err
		}
		resetToken, err = s.issueActionToken(ctx, r, u.ID, actiondomain.PurposeResetPassword)
		to = u.Email
		return err
	})
	if err != nil {
		return err
	}
	if resetToken == "" {
		return nil
	}
	return s.mailer.SendPasswordReset(ctx, to, resetToken)
}

// ResetPassword redeems a reset token, stores the new password hash and
// revokes every session of the account.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash([]byte(newPassword))
	if err != nil {
		return err
	}
	return s.store.InTx(ctx, func(r store.Repos) error {
		rec, err := s.consumeActionToken(ctx, r, token, actiondomain.PurposeResetPassword)
		if err != nil {
			return err
		}
		if err := r.Users.UpdatePassword(ctx, rec.UserID, hash); err != nil {
			return err
		}
		return r.Sessions.DeleteByUser(ctx, rec.UserID)
	})
}

// RequestAccountStateChange emails a confirmation link for toggling the
// account between active and deleted. The direction of the toggle is decided
// when the link is redeemed, from the account's state at that moment.
func (s *AuthService) RequestAccountStateChange(ctx context.Context, userID string) error {
	var actionToken, to string
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByID(ctx, userID, true)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if err := r.ActionTokens.DeleteByUser(ctx, u.ID, actiondomain.PurposeManageAccount); err != nil {
			return err
		}
		actionToken, err = s.issueActionToken(ctx, r, u.ID, actiondomain.PurposeManageAccount)
		to = u.Email
		return err
	})
	if err != nil {
		return err
	}
	return s.mailer.SendAccountStateChange(ctx, to, actionToken)
}

// ConfirmAccountAction redeems an account state change token. An active
// account is soft deleted and all of its sessions revoked; a deleted account
// is recovered.
func (s *AuthService) ConfirmAccountAction(ctx context.Context, token string) error {
	return s.store.InTx(ctx, func(r store.Repos) error {
		rec, err := s.consumeActionToken(ctx, r, token, actiondomain.PurposeManageAccount)
		if err != nil {
			return err
		}
		u, err := r.Users.GetByID(ctx, rec.UserID, true)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if u.IsDeleted {
			return r.Users.Recover(ctx, u.ID)
		}
		if err := r.Users.SoftDelete(ctx, u.ID); err != nil {
			return err
		}
		return r.Sessions.DeleteByUser(ctx, u.ID)
	})
}

// UserIDFromToken resolves an access token to the user id it was issued for.
// The token must decode and its session must still exist and hold exactly
// that access token.
func (s *AuthService) UserIDFromToken(ctx context.Context, accessToken string) (string, error) {
	info, err := s.codec.Decode(accessToken)
	if err != nil {
		return "", ErrInvalidSession
	}
	var userID string
	err = s.store.InTx(ctx, func(r store.Repos) error {
		sess, err := r.Sessions.GetByID(ctx, info.SessionID)
		if err != nil {
			return err
		}
		if sess == nil || sess.AccessToken != accessToken || !sess.ExpiresAt.After(time.Now()) {
			return ErrInvalidSession
		}
		userID = sess.UserID
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// GetUserByID returns the user with the given id. Soft-deleted accounts are
// included only when includeDeleted is set.
func (s *AuthService) GetUserByID(ctx context.Context, id string, includeDeleted bool) (*userdomain.User, error) {
	var u *userdomain.User
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		u, err = r.Users.GetByID(ctx, id, includeDeleted)
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetUsersByIDs returns the users matching ids. Ids with no matching account
// are absent from the result rather than an error.
func (s *AuthService) GetUsersByIDs(ctx context.Context, ids []string, includeDeleted bool) ([]*userdomain.User, error) {
	var users []*userdomain.User
	err := s.store.InTx(ctx, func(r store.Repos) error {
		var err error
		users, err = r.Users.GetByIDs(ctx, ids, includeDeleted)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile overwrites the user's display name, phone and avatar after
// validating them.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, displayName, phone string, avatar []byte) (*userdomain.User, error) {
	if err := userdomain.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := userdomain.ValidateAvatar(avatar); err != nil {
		return nil, err
	}
	var updated *userdomain.User
	err := s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByID(ctx, userID, false)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		if err := r.Users.UpdateProfile(ctx, userID, displayName, phone, avatar); err != nil {
			return err
		}
		updated, err = r.Users.GetByID(ctx, userID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AssignRole changes the target user's role. Authorization is enforced at
// the boundary; here only the role value and target existence are checked.
func (s *AuthService) AssignRole(ctx context.Context, targetID string, role userdomain.Role) error {
	if !role.Valid() {
		return userdomain.ErrInvalidRole
	}
	return s.store.InTx(ctx, func(r store.Repos) error {
		u, err := r.Users.GetByID(ctx, targetID, false)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		return r.Users.AssignRole(ctx, targetID, role)
	})
}

// openSession creates a session row, mints the token pair carrying the
// store-assigned session id, and writes the pair back. Must run inside the
// caller's transaction.
func (s *AuthService) openSession(ctx context.Context, r store.Repos, u *userdomain.User) (*AuthResult, error) {
	refreshExp := time.Now().Add(security.RefreshTTL)
	sess, err := r.Sessions.Create(ctx, u.ID, refreshExp)
	if err != nil {
		return nil, err
	}

	info := tokenInfo(u, sess.ID)
	access, accessExp, err := s.codec.CreateAccessToken(info)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.codec.CreateRefreshToken(info)
	if err != nil {
		return nil, err
	}

	sess.AccessToken = access
	sess.RefreshToken = refresh
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	if err := r.Sessions.Update(ctx, sess.ID, access, refresh, sess.ExpiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{
		User:             u,
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: sess.ExpiresAt,
	}, nil
}

// issueActionToken creates a one-time token record for the user and returns
// the raw secret. Only the hash is persisted. Expired rows are swept on every
// issuance so the table does not accumulate dead tokens.
func (s *AuthService) issueActionToken(ctx context.Context, r store.Repos, userID string, purpose actiondomain.Purpose) (string, error) {
	if _, err := r.ActionTokens.DeleteExpired(ctx); err != nil {
		return "", err
	}
	raw, err := security.GenerateActionToken()
	if err != nil {
		return "", err
	}
	_, err = r.ActionTokens.Create(ctx, &actiondomain.Token{
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: security.HashActionToken(raw),
		ExpiresAt: time.Now().Add(purpose.TTL()),
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}

// consumeActionToken looks up a raw token by hash, verifies purpose and
// expiry, and deletes it so it cannot be redeemed twice.
func (s *AuthService) consumeActionToken(ctx context.Context, r store.Repos, raw string, purpose actiondomain.Purpose) (*actiondomain.Token, error) {
	rec, err := r.ActionTokens.GetByHash(ctx, security.HashActionToken(raw), purpose)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Expired(time.Now()) {
		return nil, ErrInvalidActionToken
	}
	if err := r.ActionTokens.Delete(ctx, rec.ID); err != nil {
		return nil, err
	}
	return rec, nil
}

func tokenInfo(u *userdomain.User, sessionID string) security.UserInfo {
	return security.UserInfo{
		Name:      u.Username,
		UserID:    u.ID,
		Role:      string(u.Role),
		SessionID: sessionID,
	}
}

func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return ErrWeakPassword
	}
	return nil
}
