package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	actiondomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/accountaction/domain"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/security"
	sessiondomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/domain"
	sessionrepo "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/session/repository"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/store"
	userdomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

type memUserRepo struct {
	mu   sync.Mutex
	byID map[string]*userdomain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*userdomain.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *userdomain.User) (*userdomain.User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string, includeDeleted bool) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok || (u.IsDeleted && !includeDeleted) {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string, includeDeleted bool) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			if u.IsDeleted && !includeDeleted {
				return nil, nil
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIDs(ctx context.Context, ids []string, includeDeleted bool) ([]*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*userdomain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok && (!u.IsDeleted || includeDeleted) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(ctx context.Context, id string, displayName, phone string, avatar []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.DisplayName = displayName
		u.Phone = phone
		u.Avatar = avatar
	}
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *memUserRepo) ConfirmEmail(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.EmailConfirmed = true
	}
	return nil
}

func (r *memUserRepo) AssignRole(ctx context.Context, id string, role userdomain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.Role = role
	}
	return nil
}

func (r *memUserRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		now := time.Now()
		u.IsDeleted = true
		u.DeletedAt = &now
		u.Avatar = nil
	}
	return nil
}

func (r *memUserRepo) Recover(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.IsDeleted = false
		u.DeletedAt = nil
	}
	return nil
}

type memSessionRepo struct {
	mu   sync.Mutex
	byID map[string]*sessiondomain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{byID: map[string]*sessiondomain.Session{}}
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*sessiondomain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*sessiondomain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.RefreshToken == refreshToken {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) Create(ctx context.Context, userID string, expiresAt time.Time) (*sessiondomain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &sessiondomain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	r.byID[s.ID] = s
	cp := *s
	return &cp, nil
}

func (r *memSessionRepo) Update(ctx context.Context, id, accessToken, refreshToken string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[id]; ok {
		s.AccessToken = accessToken
		s.RefreshToken = refreshToken
		s.ExpiresAt = expiresAt
	}
	return nil
}

func (r *memSessionRepo) Delete(ctx context.Context, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.byID {
		if s.RefreshToken == refreshToken {
			delete(r.byID, id)
			return nil
		}
	}
	return sessionrepo.ErrNotFound
}

func (r *memSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.byID {
		if s.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memActionRepo struct {
	mu   sync.Mutex
	byID map[string]*actiondomain.Token
}

func newMemActionRepo() *memActionRepo {
	return &memActionRepo{byID: map[string]*actiondomain.Token{}}
}

func (r *memActionRepo) Create(ctx context.Context, t *actiondomain.Token) (*actiondomain.Token, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	cp.ID = uuid.NewString()
	cp.CreatedAt = time.Now()
	r.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memActionRepo) GetByHash(ctx context.Context, hash string, purpose actiondomain.Purpose) (*actiondomain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.byID {
		if t.TokenHash == hash && t.Purpose == purpose {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memActionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memActionRepo) DeleteByUser(ctx context.Context, userID string, purpose actiondomain.Purpose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.byID {
		if t.UserID == userID && t.Purpose == purpose {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *memActionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for id, t := range r.byID {
		if t.Expired(now) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// memStore runs the callback directly against shared in-memory repos; there
// is no rollback, which is fine because the tests assert failures happen
// before any write.
type memStore struct {
	repos store.Repos
}

func (s *memStore) InTx(ctx context.Context, fn func(r store.Repos) error) error {
	return fn(s.repos)
}

type sentMail struct {
	kind  string
	to    string
	token string
}

type recorderMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recorderMailer) record(kind, to, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: kind, to: to, token: token})
}

func (m *recorderMailer) SendEmailConfirmation(ctx context.Context, to, token string) error {
	m.record("confirm", to, token)
	return nil
}

func (m *recorderMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	m.record("reset", to, token)
	return nil
}

func (m *recorderMailer) SendAccountStateChange(ctx context.Context, to, token string) error {
	m.record("state", to, token)
	return nil
}

func (m *recorderMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

func (m *recorderMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fixture struct {
	svc      *AuthService
	users    *memUserRepo
	sessions *memSessionRepo
	actions  *memActionRepo
	mailer   *recorderMailer
	codec    *security.TokenCodec
}

func newFixture(requireConfirmation bool) *fixture {
	users := newMemUserRepo()
	sessions := newMemSessionRepo()
	actions := newMemActionRepo()
	mailer := &recorderMailer{}
	codec := security.NewTestTokenCodec()
	st := &memStore{repos: store.Repos{Users: users, Sessions: sessions, ActionTokens: actions}}
	svc := NewAuthService(st, codec, security.NewHasher(4), mailer, requireConfirmation)
	return &fixture{svc: svc, users: users, sessions: sessions, actions: actions, mailer: mailer, codec: codec}
}

func (f *fixture) register(t *testing.T, email string) *userdomain.User {
	t.Helper()
	u, _, err := f.svc.Register(context.Background(), email, "s3cret-password", "Test User", "", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

// registerConfirmed registers and, when the fixture requires confirmation,
// redeems the emailed token. The session opened by the confirmation is logged
// out again so tests start from a confirmed account with no sessions.
func (f *fixture) registerConfirmed(t *testing.T, email string) *userdomain.User {
	t.Helper()
	u := f.register(t, email)
	if m, ok := f.mailer.last(); ok && m.kind == "confirm" {
		res, err := f.svc.ConfirmEmail(context.Background(), m.token)
		if err != nil {
			t.Fatalf("confirm email: %v", err)
		}
		if err := f.svc.Logout(context.Background(), res.RefreshToken); err != nil {
			t.Fatalf("logout confirmation session: %v", err)
		}
	}
	return u
}

func (f *fixture) login(t *testing.T, email string) *AuthResult {
	t.Helper()
	res, err := f.svc.Login(context.Background(), email, "s3cret-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return res
}

func TestRegister_CreatesUserWithoutSession(t *testing.T) {
	f := newFixture(true)
	u := f.register(t, "anna@example.com")

	if u.ID == "" || u.Username == "" {
		t.Errorf("expected assigned id and username, got %q / %q", u.ID, u.Username)
	}
	if u.EmailConfirmed {
		t.Error("new user should not be confirmed when confirmation is required")
	}
	if u.Role != userdomain.RoleUser {
		t.Errorf("expected default role user, got %q", u.Role)
	}
	if f.sessions.count() != 0 {
		t.Errorf("registration must not open a session, got %d", f.sessions.count())
	}
	m, ok := f.mailer.last()
	if !ok || m.kind != "confirm" || m.to != "anna@example.com" {
		t.Fatalf("expected confirmation mail to anna@example.com, got %+v", m)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(true)
	f.register(t, "anna@example.com")

	_, _, err := f.svc.Register(context.Background(), "Anna@Example.com", "s3cret-password", "", "", nil)
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	f := newFixture(true)
	_, _, err := f.svc.Register(context.Background(), "anna@example.com", "short", "", "", nil)
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLogin_RequiresConfirmedEmail(t *testing.T) {
	f := newFixture(true)
	f.register(t, "anna@example.com")

	_, err := f.svc.Login(context.Background(), "anna@example.com", "s3cret-password")
	if !errors.Is(err, ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}
	if f.sessions.count() != 0 {
		t.Error("failed login must not open a session")
	}
}

func TestConfirmEmail_OpensFirstSessionAndIsSingleUse(t *testing.T) {
	f := newFixture(true)
	u := f.register(t, "anna@example.com")
	m, _ := f.mailer.last()

	res, err := f.svc.ConfirmEmail(context.Background(), m.token)
	if err != nil {
		t.Fatalf("first redeem: %v", err)
	}
	if res.User.ID != u.ID {
		t.Errorf("result user = %q, want %q", res.User.ID, u.ID)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("confirmation must return a full token pair")
	}
	if f.sessions.count() != 1 {
		t.Errorf("session count = %d, want 1", f.sessions.count())
	}

	if _, err := f.svc.ConfirmEmail(context.Background(), m.token); !errors.Is(err, ErrInvalidActionToken) {
		t.Fatalf("expected ErrInvalidActionToken on second redeem, got %v", err)
	}
}

func TestLogin_OpensSessionBoundToTokens(t *testing.T) {
	f := newFixture(true)
	u := f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	if res.User.ID != u.ID {
		t.Errorf("result user = %q, want %q", res.User.ID, u.ID)
	}

	accessInfo, err := f.codec.Decode(res.AccessToken)
	if err != nil {
		t.Fatalf("decode access: %v", err)
	}
	refreshInfo, err := f.codec.Decode(res.RefreshToken)
	if err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if accessInfo.SessionID != refreshInfo.SessionID {
		t.Errorf("tokens carry different session ids: %q vs %q", accessInfo.SessionID, refreshInfo.SessionID)
	}
	if accessInfo.UserID != u.ID {
		t.Errorf("token user id = %q, want %q", accessInfo.UserID, u.ID)
	}

	sess, err := f.sessions.GetByID(context.Background(), accessInfo.SessionID)
	if err != nil || sess == nil {
		t.Fatalf("session %q not stored (err=%v)", accessInfo.SessionID, err)
	}
	if sess.AccessToken != res.AccessToken || sess.RefreshToken != res.RefreshToken {
		t.Error("stored session does not hold the issued token pair")
	}
}

func TestLogin_EachLoginOpensFreshSession(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")

	first := f.login(t, "anna@example.com")
	second := f.login(t, "anna@example.com")

	if first.RefreshToken == second.RefreshToken {
		t.Error("two logins reused a refresh token")
	}
	if f.sessions.count() != 2 {
		t.Errorf("expected 2 sessions, got %d", f.sessions.count())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")

	_, err := f.svc.Login(context.Background(), "anna@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")

	_, wrongPw := f.svc.Login(context.Background(), "anna@example.com", "wrong-password")
	_, unknown := f.svc.Login(context.Background(), "nobody@example.com", "wrong-password")
	if !errors.Is(wrongPw, ErrInvalidCredentials) || !errors.Is(unknown, ErrInvalidCredentials) {
		t.Fatalf("expected identical ErrInvalidCredentials, got %v / %v", wrongPw, unknown)
	}
}

func TestRefresh_RotatesAccessTokenOnly(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	time.Sleep(1100 * time.Millisecond) // jwt iat/exp have second granularity

	refreshed, err := f.svc.RefreshAccessToken(context.Background(), res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.AccessToken == res.AccessToken {
		t.Error("access token was not rotated")
	}
	if refreshed.RefreshToken != res.RefreshToken {
		t.Error("refresh token must be preserved across refresh")
	}
	if !refreshed.RefreshExpiresAt.Equal(res.RefreshExpiresAt) {
		t.Error("session expiration must not be extended by refresh")
	}

	info, err := f.codec.Decode(refreshed.AccessToken)
	if err != nil {
		t.Fatalf("decode rotated access token: %v", err)
	}
	sess, _ := f.sessions.GetByID(context.Background(), info.SessionID)
	if sess == nil || sess.AccessToken != refreshed.AccessToken {
		t.Error("stored session does not hold the rotated access token")
	}
	if sess.RefreshToken != res.RefreshToken {
		t.Error("stored refresh token changed during refresh")
	}
}

func TestRefresh_UnknownTokenFailsWithoutMutation(t *testing.T) {
	f := newFixture(true)
	u := f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	// A structurally valid token whose session does not exist.
	forged, _, err := f.codec.CreateRefreshToken(security.UserInfo{
		Name: u.Username, UserID: u.ID, Role: "user", SessionID: uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("forge token: %v", err)
	}
	if _, err := f.svc.RefreshAccessToken(context.Background(), forged); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	info, _ := f.codec.Decode(res.AccessToken)
	sess, _ := f.sessions.GetByID(context.Background(), info.SessionID)
	if sess == nil || sess.AccessToken != res.AccessToken {
		t.Error("existing session mutated by failed refresh")
	}
}

func TestRefresh_StoredTokenMismatch(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	first := f.login(t, "anna@example.com")

	info, _ := f.codec.Decode(first.RefreshToken)
	// Overwrite the stored pair, as a concurrent login through the same
	// session row would.
	if err := f.sessions.Update(context.Background(), info.SessionID, "other-access", "other-refresh", first.RefreshExpiresAt); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := f.svc.RefreshAccessToken(context.Background(), first.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on stored mismatch, got %v", err)
	}
}

func TestRefresh_ExpiredSession(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	info, _ := f.codec.Decode(res.RefreshToken)
	if err := f.sessions.Update(context.Background(), info.SessionID, res.AccessToken, res.RefreshToken, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := f.svc.RefreshAccessToken(context.Background(), res.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for expired session, got %v", err)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	f := newFixture(true)
	if _, err := f.svc.RefreshAccessToken(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	if err := f.svc.Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if f.sessions.count() != 0 {
		t.Error("logout did not remove the session")
	}
	if err := f.svc.Logout(context.Background(), res.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession on repeated logout, got %v", err)
	}
}

func TestResendConfirmation_ReissuesToken(t *testing.T) {
	f := newFixture(true)
	f.register(t, "anna@example.com")
	first, ok := f.mailer.last()
	if !ok || first.kind != "confirm" {
		t.Fatalf("expected confirmation mail, got %+v", first)
	}

	if err := f.svc.ResendConfirmation(context.Background(), "anna@example.com"); err != nil {
		t.Fatalf("resend confirmation: %v", err)
	}
	second, ok := f.mailer.last()
	if !ok || second.kind != "confirm" {
		t.Fatalf("expected confirmation mail, got %+v", second)
	}
	if second.token == first.token {
		t.Fatal("resend must issue a fresh token")
	}

	if _, err := f.svc.ConfirmEmail(context.Background(), first.token); !errors.Is(err, ErrInvalidActionToken) {
		t.Fatalf("superseded token should be invalid, got %v", err)
	}
	if _, err := f.svc.ConfirmEmail(context.Background(), second.token); err != nil {
		t.Fatalf("confirm with reissued token: %v", err)
	}
}

func TestResendConfirmation_SilentForUnknownOrConfirmed(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	sent := f.mailer.count()

	if err := f.svc.ResendConfirmation(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("resend confirmation: %v", err)
	}
	if err := f.svc.ResendConfirmation(context.Background(), "anna@example.com"); err != nil {
		t.Fatalf("resend confirmation: %v", err)
	}
	if f.mailer.count() != sent {
		t.Errorf("no mail should be sent for unknown or confirmed emails, got %d extra", f.mailer.count()-sent)
	}
}

func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture(true)
	if err := f.svc.ForgotPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if f.mailer.count() != 0 {
		t.Error("no mail should be sent for unknown email")
	}
}

func TestForgotPassword_SweepsExpiredActionTokens(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")

	stale := &actiondomain.Token{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		Purpose:   actiondomain.PurposeConfirmEmail,
		TokenHash: security.HashActionToken("stale-token"),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	f.actions.mu.Lock()
	f.actions.byID[stale.ID] = stale
	f.actions.mu.Unlock()

	if err := f.svc.ForgotPassword(context.Background(), "anna@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	f.actions.mu.Lock()
	_, kept := f.actions.byID[stale.ID]
	f.actions.mu.Unlock()
	if kept {
		t.Error("expired action token must be swept when a new one is issued")
	}
}

func TestResetPassword_RevokesAllSessions(t *testing.T) {
	f := newFixture(true)
	f.registerConfirmed(t, "anna@example.com")
	f.login(t, "anna@example.com")
	f.login(t, "anna@example.com")

	if err := f.svc.ForgotPassword(context.Background(), "anna@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	m, ok := f.mailer.last()
	if !ok || m.kind != "reset" {
		t.Fatalf("expected reset mail, got %+v", m)
	}

	if err := f.svc.ResetPassword(context.Background(), m.token, "new-password-123"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if f.sessions.count() != 0 {
		t.Errorf("reset must revoke all sessions, %d remain", f.sessions.count())
	}

	if _, err := f.svc.Login(context.Background(), "anna@example.com", "s3cret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "anna@example.com", "new-password-123"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := f.svc.ResetPassword(context.Background(), m.token, "another-password-1"); !errors.Is(err, ErrInvalidActionToken) {
		t.Fatalf("expected ErrInvalidActionToken on reuse, got %v", err)
	}
}

func TestAccountStateChange_DeleteAndRecover(t *testing.T) {
	f := newFixture(true)
	u := f.registerConfirmed(t, "anna@example.com")
	f.login(t, "anna@example.com")

	if err := f.svc.RequestAccountStateChange(context.Background(), u.ID); err != nil {
		t.Fatalf("request state change: %v", err)
	}
	m, _ := f.mailer.last()
	if m.kind != "state" {
		t.Fatalf("expected state change mail, got %+v", m)
	}
	if err := f.svc.ConfirmAccountAction(context.Background(), m.token); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}

	if _, err := f.svc.GetUserByID(context.Background(), u.ID, false); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("deleted user visible without includeDeleted: %v", err)
	}
	got, err := f.svc.GetUserByID(context.Background(), u.ID, true)
	if err != nil {
		t.Fatalf("deleted user not visible with includeDeleted: %v", err)
	}
	if !got.IsDeleted || got.DeletedAt == nil {
		t.Error("expected IsDeleted and DeletedAt set")
	}
	if f.sessions.count() != 0 {
		t.Error("soft delete must revoke sessions")
	}
	if _, err := f.svc.Login(context.Background(), "anna@example.com", "s3cret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deleted account can still log in: %v", err)
	}

	// Recover through a second emailed link.
	if err := f.svc.RequestAccountStateChange(context.Background(), u.ID); err != nil {
		t.Fatalf("request recover: %v", err)
	}
	m, _ = f.mailer.last()
	if err := f.svc.ConfirmAccountAction(context.Background(), m.token); err != nil {
		t.Fatalf("confirm recover: %v", err)
	}
	if _, err := f.svc.GetUserByID(context.Background(), u.ID, false); err != nil {
		t.Fatalf("recovered user not visible: %v", err)
	}
}

func TestUserIDFromToken(t *testing.T) {
	f := newFixture(true)
	u := f.registerConfirmed(t, "anna@example.com")
	res := f.login(t, "anna@example.com")

	id, err := f.svc.UserIDFromToken(context.Background(), res.AccessToken)
	if err != nil {
		t.Fatalf("resolve token: %v", err)
	}
	if id != u.ID {
		t.Errorf("resolved id = %q, want %q", id, u.ID)
	}

	if err := f.svc.Logout(context.Background(), res.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.svc.UserIDFromToken(context.Background(), res.AccessToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession after logout, got %v", err)
	}
}

func TestGetUsersByIDs_SkipsMissingAndDeleted(t *testing.T) {
	f := newFixture(false)
	a := f.register(t, "a@example.com")
	b := f.register(t, "b@example.com")
	if err := f.users.SoftDelete(context.Background(), b.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	got, err := f.svc.GetUsersByIDs(context.Background(), []string{a.ID, b.ID, uuid.NewString()}, false)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("expected only %q, got %d users", a.ID, len(got))
	}

	got, err = f.svc.GetUsersByIDs(context.Background(), []string{a.ID, b.ID}, true)
	if err != nil {
		t.Fatalf("get users incl deleted: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users with includeDeleted, got %d", len(got))
	}
}

func TestRegister_NoConfirmationRequiredLogsInImmediately(t *testing.T) {
	f := newFixture(false)
	u, session, err := f.svc.Register(context.Background(), "anna@example.com", "s3cret-password", "Test User", "", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !u.EmailConfirmed {
		t.Error("user should be confirmed immediately when confirmation is disabled")
	}
	if f.mailer.count() != 0 {
		t.Error("no confirmation mail expected when confirmation is disabled")
	}
	if session == nil || session.AccessToken == "" || session.RefreshToken == "" {
		t.Fatalf("expected an immediate session with a token pair, got %+v", session)
	}
	if f.sessions.count() != 1 {
		t.Errorf("session count = %d, want 1", f.sessions.count())
	}
	if _, err := f.svc.Login(context.Background(), "anna@example.com", "s3cret-password"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(false)
	u := f.register(t, "anna@example.com")

	got, err := f.svc.UpdateProfile(context.Background(), u.ID, "Anna K", "+48123456789", nil)
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if got.DisplayName != "Anna K" || got.Phone != "+48123456789" {
		t.Errorf("profile not updated: %+v", got)
	}

	longName := make([]byte, userdomain.MaxDisplayNameLength+1)
	for i := range longName {
		longName[i] = 'a'
	}
	if _, err := f.svc.UpdateProfile(context.Background(), u.ID, string(longName), "", nil); !errors.Is(err, userdomain.ErrDisplayNameTooLong) {
		t.Fatalf("expected ErrDisplayNameTooLong, got %v", err)
	}
}

func TestAssignRole(t *testing.T) {
	f := newFixture(false)
	u := f.register(t, "anna@example.com")

	if err := f.svc.AssignRole(context.Background(), u.ID, userdomain.RoleAdmin); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	got, err := f.svc.GetUserByID(context.Background(), u.ID, false)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Role != userdomain.RoleAdmin {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if err := f.svc.AssignRole(context.Background(), u.ID, userdomain.Role("owner")); !errors.Is(err, userdomain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if err := f.svc.AssignRole(context.Background(), uuid.NewString(), userdomain.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
