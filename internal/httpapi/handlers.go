package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/auth/service"
	"github.com/ArtemkaGoldMan/estate-hub-sub001/internal/security"
	userdomain "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/user/domain"
)

// AuthService is the subset of the auth service used by the REST boundary.
type AuthService interface {
	Register(ctx context.Context, email, password, displayName, phone string, avatar []byte) (*userdomain.User, *service.AuthResult, error)
	ConfirmEmail(ctx context.Context, token string) (*service.AuthResult, error)
	ResendConfirmation(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*service.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	RequestAccountStateChange(ctx context.Context, userID string) error
	ConfirmAccountAction(ctx context.Context, token string) error
	UserIDFromToken(ctx context.Context, accessToken string) (string, error)
	UpdateProfile(ctx context.Context, userID, displayName, phone string, avatar []byte) (*userdomain.User, error)
	AssignRole(ctx context.Context, targetID string, role userdomain.Role) error
}

// Handler serves the REST auth API. The refresh token travels only in the
// ApplicationCookie; access tokens travel in Authorization headers and
// response bodies.
type Handler struct {
	auth          AuthService
	codec         *security.TokenCodec
	secureCookies bool
}

// NewHandler returns a Handler. secureCookies should be set outside local
// development so the refresh cookie is marked Secure.
func NewHandler(auth AuthService, codec *security.TokenCodec, secureCookies bool) *Handler {
	return &Handler{auth: auth, codec: codec, secureCookies: secureCookies}
}

// AuthenticationResponse is returned by login and refresh. The refresh token
// is deliberately absent; it is set as a cookie instead.
type AuthenticationResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	AccessToken string `json:"accessToken"`
	Avatar      []byte `json:"avatar,omitempty"`
}

func authResponse(res *service.AuthResult) AuthenticationResponse {
	return AuthenticationResponse{
		ID:          res.User.ID,
		Email:       res.User.Email,
		DisplayName: res.User.DisplayName,
		Role:        string(res.User.Role),
		AccessToken: res.AccessToken,
		Avatar:      res.User.Avatar,
	}
}

type userResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	Role           string `json:"role"`
	Phone          string `json:"phone,omitempty"`
	Avatar         []byte `json:"avatar,omitempty"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Role:           string(u.Role),
		Phone:          u.Phone,
		Avatar:         u.Avatar,
		EmailConfirmed: u.EmailConfirmed,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, r, http.StatusBadRequest, CodeValidation, "invalid request body")
		return false
	}
	return true
}

// bearerToken returns the access token from the Authorization header, or "".
func bearerToken(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(v) < len(prefix) || !strings.EqualFold(v[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(v[len(prefix):])
}

// identity decodes the caller's access token. Handlers that need a live
// session additionally go through the auth service.
func (h *Handler) identity(r *http.Request) (*security.UserInfo, bool) {
	token := bearerToken(r)
	if token == "" {
		return nil, false
	}
	info, err := h.codec.Decode(token)
	if err != nil {
		return nil, false
	}
	return info, true
}

// RegisterUser handles POST /user-registration.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
		Phone       string `json:"phone"`
		Avatar      []byte `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u, session, err := h.auth.Register(r.Context(), req.Email, req.Password, req.DisplayName, req.Phone, req.Avatar)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	// Without a confirmation requirement registration logs the account in
	// immediately; otherwise the session only opens at email confirmation.
	if session != nil {
		setRefreshCookie(w, session.RefreshToken, session.RefreshExpiresAt, h.secureCookies)
		writeJSON(w, http.StatusCreated, authResponse(session))
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// ConfirmEmail handles PATCH /confirm-email. A successful confirmation opens
// the account's first session, so the response mirrors login.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token, ok := actionTokenFrom(w, r)
	if !ok {
		return
	}
	res, err := h.auth.ConfirmEmail(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	setRefreshCookie(w, res.RefreshToken, res.RefreshExpiresAt, h.secureCookies)
	writeJSON(w, http.StatusOK, authResponse(res))
}

// ResendConfirmation handles POST /resend-confirmation. Always 202 so the
// endpoint reveals nothing about which emails are registered.
func (h *Handler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.ResendConfirmation(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Login handles POST /login. On success the refresh token is set as the
// ApplicationCookie and the access token is returned in the body.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	setRefreshCookie(w, res.RefreshToken, res.RefreshExpiresAt, h.secureCookies)
	writeJSON(w, http.StatusOK, authResponse(res))
}

// RefreshAccessToken handles POST /refresh-access-token. A failed refresh
// clears the cookie so clients fall back to login.
func (h *Handler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookieName)
	if err != nil || c.Value == "" {
		clearRefreshCookie(w, h.secureCookies)
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "missing refresh token")
		return
	}
	res, err := h.auth.RefreshAccessToken(r.Context(), c.Value)
	if err != nil {
		clearRefreshCookie(w, h.secureCookies)
		writeServiceError(w, r, err)
		return
	}
	setRefreshCookie(w, res.RefreshToken, res.RefreshExpiresAt, h.secureCookies)
	writeJSON(w, http.StatusOK, authResponse(res))
}

// Logout handles POST /logout. The cookie is cleared unconditionally, but a
// missing or unknown refresh token still reports the invalid session so the
// caller learns nothing was revoked server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clearRefreshCookie(w, h.secureCookies)
	c, err := r.Cookie(RefreshCookieName)
	if err != nil || c.Value == "" {
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "missing refresh token")
		return
	}
	if err := h.auth.Logout(r.Context(), c.Value); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ForgotPassword handles POST /forgot-password. Always 202 for known and
// unknown emails alike.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ResetPassword handles PUT /reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		writeProblem(w, r, http.StatusBadRequest, CodeValidation, "token is required")
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ManageAccountState handles PUT /manage-account-state. The caller asks for
// their own account to be toggled; the change only lands after the emailed
// link is confirmed.
func (h *Handler) ManageAccountState(w http.ResponseWriter, r *http.Request) {
	info, ok := h.identity(r)
	if !ok {
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "authentication required")
		return
	}
	if err := h.auth.RequestAccountStateChange(r.Context(), info.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ConfirmAccountAction handles PATCH /confirm-account-action.
func (h *Handler) ConfirmAccountAction(w http.ResponseWriter, r *http.Request) {
	token, ok := actionTokenFrom(w, r)
	if !ok {
		return
	}
	if err := h.auth.ConfirmAccountAction(r.Context(), token); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserIDFromToken handles GET /user-id-from-token.
func (h *Handler) UserIDFromToken(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "authentication required")
		return
	}
	userID, err := h.auth.UserIDFromToken(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"userId": userID})
}

// UpdateProfile handles PATCH /profile for the authenticated user.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	info, ok := h.identity(r)
	if !ok {
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "authentication required")
		return
	}
	var req struct {
		DisplayName string `json:"displayName"`
		Phone       string `json:"phone"`
		Avatar      []byte `json:"avatar"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.auth.UpdateProfile(r.Context(), info.UserID, req.DisplayName, req.Phone, req.Avatar)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// AssignRole handles PUT /assign-role. Admin only.
func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	info, ok := h.identity(r)
	if !ok {
		writeProblem(w, r, http.StatusUnauthorized, CodeInvalidSession, "authentication required")
		return
	}
	if userdomain.Role(info.Role) != userdomain.RoleAdmin {
		writeProblem(w, r, http.StatusForbidden, CodePermissionDenied, "admin role required")
		return
	}
	var req struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.AssignRole(r.Context(), req.UserID, userdomain.Role(req.Role)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// actionTokenFrom reads the one-time token from the body ({"token": ...}) or
// the token query parameter, so emailed links can hit the endpoint directly.
func actionTokenFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	if t := r.URL.Query().Get("token"); t != "" {
		return t, true
	}
	var req struct {
		Token string `json:"token"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Token != "" {
			return req.Token, true
		}
	}
	writeProblem(w, r, http.StatusBadRequest, CodeValidation, "token is required")
	return "", false
}
