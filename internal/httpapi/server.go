package httpapi

import (
	"net/http"

	"github.com/rs/cors"

	healthhandler "github.com/ArtemkaGoldMan/estate-hub-sub001/internal/health/handler"
)

// NewMux registers all REST routes on a fresh mux. The health handler is
// mounted alongside so a single listener serves both.
func NewMux(h *Handler, health *healthhandler.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user-registration", h.RegisterUser)
	mux.HandleFunc("PATCH /confirm-email", h.ConfirmEmail)
	mux.HandleFunc("POST /resend-confirmation", h.ResendConfirmation)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /refresh-access-token", h.RefreshAccessToken)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("POST /forgot-password", h.ForgotPassword)
	mux.HandleFunc("PUT /reset-password", h.ResetPassword)
	mux.HandleFunc("PUT /manage-account-state", h.ManageAccountState)
	mux.HandleFunc("PATCH /confirm-account-action", h.ConfirmAccountAction)
	mux.HandleFunc("GET /user-id-from-token", h.UserIDFromToken)
	mux.HandleFunc("PATCH /profile", h.UpdateProfile)
	mux.HandleFunc("PUT /assign-role", h.AssignRole)

	if health != nil {
		mux.Handle("GET /health", health)
	}

	return mux
}

// WithCORS wraps the mux with a CORS policy. Credentials are allowed because
// the refresh token rides in a cookie.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return next
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(next)
}
