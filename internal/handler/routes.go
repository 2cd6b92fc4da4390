package handler

import (
	"net/http"

	"github.com/msomdec/careerforge/internal/service"
)

// Services bundles the services the routes depend on.
type Services struct {
	Auth        *service.AuthService
	ATS         *service.ATSService
	CoverLetter *service.CoverLetterService
	LinkedIn    *service.LinkedInService
	Roast       *service.RoastService
	Negotiation *service.NegotiationService
	// Limiter throttles model-backed requests per user.
	Limiter *service.TokenBucket
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services, cookieSecure bool) {
	authHandler := NewAuthHandler(svc.Auth, cookieSecure)
	atsHandler := NewATSHandler(svc.ATS)
	coverLetterHandler := NewCoverLetterHandler(svc.CoverLetter)
	linkedInHandler := NewLinkedInHandler(svc.LinkedIn)
	roastHandler := NewRoastHandler(svc.Roast)
	negotiationHandler := NewNegotiationHandler(svc.Negotiation)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(svc.Auth, h)
	}
	// limited routes call the model.
	limited := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(svc.Auth, RateLimit(svc.Limiter, h))
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /", OptionalAuth(svc.Auth, http.HandlerFunc(HandleHome)))

	// Built-in identity provider.
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLoginForm)
	mux.HandleFunc("GET /register", authHandler.HandleRegisterPage)
	mux.HandleFunc("POST /register", authHandler.HandleRegisterForm)
	mux.HandleFunc("POST /logout", authHandler.HandleLogoutForm)

	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.HandleMe))

	mux.Handle("GET /ats", requireAuth(atsHandler.HandlePage))
	mux.Handle("POST /ats", limited(atsHandler.HandleScan))
	mux.Handle("POST /api/ats", limited(atsHandler.HandleAnalyze))

	mux.Handle("GET /cover-letter", requireAuth(coverLetterHandler.HandlePage))
	mux.Handle("POST /cover-letter", limited(coverLetterHandler.HandleGenerate))
	mux.Handle("GET /cover-letter/pdf", requireAuth(coverLetterHandler.HandleDownloadPDF))
	mux.Handle("POST /api/cover-letter", limited(coverLetterHandler.HandleGenerateJSON))

	mux.Handle("GET /linkedin", requireAuth(linkedInHandler.HandlePage))
	mux.Handle("POST /linkedin", limited(linkedInHandler.HandleGenerate))
	mux.Handle("POST /api/linkedin", limited(linkedInHandler.HandleGenerateJSON))

	mux.Handle("GET /roast", requireAuth(roastHandler.HandlePage))
	mux.Handle("POST /roast", limited(roastHandler.HandleRoast))
	mux.Handle("POST /api/roast", limited(roastHandler.HandleRoastJSON))
	mux.Handle("GET /api/roast/latest", requireAuth(roastHandler.HandleLatestJSON))

	mux.Handle("GET /negotiation", requireAuth(negotiationHandler.HandlePage))
	mux.Handle("POST /negotiation/send", limited(negotiationHandler.HandleSend))
	mux.Handle("POST /negotiation/reset", requireAuth(negotiationHandler.HandleReset))
}
