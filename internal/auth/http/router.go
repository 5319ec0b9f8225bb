package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quickplate/quickplate/internal/auth/flow"
	"github.com/quickplate/quickplate/internal/auth/oauth"
	"github.com/quickplate/quickplate/internal/auth/service"
	"github.com/quickplate/quickplate/internal/auth/store"
	"github.com/quickplate/quickplate/pkg/httpx"
	"github.com/quickplate/quickplate/pkg/jwtx"
	"github.com/quickplate/quickplate/pkg/slogx"

	_ "github.com/quickplate/quickplate/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     *jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	Flow     *flow.Manager
	Sessions *service.SessionService
	SSO      *oauth.Client

	// FrontendURL is where callback redirects land (the SPA).
	FrontendURL string
}

func NewRouter(
	verifier *jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		FrontendURL:  "/",
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerFlow()
	r.registerSSO()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Quickplate Authentication Service API
//	@version		0.1.0
//	@description	Multi-path authentication for the Quickplate product: password login,
//	@description	signup with emailed OTP verification, password reset, and OAuth 2.0
//	@description	Authorization Code + PKCE SSO (google, facebook, github).
//
//	@contact.name				Quickplate Team
//	@contact.url				https://github.com/quickplate/quickplate
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session JWT. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerFlow() {
	h := &FlowHandler{Flow: r.Flow}

	// Credential submissions get the strict profile to slow brute force.
	strict := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.StrictLimit))
	}
	moderate := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.ModerateLimit))
	}

	r.Mux.Handle("POST /v1/auth/login", strict(h.HandleLogin))
	r.Mux.Handle("POST /v1/auth/signup", strict(h.HandleSignup))
	r.Mux.Handle("POST /v1/auth/otp/verify", strict(h.HandleOTPVerify))
	r.Mux.Handle("POST /v1/auth/otp/resend", strict(h.HandleOTPResend))
	r.Mux.Handle("POST /v1/auth/forgot", strict(h.HandleForgot))
	r.Mux.Handle("POST /v1/auth/password", strict(h.HandleNewPassword))

	r.Mux.Handle("POST /v1/auth/back", moderate(h.HandleBack))
	r.Mux.Handle("POST /v1/auth/goto", moderate(h.HandleGoto))
	r.Mux.Handle("POST /v1/auth/logout", moderate(h.HandleLogout))

	r.Mux.Handle("GET /v1/auth/state",
		httpx.Chain(http.HandlerFunc(h.HandleState), httpx.RateLimitByIP(httpx.LenientLimit)))
}

func (r *Router) registerSSO() {
	h := &SSOHandler{Flow: r.Flow, SSO: r.SSO, FrontendURL: r.FrontendURL}

	r.Mux.Handle("GET /v1/sso/{provider}",
		httpx.Chain(http.HandlerFunc(h.HandleInitiate), httpx.RateLimitByIP(httpx.LenientLimit)))

	// The provider redirects the browser here.
	r.Mux.Handle("GET /auth/{provider}/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback), httpx.RateLimitByIP(httpx.ModerateLimit)))
}

func (r *Router) registerSession() {
	h := &SessionHandler{Sessions: r.Sessions, Verifier: r.verifier}

	r.Mux.Handle("GET /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleGet), httpx.RateLimitByIP(httpx.LenientLimit)))

	// Bearer-protected: resolves a minted token back to its identity.
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(&UserInfoHandler{Store: r.store},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
