package main

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"campus-api/internal/config"
	hhttp "campus-api/internal/handler/http"
	"campus-api/internal/handler/http/auth"
	"campus-api/internal/handler/http/middleware"
	"campus-api/internal/handler/http/requestid"
	"campus-api/internal/handler/http/resource"
	"campus-api/internal/observability/tracing"
	ucrud "campus-api/internal/usecase/crud"

	_ "campus-api/docs" // swagger docs
)

// routeDeps collects everything the router serves.
type routeDeps struct {
	Services ucrud.Services
	Policy   auth.Policy
	Health   *hhttp.HealthHandler
	Ready    *hhttp.ReadyHandler
	Info     hhttp.SystemInfo
}

// newRouter registers all routes. Record routes check roles themselves;
// everything else here is public except /api/currentUser.
func newRouter(d routeDeps) *http.ServeMux {
	mux := http.NewServeMux()

	resource.Register(mux, d.Services, d.Policy)
	mux.Handle("GET /api/currentUser", auth.RequireRole(auth.RoleUser)(auth.CurrentUserHandler{}))
	mux.Handle("GET /api/systemInfo", &hhttp.SystemInfoHandler{Info: d.Info})

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", d.Health)
	mux.Handle("GET /ready", d.Ready)
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	if d.Info.SwaggerEnabled {
		mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	}
	return mux
}

// applyMiddleware wraps the router. The first middleware is outermost:
// request ID → CORS → security headers → rate limit → recover → logging →
// input checks → body limit → timeout → tracing → metrics → authentication.
func applyMiddleware(logger *slog.Logger, cfg *config.AppConfig, limiter *middleware.RateLimiter, h http.Handler) http.Handler {
	mws := []func(http.Handler) http.Handler{requestid.Middleware}

	if len(cfg.CORSAllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSAllowedOrigins)))
		logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.CORSAllowedOrigins))
	}
	mws = append(mws, middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.CSPReportOnly)))
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mws = append(mws,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		hhttp.Timeout(cfg.RequestTimeout),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
		auth.Authenticate([]byte(cfg.JWTSecret)),
	)
	return hhttp.Chain(h, mws...)
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(logger *slog.Logger, cfg config.RateLimitConfig) (*middleware.RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	ext, err := middleware.NewIPExtractor(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	if len(cfg.TrustedProxies) > 0 {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(cfg.TrustedProxies)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}
	logger.Info("rate limiting initialized",
		slog.Float64("rps", cfg.RPS),
		slog.Int("burst", cfg.Burst))
	return middleware.NewRateLimiter(cfg.RPS, cfg.Burst, ext), nil
}

const rateLimitCleanupInterval = time.Minute
