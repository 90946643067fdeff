package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lgzarturo/bootzen/internal"
)

// CORSOption configures the CORS middleware.
type CORSOption func(*corsConfig)

type corsConfig struct {
	origins     []string
	originFunc  func(origin string) bool
	methods     []string
	headers     []string
	expose      []string
	credentials bool
	maxAge      time.Duration
}

// WithAllowOrigins whitelists the origins allowed to make cross-origin
// requests. "*" allows any origin. Defaults to "*".
func WithAllowOrigins(origins ...string) CORSOption {
	return func(c *corsConfig) { c.origins = origins }
}

// WithAllowOriginFunc decides origin access dynamically. When set, it takes
// precedence over WithAllowOrigins.
func WithAllowOriginFunc(fn func(origin string) bool) CORSOption {
	return func(c *corsConfig) { c.originFunc = fn }
}

// WithAllowMethods sets the methods advertised to preflight requests.
func WithAllowMethods(methods ...string) CORSOption {
	return func(c *corsConfig) { c.methods = methods }
}

// WithAllowHeaders sets the request headers advertised to preflight requests.
func WithAllowHeaders(headers ...string) CORSOption {
	return func(c *corsConfig) { c.headers = headers }
}

// WithExposeHeaders lists response headers scripts may read cross-origin.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(c *corsConfig) { c.expose = headers }
}

// WithAllowCredentials permits cookies and authorization headers on
// cross-origin requests. The allowed origin is then echoed back instead of
// "*", as browsers reject the wildcard with credentials.
func WithAllowCredentials() CORSOption {
	return func(c *corsConfig) { c.credentials = true }
}

// WithMaxAge tells browsers how long to cache preflight responses.
func WithMaxAge(d time.Duration) CORSOption {
	return func(c *corsConfig) { c.maxAge = d }
}

// corsPolicy is the precomputed form of corsConfig used per request.
type corsPolicy struct {
	any         bool
	origins     map[string]struct{}
	originFunc  func(string) bool
	methods     string
	headers     string
	expose      string
	credentials bool
	maxAge      string
}

func (p *corsPolicy) allows(origin string) bool {
	if p.originFunc != nil {
		return p.originFunc(origin)
	}
	if p.any {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// CORS answers cross-origin requests according to the configured policy.
// Requests without an Origin header, and requests from disallowed origins,
// pass through untouched so the browser blocks them. Preflight OPTIONS
// requests are answered directly with 204.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := corsConfig{
		origins: []string{"*"},
		methods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodHead,
		},
		maxAge: 12 * time.Hour,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy := corsPolicy{
		originFunc:  cfg.originFunc,
		origins:     make(map[string]struct{}, len(cfg.origins)),
		methods:     strings.Join(cfg.methods, ", "),
		headers:     strings.Join(cfg.headers, ", "),
		expose:      strings.Join(cfg.expose, ", "),
		credentials: cfg.credentials,
	}
	for _, o := range cfg.origins {
		if o == "*" {
			policy.any = true
			continue
		}
		policy.origins[o] = struct{}{}
	}
	if cfg.maxAge > 0 {
		policy.maxAge = strconv.Itoa(int(cfg.maxAge / time.Second))
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			res := c.Response().Header()
			res.Add("Vary", "Origin")

			if origin == "" || !policy.allows(origin) {
				return next(c)
			}

			// With credentials, or a restricted origin list, the concrete
			// origin must be echoed back.
			if policy.any && !policy.credentials && policy.originFunc == nil {
				res.Set("Access-Control-Allow-Origin", "*")
			} else {
				res.Set("Access-Control-Allow-Origin", origin)
			}
			if policy.credentials {
				res.Set("Access-Control-Allow-Credentials", "true")
			}
			if policy.expose != "" {
				res.Set("Access-Control-Expose-Headers", policy.expose)
			}

			if c.Method() != http.MethodOptions {
				return next(c)
			}

			res.Add("Vary", "Access-Control-Request-Method")
			res.Add("Vary", "Access-Control-Request-Headers")
			res.Set("Access-Control-Allow-Methods", policy.methods)
			if policy.headers != "" {
				res.Set("Access-Control-Allow-Headers", policy.headers)
			} else if reqHeaders := c.Header("Access-Control-Request-Headers"); reqHeaders != "" {
				res.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			if policy.maxAge != "" {
				res.Set("Access-Control-Max-Age", policy.maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
