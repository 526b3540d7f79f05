package constant

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
)

const (
	RequestParamID   = "id"
	RequestParamSlug = "slug"
	RequestMaxBody   = 1 << 20 // 1 MB
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	SlugMaxRetry      = 10
	SlugSuffixMax     = 10000
	SlugFallback      = "list"
	SlugSeparator     = "-"
	CacheKeySeparator = ":"
	CacheKeyAll       = "all"
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"

	OtelQueryAttributeKey        = "query"
	OtelItemIDAttributeKey       = "item.id"
	OtelListSlugAttributeKey     = "list.slug"
	OtelTargetListAttributeKey   = "item.target_list"
	OtelSlugAttemptsAttributeKey = "list.slug_attempts"
	OtelEventCacheHit            = "cache.hit"
	OtelEventCacheSkipped        = "cache.skipped"
	OtelEventSlugTaken           = "slug.taken"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "internal server error"
	ResponseErrorRouteNotFound        = "route not found"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)
