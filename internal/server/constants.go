package server

import "time"

// Server timeouts
const (
	ReadHeaderTimeout = 5 * time.Second
	ReadinessTimeout  = 2 * time.Second
)

// Route paths
const (
	PathHealthz = "/healthz"
	PathReadyz  = "/readyz"
	PathMetrics = "/metrics"
	PathVersion = "/version"
)

// Health statuses
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	MsgDatabaseUnavailable = "database connection failed"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Metrics server starting"
	LogMsgRequestCompleted = "Request completed"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgEncodeFailed     = "Failed to encode response"
)

// HTTP header names
const (
	HeaderContentType        = "Content-Type"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	HeaderReferrerPolicy     = "Referrer-Policy"
)

// Header values
const (
	ContentTypeJSON               = "application/json"
	HeaderValueNoSniff            = "nosniff"
	HeaderValueDeny               = "DENY"
	HeaderValueReferrerNoReferrer = "no-referrer"
)
