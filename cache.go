package redisrest

import (
	"strconv"
	"time"
)

// CachePolicy is the HTTP cache directive sent with Get. The client keeps no
// cache of its own; the directive is only meaningful to HTTP caches between
// the caller and the service, including a caching http.RoundTripper.
type CachePolicy struct {
	directive string
	set       bool
}

var (
	// CacheOrigin always goes to the origin. It is the zero value.
	CacheOrigin = CachePolicy{}
	// CacheDefault sends no directive and lets caches apply their own rules.
	CacheDefault = CachePolicy{set: true}
)

// CacheMaxAge allows a cached reply no older than d.
func CacheMaxAge(d time.Duration) CachePolicy {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return CachePolicy{directive: "max-age=" + strconv.FormatInt(secs, 10), set: true}
}

// Directive returns the Cache-Control value, or "" when none is sent.
func (p CachePolicy) Directive() string {
	if !p.set {
		return "no-cache"
	}
	return p.directive
}
