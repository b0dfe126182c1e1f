package redisrest

import (
	"fmt"
	"os"
	"strings"
)

const (
	// EnvURL names the variable holding the REST endpoint.
	EnvURL = "UPSTASH_REDIS_REST_URL"
	// EnvToken names the variable holding the bearer token.
	EnvToken = "UPSTASH_REDIS_REST_TOKEN"
)

// NewFromEnv builds a Client from UPSTASH_REDIS_REST_URL and
// UPSTASH_REDIS_REST_TOKEN.
func NewFromEnv(opts ...Option) (*Client, error) {
	host := strings.TrimSpace(os.Getenv(EnvURL))
	if host == "" {
		return nil, fmt.Errorf("redisrest: %s is not set", EnvURL)
	}
	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		return nil, fmt.Errorf("redisrest: %s is not set", EnvToken)
	}
	return New(host, token, opts...)
}
