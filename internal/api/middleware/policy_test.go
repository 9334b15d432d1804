package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyRequiresIdentity(t *testing.T) {
	policy := NewPolicy(
		Rule{Pattern: "/api/v1/auth/me", Methods: []string{http.MethodGet}},
		Rule{Pattern: "/api/v1/songs/*", Methods: []string{http.MethodPatch}},
		Rule{Pattern: "/api/v1/playlists", Methods: []string{http.MethodPost}},
	)

	tests := []struct {
		name     string
		method   string
		path     string
		expected bool
	}{
		{"exact match", http.MethodGet, "/api/v1/auth/me", true},
		{"exact match wrong method", http.MethodPost, "/api/v1/auth/me", false},
		{"unmatched path", http.MethodGet, "/api/v1/health", false},
		{"wildcard matches single segment", http.MethodPatch, "/api/v1/songs/abc", true},
		{"wildcard does not span segments", http.MethodPatch, "/api/v1/songs/abc/plays", false},
		{"wildcard wrong method", http.MethodGet, "/api/v1/songs/abc", false},
		{"wildcard requires the segment", http.MethodPatch, "/api/v1/songs", false},
		{"listed method on listed path", http.MethodPost, "/api/v1/playlists", true},
		{"unlisted method on listed path", http.MethodGet, "/api/v1/playlists", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.RequiresIdentity(tt.method, tt.path))
		})
	}
}

func TestPolicyTrailingSlashesAreNormalized(t *testing.T) {
	policy := NewPolicy(
		Rule{Pattern: "/api/v1/songs/*", Methods: []string{http.MethodPatch}},
	)

	assert.True(t, policy.RequiresIdentity(http.MethodPatch, "/api/v1/songs/abc/"))
}
