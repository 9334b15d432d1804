package middleware

import "strings"

// Rule marks a path pattern and method set as requiring identity.
// Patterns use "*" as a single-segment wildcard: "/api/v1/songs/*"
// matches "/api/v1/songs/abc" but not "/api/v1/songs/abc/plays".
type Rule struct {
	Pattern string
	Methods []string
}

// Policy is a fixed table mapping routes to "requires identity".
// Exact patterns are consulted before wildcard ones; paths and methods
// matched by no rule require no identity.
type Policy struct {
	exact    []Rule
	wildcard []Rule
}

// NewPolicy creates a Policy from the given rules
func NewPolicy(rules ...Rule) *Policy {
	p := &Policy{}
	for _, rule := range rules {
		if strings.Contains(rule.Pattern, "*") {
			p.wildcard = append(p.wildcard, rule)
		} else {
			p.exact = append(p.exact, rule)
		}
	}
	return p
}

// RequiresIdentity reports whether the method/path pair is protected
func (p *Policy) RequiresIdentity(method, path string) bool {
	for _, rule := range p.exact {
		if rule.Pattern == path && methodIn(method, rule.Methods) {
			return true
		}
	}
	for _, rule := range p.wildcard {
		if segmentsMatch(rule.Pattern, path) && methodIn(method, rule.Methods) {
			return true
		}
	}
	return false
}

func methodIn(method string, methods []string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

// segmentsMatch compares a wildcard pattern against a path segment by
// segment; "*" consumes exactly one segment.
func segmentsMatch(pattern, path string) bool {
	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if seg == "*" {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}
