// Package domain validates the custom domain a site is published under.
package domain

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Normalize lowercases and validates a hostname.
func Normalize(value string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(value))
	if domain == "" {
		return "", fmt.Errorf("domain is required")
	}
	if strings.HasSuffix(domain, ".") {
		return "", fmt.Errorf("domain must not have a trailing dot")
	}
	if len(domain) > 253 {
		return "", fmt.Errorf("domain exceeds maximum length of 253 characters")
	}
	if ip := net.ParseIP(domain); ip != nil {
		return "", fmt.Errorf("domain must be a hostname, not an IP address")
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("domain must include at least one dot")
	}
	for _, label := range labels {
		if label == "" {
			return "", fmt.Errorf("domain contains an empty label")
		}
		if !labelPattern.MatchString(label) {
			return "", fmt.Errorf("invalid domain label %q", label)
		}
	}
	return domain, nil
}

// Parse accepts what users paste into a domain field: a bare hostname or a
// URL such as "https://www.example.com/". An empty value clears the domain
// and returns "".
func Parse(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", nil
	}
	lower := strings.ToLower(v)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			v = v[len(scheme):]
			break
		}
	}
	v = strings.TrimRight(v, "/")
	if strings.ContainsAny(v, "/?#:@") {
		return "", fmt.Errorf("domain %q must not contain a path, port or credentials", value)
	}
	return Normalize(v)
}
