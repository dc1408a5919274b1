// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// blockedHosts are cloud metadata names that never serve a git API
var blockedHosts = map[string]bool{
	"metadata.google.internal": true,
	"metadata":                 true,
}

// validateBaseURL rejects API base URLs that are not http(s) or that point at
// private networks or metadata endpoints. Loopback stays allowed for local
// development and tests.
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q: only http and https are allowed", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if blockedHosts[host] {
		return fmt.Errorf("SSRF protection: cannot connect to metadata endpoint: %s", host)
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		// a DNS name
		return nil
	}
	addr = addr.Unmap()

	if addr.IsLoopback() {
		return nil
	}
	if addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() || addr.IsUnspecified() {
		return fmt.Errorf("SSRF protection: cannot connect to private/internal network: %s", host)
	}
	return nil
}
