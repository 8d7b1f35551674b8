package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// Resolver is the subset of net.Resolver used to check mail domains.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// DomainChecker accepts an address when its domain has an MX record or, failing that, any address record.
type DomainChecker struct {
	resolver Resolver
	timeout  time.Duration
}

func NewDomainChecker(r Resolver) *DomainChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	return &DomainChecker{resolver: r, timeout: lookupTimeout}
}

func (d *DomainChecker) Valid(email string) bool {
	domain, ok := EmailDomain(email)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if mx, err := d.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := d.resolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}

// EmailDomain returns the lower-cased part after the last "@".
func EmailDomain(email string) (string, bool) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	domain := strings.ToLower(email[at+1:])
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}

var defaultChecker = NewDomainChecker(nil)

func IsEmailDomainValid(email string) bool {
	return defaultChecker.Valid(email)
}
