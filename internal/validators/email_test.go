package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx    map[string][]*net.MX
	hosts map[string][]string
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if h, ok := f.hosts[host]; ok {
		return h, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomain(t *testing.T) {
	cases := map[string]struct {
		domain string
		ok     bool
	}{
		"ana@Example.COM":   {"example.com", true},
		" ana@example.com ": {"example.com", true},
		"a@b@example.org":   {"example.org", true},
		"ana@":              {"", false},
		"@example.com":      {"", false},
		"ana@localhost":     {"", false},
		"no-at-sign":        {"", false},
	}

	for in, want := range cases {
		domain, ok := EmailDomain(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.domain, domain, in)
	}
}

func TestDomainChecker(t *testing.T) {
	d := NewDomainChecker(fakeResolver{
		mx:    map[string][]*net.MX{"mail.test": {{Host: "mx.mail.test.", Pref: 10}}},
		hosts: map[string][]string{"hosted.test": {"10.0.0.1"}},
	})

	assert.True(t, d.Valid("ana@mail.test"))
	assert.True(t, d.Valid("ana@hosted.test"))
	assert.False(t, d.Valid("ana@missing.test"))
	assert.False(t, d.Valid("ana@"))
}
