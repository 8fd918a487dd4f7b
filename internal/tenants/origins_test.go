package tenants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginGuardAllowList(t *testing.T) {
	guard := NewOriginGuard(testDirectory(lookupFromMap(nil)))

	// Synthesized storefront origins
	assert.True(t, guard.IsAllowed("https://acme-promo.mybrightsites.com"))
	assert.True(t, guard.IsAllowed("https://centricity-test-store.mybrightsites.com"))

	// Custom hostnames are added verbatim, including subdomain-less records
	assert.True(t, guard.IsAllowed("shop.acmepromo.com"))
	assert.True(t, guard.IsAllowed("store.legacybrand.com"))
}

func TestOriginGuardNoOriginAlwaysAllowed(t *testing.T) {
	guard := NewOriginGuard(testDirectory(lookupFromMap(nil)))

	assert.True(t, guard.IsAllowed(""))
}

func TestOriginGuardExactMatchOnly(t *testing.T) {
	guard := NewOriginGuard(testDirectory(lookupFromMap(nil)))

	assert.False(t, guard.IsAllowed("https://evil.example.com"))
	// No suffix matching
	assert.False(t, guard.IsAllowed("https://sub.acme-promo.mybrightsites.com"))
	// Case-sensitive
	assert.False(t, guard.IsAllowed("https://ACME-PROMO.mybrightsites.com"))
}
