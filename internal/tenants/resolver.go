package tenants

import "strings"

const (
	// DefaultTenant is used when a hostname matches no resolution rule
	DefaultTenant = "centricity-test-store"

	// DefaultAPIKey is the local-development fallback token
	DefaultAPIKey = "default-api-key"

	// StoreDomainSuffix is the shared domain under which every tenant
	// storefront is served as {subdomain}.mybrightsites.com
	StoreDomainSuffix = ".mybrightsites.com"
)

// Credential is the per-request resolved tenant identity. Ephemeral,
// never persisted.
type Credential struct {
	TenantID string
	APIKey   string
}

// Resolver maps inbound hostnames to tenant identities and API credentials.
// It holds the directory as an explicit dependency; there is no ambient
// global state.
type Resolver struct {
	dir    *Directory
	lookup CredentialLookup
}

// NewResolver creates a resolver over a loaded directory
func NewResolver(dir *Directory, lookup CredentialLookup) *Resolver {
	return &Resolver{dir: dir, lookup: lookup}
}

// ResolveSubdomain maps a hostname to a tenant subdomain:
//  1. a directory record with this exact custom hostname (and a subdomain)
//     wins — a tenant may have remapped its public hostname to something the
//     suffix rule would never match
//  2. otherwise a hostname under the shared store domain yields the prefix
//     before the first occurrence of the suffix
//  3. otherwise the default tenant
func (r *Resolver) ResolveSubdomain(hostname string) string {
	if rec, ok := r.dir.FindByCustomHostname(hostname); ok {
		return rec.Subdomain
	}
	if strings.HasSuffix(hostname, StoreDomainSuffix) {
		return hostname[:strings.Index(hostname, StoreDomainSuffix)]
	}
	return DefaultTenant
}

// ResolveCredentials resolves the tenant identity and API key for a hostname.
// It never fails: a hostname with no directory entry still resolves to a
// derived credential so downstream lookups degrade instead of crashing.
//
// "localhost" is a local-development escape hatch: it maps straight to the
// default tenant without consulting the directory.
func (r *Resolver) ResolveCredentials(hostname string) Credential {
	if hostname == "localhost" {
		key, ok := r.lookup(DefaultTenant)
		if !ok || key == "" {
			key = DefaultAPIKey
		}
		return Credential{TenantID: DefaultTenant, APIKey: key}
	}

	tenantID := r.ResolveSubdomain(hostname)
	if rec, ok := r.dir.FindBySubdomain(tenantID); ok {
		return Credential{TenantID: tenantID, APIKey: rec.APIKey}
	}

	key, ok := r.lookup(tenantID)
	if !ok || key == "" {
		key = "default-" + tenantID
	}
	return Credential{TenantID: tenantID, APIKey: key}
}
