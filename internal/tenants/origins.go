package tenants

// OriginGuard decides whether a cross-origin request is allowed. The
// allow-list is synthesized once from the directory: the storefront origin
// for every subdomain plus every custom hostname verbatim. Matching is exact;
// no wildcard or suffix rules.
type OriginGuard struct {
	allowed map[string]struct{}
}

// NewOriginGuard builds the allow-list from a loaded directory
func NewOriginGuard(dir *Directory) *OriginGuard {
	allowed := make(map[string]struct{})
	for _, rec := range dir.Records() {
		if rec.Subdomain != "" {
			allowed["https://"+rec.Subdomain+StoreDomainSuffix] = struct{}{}
		}
		if rec.CustomURL != "" {
			allowed[rec.CustomURL] = struct{}{}
		}
	}
	return &OriginGuard{allowed: allowed}
}

// IsAllowed reports whether the given Origin header value may make
// cross-origin requests. Requests without an Origin header (non-browser
// callers) are always allowed.
func (g *OriginGuard) IsAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := g.allowed[origin]
	return ok
}
