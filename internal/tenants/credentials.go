package tenants

import (
	"os"
	"strings"
)

// EnvCredentialLookup resolves tenant API tokens from the process
// environment. Subdomains are not valid environment keys, so the key is the
// uppercased subdomain with "-" and "." mapped to "_", suffixed with "_TOKEN"
// (acme-promo -> ACME_PROMO_TOKEN).
func EnvCredentialLookup(subdomain string) (string, bool) {
	value := os.Getenv(envKey(subdomain))
	return value, value != ""
}

var envKeyReplacer = strings.NewReplacer("-", "_", ".", "_")

func envKey(subdomain string) string {
	return envKeyReplacer.Replace(strings.ToUpper(subdomain)) + "_TOKEN"
}
