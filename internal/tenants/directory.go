package tenants

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// TenantRecord is one entry of the static tenant table. The JSON field names
// follow the upstream export ("Subdomain", "Custom URL"); the API key is
// derived at load time and never serialized.
type TenantRecord struct {
	Subdomain string `json:"Subdomain"`
	CustomURL string `json:"Custom URL"`
	APIKey    string `json:"-"`
}

// CredentialLookup resolves the API token configured for a subdomain.
// The second return is false when no credential is configured.
type CredentialLookup func(subdomain string) (string, bool)

// Directory is the in-memory tenant table, built once at startup and
// read-only afterwards. Lookups return the first matching record.
type Directory struct {
	records []TenantRecord
}

// Load builds a Directory from raw records. Every record with a subdomain
// gets a credential: the configured token when one exists, otherwise the
// "default-"+subdomain placeholder. A misconfigured tenant therefore degrades
// to an obviously wrong token instead of failing the build. Records without
// a subdomain are kept as-is with no credential.
func Load(records []TenantRecord, lookup CredentialLookup) *Directory {
	loaded := make([]TenantRecord, 0, len(records))
	for _, rec := range records {
		if rec.Subdomain != "" {
			if key, ok := lookup(rec.Subdomain); ok && key != "" {
				rec.APIKey = key
			} else {
				rec.APIKey = "default-" + rec.Subdomain
			}
		}
		loaded = append(loaded, rec)
	}
	return &Directory{records: loaded}
}

// FindBySubdomain returns the first record with the given subdomain
func (d *Directory) FindBySubdomain(subdomain string) (TenantRecord, bool) {
	if subdomain == "" {
		return TenantRecord{}, false
	}
	for _, rec := range d.records {
		if rec.Subdomain == subdomain {
			return rec, true
		}
	}
	return TenantRecord{}, false
}

// FindByCustomHostname returns the first record whose custom hostname matches
// exactly. A match without a subdomain is not a valid tenant and is skipped.
func (d *Directory) FindByCustomHostname(hostname string) (TenantRecord, bool) {
	if hostname == "" {
		return TenantRecord{}, false
	}
	for _, rec := range d.records {
		if rec.CustomURL == hostname && rec.Subdomain != "" {
			return rec, true
		}
	}
	return TenantRecord{}, false
}

// Records returns the loaded tenant records
func (d *Directory) Records() []TenantRecord {
	return d.records
}

//go:embed tenants.json
var tenantTable []byte

// DefaultRecords parses the tenant table shipped with the binary
func DefaultRecords() ([]TenantRecord, error) {
	var records []TenantRecord
	if err := json.Unmarshal(tenantTable, &records); err != nil {
		return nil, fmt.Errorf("failed to parse embedded tenant table: %w", err)
	}
	return records, nil
}

// RecordsFromFile parses a tenant table from an external JSON file,
// used to override the embedded table per environment.
func RecordsFromFile(path string) ([]TenantRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant table: %w", err)
	}
	var records []TenantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse tenant table %s: %w", path, err)
	}
	return records, nil
}
