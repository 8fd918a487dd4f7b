package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dropship-service/internal/cache"
)

// ErrVendorUnreachable marks a network-level failure contacting a tenant's
// store API (DNS failure, timeout, connection reset). It is distinct from a
// negative HTTP response, which is a valid empty result.
var ErrVendorUnreachable = errors.New("vendor service unreachable")

// VendorClient defines the interface for fetching per-product vendor data
// from a tenant's store API
type VendorClient interface {
	// FetchProductVendors returns the ordered vendor names for one line item.
	// A non-success HTTP status, a malformed body, or a missing vendors field
	// all yield an empty list with no error; only transport failures error.
	FetchProductVendors(ctx context.Context, lineItemID, tenantID, apiKey string) ([]string, error)
}

type productVendorsResponse struct {
	Vendors []struct {
		Name string `json:"name"`
	} `json:"vendors"`
}

type vendorClient struct {
	baseURLTemplate string
	apiVersion      string
	httpClient      *http.Client
	cache           cache.VendorCache
}

// NewVendorClient creates a client for the per-tenant store API. The
// template holds a %s placeholder for the tenant subdomain. A nil cache
// disables caching.
func NewVendorClient(baseURLTemplate, apiVersion string, timeout time.Duration, vendorCache cache.VendorCache) VendorClient {
	return &vendorClient{
		baseURLTemplate: baseURLTemplate,
		apiVersion:      apiVersion,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: vendorCache,
	}
}

// FetchProductVendors fetches vendor names for a single line item
func (c *vendorClient) FetchProductVendors(ctx context.Context, lineItemID, tenantID, apiKey string) ([]string, error) {
	cacheKey := tenantID + ":" + lineItemID
	if c.cache != nil {
		if vendors, ok := c.cache.Get(ctx, cacheKey); ok {
			return vendors, nil
		}
	}

	requestURL := fmt.Sprintf("%s/api/%s/products/%s?token=%s",
		fmt.Sprintf(c.baseURLTemplate, tenantID),
		c.apiVersion,
		url.PathEscape(lineItemID),
		url.QueryEscape(apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVendorUnreachable, err)
	}
	defer resp.Body.Close()

	// A non-success status is a valid negative answer, not a failure
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return []string{}, nil
	}

	var productResp productVendorsResponse
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return []string{}, nil
	}

	vendors := make([]string, 0, len(productResp.Vendors))
	for _, v := range productResp.Vendors {
		vendors = append(vendors, v.Name)
	}

	if c.cache != nil {
		c.cache.Set(ctx, cacheKey, vendors)
	}

	return vendors, nil
}
