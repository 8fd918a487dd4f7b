package models

// LineItem is one product entry within an inbound order. Callers key line
// items either by `id` (storefront convention) or by `origin_product_id`
// (integration convention); both are accepted.
type LineItem struct {
	ID              string `json:"id"`
	OriginProductID string `json:"origin_product_id"`
}

// LookupID returns the identifier used to query the vendor API, preferring
// `id` and falling back to `origin_product_id`.
func (li LineItem) LookupID() string {
	if li.ID != "" {
		return li.ID
	}
	return li.OriginProductID
}

// Order is the inbound order payload to classify
type Order struct {
	LineItems []LineItem `json:"line_items"`
}

// OrderClassification is the final result returned to the caller.
// VendorNames preserves line-item traversal order, then per-item vendor
// order, and may contain duplicates.
type OrderClassification struct {
	VendorNames             []string `json:"vendorNames"`
	ContainsDropshipVendors bool     `json:"orderContainsDropshipVendors"`
}
