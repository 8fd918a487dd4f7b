package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"dropship-service/internal/clients"
	"dropship-service/internal/models"
)

// OrderClassifier decides whether an order contains products from dropship
// vendors by looking up vendor data for every line item.
type OrderClassifier interface {
	// ClassifyOrder fans out one vendor lookup per line item and aggregates
	// the results. It never fails: a lookup failure counts as an item with
	// no vendors. Callers must validate that the order has line items.
	ClassifyOrder(ctx context.Context, order models.Order, tenantID, apiKey string) *models.OrderClassification
}

type orderClassifier struct {
	vendorClient clients.VendorClient
	logger       *logrus.Entry
}

// NewOrderClassifier creates a new order classifier
func NewOrderClassifier(vendorClient clients.VendorClient, logger *logrus.Logger) OrderClassifier {
	return &orderClassifier{
		vendorClient: vendorClient,
		logger:       logger.WithField("component", "order-classifier"),
	}
}

// ClassifyOrder looks up vendors for all line items concurrently and checks
// the aggregate against the dropship vendor list
func (s *orderClassifier) ClassifyOrder(ctx context.Context, order models.Order, tenantID, apiKey string) *models.OrderClassification {
	// One result slot per line item keeps aggregation in traversal order
	// without any locking: each goroutine writes only its own slot.
	results := make([][]string, len(order.LineItems))

	var wg sync.WaitGroup
	for i, item := range order.LineItems {
		wg.Add(1)
		go func(i int, item models.LineItem) {
			defer wg.Done()
			defer func() {
				// An item that panics resolves to no vendors; siblings
				// keep running.
				if r := recover(); r != nil {
					s.logger.WithFields(logrus.Fields{
						"tenant_id": tenantID,
						"line_item": item.LookupID(),
						"panic":     r,
					}).Error("Recovered panic during vendor lookup")
				}
			}()

			vendors, err := s.vendorClient.FetchProductVendors(ctx, item.LookupID(), tenantID, apiKey)
			if err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"tenant_id": tenantID,
					"line_item": item.LookupID(),
				}).Warn("Vendor lookup failed, treating item as having no vendors")
				return
			}
			results[i] = vendors
		}(i, item)
	}
	wg.Wait()

	vendorNames := make([]string, 0)
	containsDropship := false
	for _, vendors := range results {
		for _, name := range vendors {
			vendorNames = append(vendorNames, name)
			if models.IsDropshipVendor(name) {
				containsDropship = true
			}
		}
	}

	return &models.OrderClassification{
		VendorNames:             vendorNames,
		ContainsDropshipVendors: containsDropship,
	}
}
