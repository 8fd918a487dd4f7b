package handlers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dropship-service/internal/models"
	"dropship-service/internal/services"
	"dropship-service/internal/tenants"
)

// ErrorResponse is the error envelope returned to callers
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DropshipHandler handles dropship classification requests
type DropshipHandler struct {
	resolver   *tenants.Resolver
	classifier services.OrderClassifier
	logger     *logrus.Entry
}

// NewDropshipHandler creates a new dropship handler
func NewDropshipHandler(resolver *tenants.Resolver, classifier services.OrderClassifier, logger *logrus.Logger) *DropshipHandler {
	return &DropshipHandler{
		resolver:   resolver,
		classifier: classifier,
		logger:     logger.WithField("component", "dropship-handler"),
	}
}

// CheckOrderDropship classifies an order's line items against the dropship
// vendor list
// @Summary Check an order for dropship vendors
// @Description Accepts an order as a JSON body or as a URL-escaped JSON `order` query parameter
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.Order false "Order with line_items"
// @Success 200 {object} models.OrderClassification
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/check-order-dropship [get]
func (h *DropshipHandler) CheckOrderDropship(c *gin.Context) {
	order, err := parseOrder(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid order payload",
			Message: err.Error(),
		})
		return
	}

	if len(order.LineItems) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Missing line items",
			Message: "Order must contain a non-empty line_items array",
		})
		return
	}

	hostname := requestHostname(c.Request.Host)
	cred := h.resolver.ResolveCredentials(hostname)

	h.logger.WithFields(logrus.Fields{
		"tenant_id":  cred.TenantID,
		"hostname":   hostname,
		"line_items": len(order.LineItems),
	}).Info("Checking order for dropship vendors")

	classification := h.classifier.ClassifyOrder(c.Request.Context(), order, cred.TenantID, cred.APIKey)

	c.JSON(http.StatusOK, classification)
}

// parseOrder reads the order from the legacy `order` query parameter
// (URL-escaped JSON) or from the JSON request body
func parseOrder(c *gin.Context) (models.Order, error) {
	var order models.Order

	if raw := c.Query("order"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			return models.Order{}, err
		}
		return order, nil
	}

	if err := c.ShouldBindJSON(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// requestHostname strips an optional port from the Host header value
func requestHostname(host string) string {
	if strings.Contains(host, ":") {
		if hostname, _, err := net.SplitHostPort(host); err == nil {
			return hostname
		}
	}
	return host
}
