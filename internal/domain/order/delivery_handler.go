package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artdesk/internal/pkg/response"
)

// DeliveryHandler serves the token-addressed customer delivery surface.
// The token is the only identifier customers ever see; nothing here
// exposes raw order ids.
type DeliveryHandler struct {
	service  *Service
	pagePath string // static delivery page served on the bootstrap route
}

func NewDeliveryHandler(service *Service, pagePath string) *DeliveryHandler {
	return &DeliveryHandler{service: service, pagePath: pagePath}
}

// Page serves the static delivery page; the page itself fetches the
// order data separately.
func (h *DeliveryHandler) Page(c *gin.Context) {
	c.File(h.pagePath)
}

// Data returns the order projection for a token. Until the order is
// delivered only the status and the service label are visible; the
// artifacts and text never leak early.
func (h *DeliveryHandler) Data(c *gin.Context) {
	o, err := h.service.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.NotFound(c, "page not found")
		return
	}

	if !o.Delivered() {
		response.Success(c, http.StatusOK, gin.H{
			"status":        StatusPending,
			"message":       "Your request is being processed. You will be notified once it is ready.",
			"service_kind":  o.ServiceKind,
			"service_label": o.ServiceLabel,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":        StatusDelivered,
		"service_kind":  o.ServiceKind,
		"service_label": o.ServiceLabel,
		"images":        o.Artifacts(),
		"text":          o.DeliveryText.String,
		"delivered_at":  o.DeliveredAt.Time,
	})
}

// History lists the delivered orders that share the token order's
// device, newest first. No device id means an empty list.
func (h *DeliveryHandler) History(c *gin.Context) {
	orders, err := h.service.History(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.NotFound(c, "page not found")
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items = append(items, gin.H{
			"delivery_url":  h.service.DeliveryURL(o.DeliveryToken),
			"service_kind":  o.ServiceKind,
			"service_label": o.ServiceLabel,
			"delivered_at":  nullTime(o.DeliveredAt),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"orders": items})
}

// Viewed records that the customer opened the delivered result.
func (h *DeliveryHandler) Viewed(c *gin.Context) {
	o, err := h.service.MarkViewed(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.NotFound(c, "page not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": o.Status})
}

// Downloaded records that the customer downloaded the artifacts.
func (h *DeliveryHandler) Downloaded(c *gin.Context) {
	o, err := h.service.MarkDownloaded(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.NotFound(c, "page not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": o.Status})
}
