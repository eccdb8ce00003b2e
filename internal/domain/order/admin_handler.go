package order

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artdesk/internal/media"
	"artdesk/internal/pkg/response"
)

// AdminHandler serves the operator surface. Every route behind it is
// guarded by the shared-secret middleware.
type AdminHandler struct {
	service *Service
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// List godoc
// @Summary List orders, optionally filtered by status
// @Tags Admin
// @Produce json
// @Param status query string false "pending | processing | delivered | viewed | downloaded"
// @Success 200 {object} map[string]interface{}
// @Router /admin/orders [get]
func (h *AdminHandler) List(c *gin.Context) {
	var filter *Status
	if raw := c.Query("status"); raw != "" {
		st := Status(raw)
		filter = &st
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list orders")
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items = append(items, adminView(o))
	}
	response.Success(c, http.StatusOK, gin.H{"orders": items})
}

// Get godoc
// @Summary Get one order with its image references
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/orders/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	o, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.NotFound(c, "order not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": adminView(o)})
}

// Deliver godoc
// @Summary Deliver an order: attach result images and optional text
// @Description Non-blank text is rendered to one extra image appended after the uploads. The customer is notified; notification failure does not fail the delivery.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param images formData file false "Result images (repeatable)"
// @Param text formData string false "Operator note rendered to an image"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409,413 {object} map[string]interface{}
// @Router /admin/orders/{id}/deliver [post]
func (h *AdminHandler) Deliver(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "BAD_REQUEST", "multipart form expected")
		return
	}

	res, err := h.service.Deliver(c.Request.Context(), c.Param("id"), form.File["images"], c.PostForm("text"))
	if err != nil {
		writeDeliverError(c, err)
		return
	}

	message := "delivered, customer notified"
	if !res.Notified {
		message = "delivered, but the notification failed; contact the customer manually"
	}
	response.Success(c, http.StatusOK, gin.H{
		"order_id":     res.Order.ID,
		"delivery_url": res.DeliveryURL,
		"notified":     res.Notified,
		"message":      message,
	})
}

// Delete godoc
// @Summary Delete an order and all media files it references
// @Tags Admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/orders/{id} [delete]
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "delete failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "deleted"})
}

func writeDeliverError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, ErrAlreadyDelivered):
		response.Error(c, http.StatusConflict, "ALREADY_DELIVERED", err.Error())
	case errors.Is(err, media.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, media.ErrEmptyFile), errors.Is(err, media.ErrUnsupportedFormat):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "delivery failed")
	}
}

func adminView(o *Order) gin.H {
	return gin.H{
		"id":              o.ID,
		"device_id":       nullStr(o.DeviceID),
		"service_kind":    o.ServiceKind,
		"service_label":   o.ServiceLabel,
		"receive_channel": o.ReceiveChannel,
		"receive_target":  o.ReceiveTarget,
		"extra_requested": o.ExtraRequested,
		"artwork_image":   nullStr(o.ArtworkImage),
		"space_image":     nullStr(o.SpaceImage),
		"status":          o.Status,
		"delivery_token":  o.DeliveryToken,
		"delivery_images": o.Artifacts(),
		"delivery_text":   nullStr(o.DeliveryText),
		"notified":        o.Notified,
		"created_at":      o.CreatedAt,
		"delivered_at":    nullTime(o.DeliveredAt),
		"viewed_at":       nullTime(o.ViewedAt),
		"downloaded_at":   nullTime(o.DownloadedAt),
	}
}

func nullStr(v sql.NullString) interface{} {
	if !v.Valid {
		return nil
	}
	return v.String
}

func nullTime(v sql.NullTime) interface{} {
	if !v.Valid {
		return nil
	}
	return v.Time
}
