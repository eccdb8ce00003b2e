package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artdesk/internal/media"
	"artdesk/internal/pkg/response"
)

// Handler serves the anonymous customer surface.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit godoc
// @Summary Submit a new service request
// @Description Creates an order from the uploaded images. Which images are required depends on service_kind.
// @Tags Client
// @Accept multipart/form-data
// @Produce json
// @Param service_kind formData string true "hang_in_home | recommend_work | recommend_space"
// @Param receive_channel formData string false "email (default) | sms"
// @Param receive_target formData string true "Destination address or number"
// @Param device_id formData string false "Opaque client device identifier"
// @Param extra_requested formData bool false "Extra service flag"
// @Param artwork formData file false "Artwork photo"
// @Param space formData file false "Space photo"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,500 {object} map[string]interface{}
// @Router /client/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	artwork, _ := c.FormFile("artwork")
	space, _ := c.FormFile("space")

	extra := c.PostForm("extra_requested")
	req := SubmitRequest{
		DeviceID:       c.PostForm("device_id"),
		ServiceKind:    c.PostForm("service_kind"),
		ReceiveChannel: c.PostForm("receive_channel"),
		ReceiveTarget:  c.PostForm("receive_target"),
		ExtraRequested: extra == "true" || extra == "1",
		Artwork:        artwork,
		Space:          space,
	}

	o, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		writeSubmitError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"order_id": o.ID,
		"message":  "Request received. You will be notified once it is ready.",
	})
}

// Active godoc
// @Summary Check whether a device has an active order
// @Tags Client
// @Produce json
// @Param device_id query string true "Device identifier"
// @Success 200 {object} map[string]interface{}
// @Router /client/orders/active [get]
func (h *Handler) Active(c *gin.Context) {
	deviceID := c.Query("device_id")
	if deviceID == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_DEVICE_ID", "device_id is required")
		return
	}

	state, o, err := h.service.ActiveForDevice(c.Request.Context(), deviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "lookup failed")
		return
	}

	data := gin.H{"state": state}
	if o != nil {
		data["service_kind"] = o.ServiceKind
		data["service_label"] = o.ServiceLabel
		data["created_at"] = o.CreatedAt
		if state == ActiveDelivered {
			data["delivery_url"] = h.service.DeliveryURL(o.DeliveryToken)
		}
	}
	response.Success(c, http.StatusOK, data)
}

func writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidServiceKind):
		response.Error(c, http.StatusBadRequest, "INVALID_SERVICE_KIND", err.Error())
	case errors.Is(err, ErrInvalidReceiveChannel):
		response.Error(c, http.StatusBadRequest, "INVALID_RECEIVE_CHANNEL", err.Error())
	case errors.Is(err, ErrMissingTarget):
		response.Error(c, http.StatusBadRequest, "MISSING_TARGET", err.Error())
	case errors.Is(err, ErrMissingRequiredImage):
		response.Error(c, http.StatusBadRequest, "MISSING_REQUIRED_IMAGE", err.Error())
	case errors.Is(err, media.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, media.ErrEmptyFile), errors.Is(err, media.ErrUnsupportedFormat):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "submission failed")
	}
}
