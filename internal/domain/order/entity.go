package order

import (
	"database/sql"
	"time"

	"artdesk/internal/pkg/utils"
)

// Status is the fulfillment state of an order. It only moves forward:
// pending -> (processing) -> delivered -> viewed -> downloaded.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDelivered  Status = "delivered"
	StatusViewed     Status = "viewed"
	StatusDownloaded Status = "downloaded"
)

// ServiceKind is the requested transformation category, fixed at submission.
type ServiceKind string

const (
	KindHangInHome     ServiceKind = "hang_in_home"
	KindRecommendWork  ServiceKind = "recommend_work"
	KindRecommendSpace ServiceKind = "recommend_space"
)

var serviceLabels = map[ServiceKind]string{
	KindHangInHome:     "Hang the artwork in your space",
	KindRecommendWork:  "Artwork recommendation for your space",
	KindRecommendSpace: "Space recommendation for your artwork",
}

func (k ServiceKind) Valid() bool {
	_, ok := serviceLabels[k]
	return ok
}

func (k ServiceKind) Label() string { return serviceLabels[k] }

// NeedsArtwork and NeedsSpace define the required input images per kind:
// hang_in_home needs both, recommend_work needs the space photo,
// recommend_space needs the artwork photo.
func (k ServiceKind) NeedsArtwork() bool {
	return k == KindHangInHome || k == KindRecommendSpace
}

func (k ServiceKind) NeedsSpace() bool {
	return k == KindHangInHome || k == KindRecommendWork
}

// ReceiveChannel is how the customer wants the delivery notification.
type ReceiveChannel string

const (
	ChannelEmail ReceiveChannel = "email"
	ChannelSMS   ReceiveChannel = "sms"
)

func (c ReceiveChannel) Valid() bool {
	return c == ChannelEmail || c == ChannelSMS
}

// Order is one customer service request and its fulfillment record.
type Order struct {
	ID             string         `gorm:"column:id;primaryKey" json:"id"`
	DeviceID       sql.NullString `gorm:"column:device_id;index" json:"-"`
	ServiceKind    ServiceKind    `gorm:"column:service_kind" json:"service_kind"`
	ServiceLabel   string         `gorm:"column:service_label" json:"service_label"`
	ReceiveChannel ReceiveChannel `gorm:"column:receive_channel" json:"receive_channel"`
	ReceiveTarget  string         `gorm:"column:receive_target" json:"receive_target"`
	ExtraRequested bool           `gorm:"column:extra_requested" json:"extra_requested"`
	ArtworkImage   sql.NullString `gorm:"column:artwork_image" json:"-"`
	SpaceImage     sql.NullString `gorm:"column:space_image" json:"-"`
	Status         Status         `gorm:"column:status" json:"status"`
	DeliveryToken  string         `gorm:"column:delivery_token;uniqueIndex" json:"-"`

	// DeliveryImages is the ordered artifact list as a JSON text column.
	// Uploaded images come first, the rendered text image last.
	DeliveryImages string         `gorm:"column:delivery_images" json:"-"`
	DeliveryText   sql.NullString `gorm:"column:delivery_text" json:"-"`

	// Notified records whether the post-delivery customer notification
	// attempt succeeded.
	Notified bool `gorm:"column:notified" json:"notified"`

	CreatedAt    time.Time    `gorm:"column:created_at" json:"created_at"`
	DeliveredAt  sql.NullTime `gorm:"column:delivered_at" json:"-"`
	ViewedAt     sql.NullTime `gorm:"column:viewed_at" json:"-"`
	DownloadedAt sql.NullTime `gorm:"column:downloaded_at" json:"-"`
}

func (Order) TableName() string { return "orders" }

// Delivered reports whether the order reached delivered or a later state.
func (o *Order) Delivered() bool {
	switch o.Status {
	case StatusDelivered, StatusViewed, StatusDownloaded:
		return true
	}
	return false
}

// Artifacts decodes the stored artifact list. Corrupt data degrades to
// an empty list.
func (o *Order) Artifacts() []string {
	return utils.StringToArtifacts(o.DeliveryImages)
}

// ActiveState is the tri-state collapse observers use to answer "does
// this device have an active order".
type ActiveState string

const (
	ActiveNone      ActiveState = "none"
	ActivePending   ActiveState = "pending"
	ActiveDelivered ActiveState = "delivered"
)

// Active collapses the status: pending and processing count as an
// unfulfilled active order, delivered as active-with-result, and every
// other value as no active order at all.
func (o *Order) Active() ActiveState {
	switch o.Status {
	case StatusPending, StatusProcessing:
		return ActivePending
	case StatusDelivered:
		return ActiveDelivered
	default:
		return ActiveNone
	}
}
