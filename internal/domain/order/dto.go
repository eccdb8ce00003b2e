package order

import "mime/multipart"

// SubmitRequest carries one customer submission. Artwork and Space are
// the optional multipart files; which ones are required depends on the
// service kind.
type SubmitRequest struct {
	DeviceID       string
	ServiceKind    string
	ReceiveChannel string
	ReceiveTarget  string
	ExtraRequested bool
	Artwork        *multipart.FileHeader
	Space          *multipart.FileHeader
}

// DeliveryResult is what the deliver operation reports back to the
// operator: the committed transition plus the notification outcome,
// which never fails the delivery itself.
type DeliveryResult struct {
	Order       *Order
	DeliveryURL string
	Notified    bool
}
