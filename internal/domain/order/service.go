package order

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"artdesk/internal/pkg/utils"
)

// Notifier delivers best-effort messages to the operator and the
// customer. Failures are reported, never propagated as fatal.
type Notifier interface {
	OrderSubmitted(ctx context.Context, o *Order) error
	OrderDelivered(ctx context.Context, o *Order, deliveryURL string) error
}

// MediaStore is the file collaborator: it persists uploaded images and
// removes them when an order is deleted.
type MediaStore interface {
	SaveUpload(fh *multipart.FileHeader, tag string) (string, error)
	SaveDelivery(fh *multipart.FileHeader) (string, error)
	DeliveryPath(name string) string
	RemoveUpload(name string)
	RemoveDelivery(name string)
}

// TextRenderer turns operator-authored text into an image file.
type TextRenderer interface {
	RenderToFile(text, outputPath string) (string, error)
}

type Service struct {
	repo     Repository
	media    MediaStore
	notifier Notifier
	renderer TextRenderer
	baseURL  string
	log      *zap.Logger
}

func NewService(repo Repository, media MediaStore, notifier Notifier, renderer TextRenderer, baseURL string, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		media:    media,
		notifier: notifier,
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// Submit validates and persists a new order. Validation fails fast:
// service kind first, then receive channel, then target, then the
// per-kind image requirement. The operator notification is dispatched
// in the background and only logged; the response reflects persistence
// alone.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Order, error) {
	kind := ServiceKind(strings.TrimSpace(req.ServiceKind))
	if !kind.Valid() {
		return nil, ErrInvalidServiceKind
	}

	channel := ReceiveChannel(strings.TrimSpace(req.ReceiveChannel))
	if channel == "" {
		channel = ChannelEmail
	}
	if !channel.Valid() {
		return nil, ErrInvalidReceiveChannel
	}

	target := strings.TrimSpace(req.ReceiveTarget)
	if target == "" {
		return nil, ErrMissingTarget
	}

	if kind.NeedsArtwork() && req.Artwork == nil {
		return nil, fmt.Errorf("%w: %q requires an artwork image", ErrMissingRequiredImage, kind)
	}
	if kind.NeedsSpace() && req.Space == nil {
		return nil, fmt.Errorf("%w: %q requires a space image", ErrMissingRequiredImage, kind)
	}

	o := &Order{
		ID:             uuid.New().String(),
		DeviceID:       nullString(strings.TrimSpace(req.DeviceID)),
		ServiceKind:    kind,
		ServiceLabel:   kind.Label(),
		ReceiveChannel: channel,
		ReceiveTarget:  target,
		ExtraRequested: req.ExtraRequested,
		Status:         StatusPending,
		DeliveryToken:  newDeliveryToken(),
		DeliveryImages: "[]",
		CreatedAt:      time.Now(),
	}

	if req.Artwork != nil {
		name, err := s.media.SaveUpload(req.Artwork, "artwork")
		if err != nil {
			return nil, err
		}
		o.ArtworkImage = nullString(name)
	}
	if req.Space != nil {
		name, err := s.media.SaveUpload(req.Space, "space")
		if err != nil {
			if o.ArtworkImage.Valid {
				s.media.RemoveUpload(o.ArtworkImage.String)
			}
			return nil, err
		}
		o.SpaceImage = nullString(name)
	}

	if err := s.repo.Create(ctx, o); err != nil {
		if o.ArtworkImage.Valid {
			s.media.RemoveUpload(o.ArtworkImage.String)
		}
		if o.SpaceImage.Valid {
			s.media.RemoveUpload(o.SpaceImage.String)
		}
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Fire-and-forget: the submission response never waits on this.
	go func(o Order) {
		if err := s.notifier.OrderSubmitted(context.Background(), &o); err != nil {
			s.log.Warn("operator notification failed",
				zap.String("order_id", o.ID), zap.Error(err))
		}
	}(*o)

	return o, nil
}

// Deliver is the operator's one-shot fulfillment: it attaches the
// uploaded images, renders non-blank text into one extra image appended
// after them, commits the transition and then notifies the customer.
// Notification failure is recorded on the order, not surfaced as an
// error.
func (s *Service) Deliver(ctx context.Context, id string, images []*multipart.FileHeader, text string) (*DeliveryResult, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Delivered() {
		return nil, ErrAlreadyDelivered
	}

	var artifacts []string
	for _, fh := range images {
		name, err := s.media.SaveDelivery(fh)
		if err != nil {
			for _, saved := range artifacts {
				s.media.RemoveDelivery(saved)
			}
			return nil, err
		}
		artifacts = append(artifacts, name)
	}

	if strings.TrimSpace(text) != "" {
		name := fmt.Sprintf("text_%s.png", uuid.New().String())
		if _, err := s.renderer.RenderToFile(text, s.media.DeliveryPath(name)); err != nil {
			// The text itself is still stored on the order.
			s.log.Warn("text rendering failed", zap.String("order_id", id), zap.Error(err))
		} else {
			artifacts = append(artifacts, name)
		}
	}

	now := time.Now()
	updated, err := s.repo.MarkDelivered(ctx, id, utils.ArtifactsToString(artifacts), text, now)
	if err != nil {
		return nil, fmt.Errorf("persist delivery: %w", err)
	}
	if !updated {
		for _, saved := range artifacts {
			s.media.RemoveDelivery(saved)
		}
		return nil, ErrAlreadyDelivered
	}

	o.Status = StatusDelivered
	o.DeliveryImages = utils.ArtifactsToString(artifacts)
	o.DeliveryText = nullString(text)
	o.DeliveredAt.Time, o.DeliveredAt.Valid = now, true

	deliveryURL := s.DeliveryURL(o.DeliveryToken)
	notified := true
	if err := s.notifier.OrderDelivered(ctx, o, deliveryURL); err != nil {
		notified = false
		s.log.Warn("customer notification failed",
			zap.String("order_id", id), zap.Error(err))
	}
	o.Notified = notified
	if err := s.repo.SetNotified(ctx, id, notified); err != nil {
		s.log.Warn("recording notification outcome failed",
			zap.String("order_id", id), zap.Error(err))
	}

	return &DeliveryResult{Order: o, DeliveryURL: deliveryURL, Notified: notified}, nil
}

// DeliveryURL builds the anonymous delivery-page address for a token.
func (s *Service) DeliveryURL(token string) string {
	return s.baseURL + "/d/" + token
}

// GetByToken resolves a delivery token to its order.
func (s *Service) GetByToken(ctx context.Context, token string) (*Order, error) {
	return s.repo.GetByToken(ctx, token)
}

// GetByID returns one order for the operator.
func (s *Service) GetByID(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns orders for the operator, optionally filtered by status,
// newest first.
func (s *Service) List(ctx context.Context, status *Status) ([]*Order, error) {
	return s.repo.List(ctx, status)
}

// MarkViewed advances a delivered order to viewed. Any other current
// status makes it an idempotent no-op.
func (s *Service) MarkViewed(ctx context.Context, token string) (*Order, error) {
	o, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updated, err := s.repo.MarkViewed(ctx, o.ID, now)
	if err != nil {
		return nil, err
	}
	if updated {
		o.Status = StatusViewed
		o.ViewedAt.Time, o.ViewedAt.Valid = now, true
	}
	return o, nil
}

// MarkDownloaded advances a delivered or viewed order to downloaded;
// no-op and idempotent otherwise.
func (s *Service) MarkDownloaded(ctx context.Context, token string) (*Order, error) {
	o, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	updated, err := s.repo.MarkDownloaded(ctx, o.ID, now)
	if err != nil {
		return nil, err
	}
	if updated {
		o.Status = StatusDownloaded
		o.DownloadedAt.Time, o.DownloadedAt.Valid = now, true
	}
	return o, nil
}

// History returns the delivered orders sharing the token order's device,
// newest first. Orders without a device id yield an empty history, never
// a fallback to all orders.
func (s *Service) History(ctx context.Context, token string) ([]*Order, error) {
	o, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !o.DeviceID.Valid || o.DeviceID.String == "" {
		return []*Order{}, nil
	}
	return s.repo.ListDeliveredByDevice(ctx, o.DeviceID.String)
}

// ActiveForDevice reports the tri-state activity of a device's most
// recent order.
func (s *Service) ActiveForDevice(ctx context.Context, deviceID string) (ActiveState, *Order, error) {
	o, err := s.repo.LatestByDevice(ctx, deviceID)
	if err == ErrOrderNotFound {
		return ActiveNone, nil, nil
	}
	if err != nil {
		return ActiveNone, nil, err
	}
	state := o.Active()
	if state == ActiveNone {
		return ActiveNone, nil, nil
	}
	return state, o, nil
}

// Delete removes the order record and every media file it references.
// File removal failures never block the record deletion.
func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if o.ArtworkImage.Valid {
		s.media.RemoveUpload(o.ArtworkImage.String)
	}
	if o.SpaceImage.Valid {
		s.media.RemoveUpload(o.SpaceImage.String)
	}
	for _, name := range o.Artifacts() {
		s.media.RemoveDelivery(name)
	}
	return nil
}

// newDeliveryToken returns a compact URL-safe token: a v4 UUID with the
// dashes stripped, 32 hex characters.
func newDeliveryToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
