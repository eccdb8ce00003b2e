package order

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"artdesk/internal/pkg/utils"
)

// Mock repository

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByToken(ctx context.Context, token string) (*Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status *Status) ([]*Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) LatestByDevice(ctx context.Context, deviceID string) (*Order, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListDeliveredByDevice(ctx context.Context, deviceID string) ([]*Order, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) MarkDelivered(ctx context.Context, id, imagesJSON, text string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, imagesJSON, text, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SetNotified(ctx context.Context, id string, notified bool) error {
	args := m.Called(ctx, id, notified)
	return args.Error(0)
}

func (m *MockRepository) MarkViewed(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MarkDownloaded(ctx context.Context, id string, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock media store

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) SaveUpload(fh *multipart.FileHeader, tag string) (string, error) {
	args := m.Called(fh, tag)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) SaveDelivery(fh *multipart.FileHeader) (string, error) {
	args := m.Called(fh)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) DeliveryPath(name string) string {
	args := m.Called(name)
	return args.String(0)
}

func (m *MockMediaStore) RemoveUpload(name string)   { m.Called(name) }
func (m *MockMediaStore) RemoveDelivery(name string) { m.Called(name) }

// fakeNotifier avoids racy mock assertions for the fire-and-forget
// submission path.
type fakeNotifier struct {
	mu           sync.Mutex
	submitted    chan string
	submittedErr error
	deliveredErr error
	deliveredTo  []string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{submitted: make(chan string, 8)}
}

func (f *fakeNotifier) OrderSubmitted(ctx context.Context, o *Order) error {
	f.submitted <- o.ID
	return f.submittedErr
}

func (f *fakeNotifier) OrderDelivered(ctx context.Context, o *Order, deliveryURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveredTo = append(f.deliveredTo, o.ReceiveTarget)
	return f.deliveredErr
}

type rendererFunc func(text, outputPath string) (string, error)

func (f rendererFunc) RenderToFile(text, outputPath string) (string, error) {
	return f(text, outputPath)
}

func okRenderer(text, outputPath string) (string, error) { return outputPath, nil }

func newTestService(repo Repository, media MediaStore, notifier Notifier, renderer TextRenderer) *Service {
	return NewService(repo, media, notifier, renderer, "http://example.test", zap.NewNop())
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 64}
}

// Submission

func TestSubmitRejectsInvalidServiceKind(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceKind:   "resize_everything",
		ReceiveTarget: "someone@example.com",
	})

	assert.ErrorIs(t, err, ErrInvalidServiceKind)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmitValidationOrderKindBeforeTarget(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	// Both kind and target are bad; the kind error wins.
	_, err := svc.Submit(context.Background(), SubmitRequest{ServiceKind: "nope", ReceiveTarget: "  "})
	assert.ErrorIs(t, err, ErrInvalidServiceKind)
}

func TestSubmitRejectsBlankTarget(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceKind:   string(KindHangInHome),
		ReceiveTarget: "   ",
		Artwork:       fileHeader("a.jpg"),
		Space:         fileHeader("s.jpg"),
	})
	assert.ErrorIs(t, err, ErrMissingTarget)
}

func TestSubmitRejectsInvalidChannel(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceKind:    string(KindRecommendWork),
		ReceiveChannel: "pigeon",
		ReceiveTarget:  "someone@example.com",
		Space:          fileHeader("s.jpg"),
	})
	assert.ErrorIs(t, err, ErrInvalidReceiveChannel)
}

func TestSubmitImageRequirementsPerKind(t *testing.T) {
	cases := []struct {
		name    string
		kind    ServiceKind
		artwork *multipart.FileHeader
		space   *multipart.FileHeader
		wantErr bool
	}{
		{"hang_in_home needs both, artwork missing", KindHangInHome, nil, fileHeader("s.jpg"), true},
		{"hang_in_home needs both, space missing", KindHangInHome, fileHeader("a.jpg"), nil, true},
		{"hang_in_home both present", KindHangInHome, fileHeader("a.jpg"), fileHeader("s.jpg"), false},
		{"recommend_work needs space", KindRecommendWork, fileHeader("a.jpg"), nil, true},
		{"recommend_work space present", KindRecommendWork, nil, fileHeader("s.jpg"), false},
		{"recommend_space needs artwork", KindRecommendSpace, nil, fileHeader("s.jpg"), true},
		{"recommend_space artwork present", KindRecommendSpace, fileHeader("a.jpg"), nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			store := new(MockMediaStore)
			store.On("SaveUpload", mock.Anything, "artwork").Return("artwork_x.jpg", nil)
			store.On("SaveUpload", mock.Anything, "space").Return("space_x.jpg", nil)
			svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(okRenderer))

			_, err := svc.Submit(context.Background(), SubmitRequest{
				ServiceKind:   string(tc.kind),
				ReceiveTarget: "someone@example.com",
				Artwork:       tc.artwork,
				Space:         tc.space,
			})

			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMissingRequiredImage)
				assert.Contains(t, err.Error(), string(tc.kind))
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitCreatesPendingOrder(t *testing.T) {
	repo := new(MockRepository)
	var created *Order
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*Order)
	}).Return(nil)

	store := new(MockMediaStore)
	store.On("SaveUpload", mock.Anything, "artwork").Return("artwork_1.jpg", nil)
	store.On("SaveUpload", mock.Anything, "space").Return("space_1.jpg", nil)

	notifier := newFakeNotifier()
	svc := newTestService(repo, store, notifier, rendererFunc(okRenderer))

	o, err := svc.Submit(context.Background(), SubmitRequest{
		DeviceID:       "device-1",
		ServiceKind:    string(KindHangInHome),
		ReceiveTarget:  "someone@example.com",
		ExtraRequested: true,
		Artwork:        fileHeader("a.jpg"),
		Space:          fileHeader("s.jpg"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, StatusPending, o.Status)
	assert.NotEmpty(t, o.ID)
	assert.Len(t, o.DeliveryToken, 32)
	assert.False(t, o.DeliveredAt.Valid)
	assert.Empty(t, o.Artifacts())
	assert.Equal(t, ChannelEmail, o.ReceiveChannel) // default channel
	assert.Equal(t, KindHangInHome.Label(), o.ServiceLabel)
	assert.Equal(t, "artwork_1.jpg", o.ArtworkImage.String)
	assert.Equal(t, "space_1.jpg", o.SpaceImage.String)

	// Operator notification happens after the submission returns.
	select {
	case id := <-notifier.submitted:
		assert.Equal(t, o.ID, id)
	case <-time.After(time.Second):
		t.Fatal("operator notification was never dispatched")
	}
}

func TestSubmitSucceedsWhenOperatorNotificationFails(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store := new(MockMediaStore)
	store.On("SaveUpload", mock.Anything, "space").Return("space_1.jpg", nil)

	notifier := newFakeNotifier()
	notifier.submittedErr = errors.New("smtp down")
	svc := newTestService(repo, store, notifier, rendererFunc(okRenderer))

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceKind:   string(KindRecommendWork),
		ReceiveTarget: "someone@example.com",
		Space:         fileHeader("s.jpg"),
	})
	assert.NoError(t, err)
	<-notifier.submitted
}

func TestSubmitAssignsUniqueIDsAndTokens(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	store := new(MockMediaStore)
	store.On("SaveUpload", mock.Anything, "artwork").Return("artwork_1.jpg", nil)

	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(okRenderer))

	req := SubmitRequest{
		ServiceKind:   string(KindRecommendSpace),
		ReceiveTarget: "someone@example.com",
		Artwork:       fileHeader("a.jpg"),
	}
	a, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.DeliveryToken, b.DeliveryToken)
}

// Delivery

func pendingOrder(id string) *Order {
	return &Order{
		ID:             id,
		ServiceKind:    KindHangInHome,
		ServiceLabel:   KindHangInHome.Label(),
		ReceiveChannel: ChannelEmail,
		ReceiveTarget:  "someone@example.com",
		Status:         StatusPending,
		DeliveryToken:  strings.Repeat("a", 32),
		DeliveryImages: "[]",
		CreatedAt:      time.Now(),
	}
}

func TestDeliverUnknownOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, ErrOrderNotFound)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))
	_, err := svc.Deliver(context.Background(), "missing", nil, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestDeliverIsOneShot(t *testing.T) {
	o := pendingOrder("o1")
	o.Status = StatusDelivered

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(o, nil)

	store := new(MockMediaStore)
	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(okRenderer))

	_, err := svc.Deliver(context.Background(), "o1", []*multipart.FileHeader{fileHeader("r.jpg")}, "")
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
	store.AssertNotCalled(t, "SaveDelivery", mock.Anything)
}

func TestDeliverAppendsRenderedTextAfterUploads(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(pendingOrder("o1"), nil)

	var persisted string
	repo.On("MarkDelivered", mock.Anything, "o1", mock.AnythingOfType("string"), "Hello\nWorld", mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(true, nil)
	repo.On("SetNotified", mock.Anything, "o1", true).Return(nil)

	store := new(MockMediaStore)
	store.On("SaveDelivery", mock.Anything).Return("delivery_1.jpg", nil).Once()
	store.On("SaveDelivery", mock.Anything).Return("delivery_2.jpg", nil).Once()
	store.On("DeliveryPath", mock.AnythingOfType("string")).Return("/tmp/out.png")

	notifier := newFakeNotifier()
	svc := newTestService(repo, store, notifier, rendererFunc(okRenderer))

	res, err := svc.Deliver(context.Background(), "o1",
		[]*multipart.FileHeader{fileHeader("r1.jpg"), fileHeader("r2.jpg")}, "Hello\nWorld")
	require.NoError(t, err)

	artifacts := utils.StringToArtifacts(persisted)
	require.Len(t, artifacts, 3)
	assert.Equal(t, "delivery_1.jpg", artifacts[0])
	assert.Equal(t, "delivery_2.jpg", artifacts[1])
	assert.True(t, strings.HasPrefix(artifacts[2], "text_"))
	assert.True(t, strings.HasSuffix(artifacts[2], ".png"))

	assert.Equal(t, StatusDelivered, res.Order.Status)
	assert.True(t, res.Order.DeliveredAt.Valid)
	assert.True(t, res.Notified)
	assert.Equal(t, "http://example.test/d/"+res.Order.DeliveryToken, res.DeliveryURL)
	assert.Equal(t, []string{"someone@example.com"}, notifier.deliveredTo)
}

func TestDeliverBlankTextRendersNothing(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(pendingOrder("o1"), nil)

	var persisted string
	repo.On("MarkDelivered", mock.Anything, "o1", mock.Anything, "  \n ", mock.Anything).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(true, nil)
	repo.On("SetNotified", mock.Anything, "o1", true).Return(nil)

	store := new(MockMediaStore)
	store.On("SaveDelivery", mock.Anything).Return("delivery_1.jpg", nil)

	rendered := false
	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(
		func(text, path string) (string, error) {
			rendered = true
			return path, nil
		}))

	_, err := svc.Deliver(context.Background(), "o1", []*multipart.FileHeader{fileHeader("r.jpg")}, "  \n ")
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.Equal(t, []string{"delivery_1.jpg"}, utils.StringToArtifacts(persisted))
}

func TestDeliverNotificationFailureIsRecordedNotFatal(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(pendingOrder("o1"), nil)
	repo.On("MarkDelivered", mock.Anything, "o1", mock.Anything, "", mock.Anything).Return(true, nil)
	repo.On("SetNotified", mock.Anything, "o1", false).Return(nil)

	store := new(MockMediaStore)
	store.On("SaveDelivery", mock.Anything).Return("delivery_1.jpg", nil)

	notifier := newFakeNotifier()
	notifier.deliveredErr = errors.New("mailbox unavailable")
	svc := newTestService(repo, store, notifier, rendererFunc(okRenderer))

	res, err := svc.Deliver(context.Background(), "o1", []*multipart.FileHeader{fileHeader("r.jpg")}, "")
	require.NoError(t, err)
	assert.False(t, res.Notified)
	repo.AssertCalled(t, "SetNotified", mock.Anything, "o1", false)
}

func TestDeliverRenderFailureSkipsTextImage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(pendingOrder("o1"), nil)

	var persisted string
	repo.On("MarkDelivered", mock.Anything, "o1", mock.Anything, "note", mock.Anything).
		Run(func(args mock.Arguments) { persisted = args.String(2) }).
		Return(true, nil)
	repo.On("SetNotified", mock.Anything, "o1", true).Return(nil)

	store := new(MockMediaStore)
	store.On("SaveDelivery", mock.Anything).Return("delivery_1.jpg", nil)
	store.On("DeliveryPath", mock.Anything).Return("/tmp/out.png")

	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(
		func(text, path string) (string, error) {
			return "", errors.New("font unavailable")
		}))

	_, err := svc.Deliver(context.Background(), "o1", []*multipart.FileHeader{fileHeader("r.jpg")}, "note")
	require.NoError(t, err)
	assert.Equal(t, []string{"delivery_1.jpg"}, utils.StringToArtifacts(persisted))
}

func TestDeliverLosingTheRaceCleansUpFiles(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(pendingOrder("o1"), nil)
	repo.On("MarkDelivered", mock.Anything, "o1", mock.Anything, "", mock.Anything).Return(false, nil)

	store := new(MockMediaStore)
	store.On("SaveDelivery", mock.Anything).Return("delivery_1.jpg", nil)
	store.On("RemoveDelivery", "delivery_1.jpg").Return()

	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(okRenderer))

	_, err := svc.Deliver(context.Background(), "o1", []*multipart.FileHeader{fileHeader("r.jpg")}, "")
	assert.ErrorIs(t, err, ErrAlreadyDelivered)
	store.AssertCalled(t, "RemoveDelivery", "delivery_1.jpg")
}

// Customer transitions

func TestMarkViewedIsNoOpBeforeDelivery(t *testing.T) {
	o := pendingOrder("o1")
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, o.DeliveryToken).Return(o, nil)
	repo.On("MarkViewed", mock.Anything, "o1", mock.AnythingOfType("time.Time")).Return(false, nil)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	got, err := svc.MarkViewed(context.Background(), o.DeliveryToken)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.False(t, got.ViewedAt.Valid)
}

func TestMarkViewedAfterDelivery(t *testing.T) {
	o := pendingOrder("o1")
	o.Status = StatusDelivered
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, o.DeliveryToken).Return(o, nil)
	repo.On("MarkViewed", mock.Anything, "o1", mock.AnythingOfType("time.Time")).Return(true, nil)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	got, err := svc.MarkViewed(context.Background(), o.DeliveryToken)
	require.NoError(t, err)
	assert.Equal(t, StatusViewed, got.Status)
	assert.True(t, got.ViewedAt.Valid)
}

func TestMarkDownloadedFromViewed(t *testing.T) {
	o := pendingOrder("o1")
	o.Status = StatusViewed
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, o.DeliveryToken).Return(o, nil)
	repo.On("MarkDownloaded", mock.Anything, "o1", mock.AnythingOfType("time.Time")).Return(true, nil)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	got, err := svc.MarkDownloaded(context.Background(), o.DeliveryToken)
	require.NoError(t, err)
	assert.Equal(t, StatusDownloaded, got.Status)
	assert.True(t, got.DownloadedAt.Valid)
}

// Device activity

func TestActiveForDeviceTriState(t *testing.T) {
	cases := []struct {
		status Status
		want   ActiveState
	}{
		{StatusPending, ActivePending},
		{StatusProcessing, ActivePending},
		{StatusDelivered, ActiveDelivered},
		{StatusViewed, ActiveNone},
		{StatusDownloaded, ActiveNone},
		{Status("cancelled"), ActiveNone},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			o := pendingOrder("o1")
			o.Status = tc.status
			repo := new(MockRepository)
			repo.On("LatestByDevice", mock.Anything, "device-1").Return(o, nil)

			svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

			state, got, err := svc.ActiveForDevice(context.Background(), "device-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, state)
			if tc.want == ActiveNone {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
			}
		})
	}
}

func TestActiveForDeviceWithoutOrders(t *testing.T) {
	repo := new(MockRepository)
	repo.On("LatestByDevice", mock.Anything, "device-1").Return(nil, ErrOrderNotFound)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	state, got, err := svc.ActiveForDevice(context.Background(), "device-1")
	require.NoError(t, err)
	assert.Equal(t, ActiveNone, state)
	assert.Nil(t, got)
}

// History

func TestHistoryWithoutDeviceIsEmpty(t *testing.T) {
	o := pendingOrder("o1")
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, o.DeliveryToken).Return(o, nil)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))

	orders, err := svc.History(context.Background(), o.DeliveryToken)
	require.NoError(t, err)
	assert.Empty(t, orders)
	repo.AssertNotCalled(t, "ListDeliveredByDevice", mock.Anything, mock.Anything)
}

// Deletion

func TestDeleteRemovesRecordAndFiles(t *testing.T) {
	o := pendingOrder("o1")
	o.ArtworkImage = sql.NullString{String: "artwork_1.jpg", Valid: true}
	o.SpaceImage = sql.NullString{String: "space_1.jpg", Valid: true}
	o.DeliveryImages = utils.ArtifactsToString([]string{"delivery_1.jpg", "text_1.png"})

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "o1").Return(o, nil)
	repo.On("Delete", mock.Anything, "o1").Return(nil)

	store := new(MockMediaStore)
	store.On("RemoveUpload", "artwork_1.jpg").Return()
	store.On("RemoveUpload", "space_1.jpg").Return()
	store.On("RemoveDelivery", "delivery_1.jpg").Return()
	store.On("RemoveDelivery", "text_1.png").Return()

	svc := newTestService(repo, store, newFakeNotifier(), rendererFunc(okRenderer))

	require.NoError(t, svc.Delete(context.Background(), "o1"))
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeleteUnknownOrder(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "missing").Return(nil, ErrOrderNotFound)

	svc := newTestService(repo, new(MockMediaStore), newFakeNotifier(), rendererFunc(okRenderer))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), ErrOrderNotFound)
}
