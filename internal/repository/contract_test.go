package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC)

// newTestOrder builds an order created at baseTime plus offset.
func newTestOrder(t *testing.T, userID string, offset time.Duration) *model.Order {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	created := baseTime.Add(offset)
	return &model.Order{
		ID:              id,
		OrderNumber:     fmt.Sprintf("ORD-%d-%s", created.UnixMilli(), id.String()[24:]),
		UserID:          userID,
		Status:          model.OrderStatusPending,
		Total:           215000,
		ShippingCost:    15000,
		ShippingAddress: "Budi Santoso, 08123456789, Jl. Merdeka No. 1, Jakarta, 10110",
		PaymentMethod:   "Transfer Bank",
		Items: []model.OrderItem{
			{LineNo: 1, ProductID: 1, Name: "Kemeja Batik", Price: 100000, Quantity: 2, Image: "/img/1.jpg"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// runOrderRepositoryContract exercises behaviour every OrderRepository must share.
func runOrderRepositoryContract(t *testing.T, newRepo func(t *testing.T) OrderRepository) {
	ctx := context.Background()

	t.Run("Create and GetByID", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "user-1", 0)
		order.Items = append(order.Items, model.OrderItem{LineNo: 2, ProductID: 7, Name: "Sarung", Price: 45000, Quantity: 1})

		require.NoError(t, repo.Create(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, order.OrderNumber, got.OrderNumber)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, model.OrderStatusPending, got.Status)
		assert.Equal(t, int64(215000), got.Total)
		assert.Equal(t, int64(15000), got.ShippingCost)
		assert.Equal(t, order.ShippingAddress, got.ShippingAddress)
		assert.Equal(t, "Transfer Bank", got.PaymentMethod)
		assert.Nil(t, got.TrackingNumber)
		assert.True(t, order.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, order.Items, got.Items)
	})

	t.Run("GetByID missing returns nil", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.GetByID(ctx, uuid.New())

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Duplicate order number is rejected", func(t *testing.T) {
		repo := newRepo(t)
		first := newTestOrder(t, "user-1", 0)
		second := newTestOrder(t, "user-1", time.Second)
		second.OrderNumber = first.OrderNumber

		require.NoError(t, repo.Create(ctx, first))
		assert.Error(t, repo.Create(ctx, second))

		got, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("UpdateStatus overwrites status", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "user-1", 0)
		require.NoError(t, repo.Create(ctx, order))

		later := baseTime.Add(time.Hour)
		found, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered, nil, later)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, got.Status)
		assert.True(t, later.Equal(got.UpdatedAt))
		assert.Equal(t, int64(215000), got.Total)
	})

	t.Run("UpdateStatus keeps tracking number unless given", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "user-1", 0)
		require.NoError(t, repo.Create(ctx, order))

		tracking := "JNE1234567890"
		_, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, &tracking, baseTime)
		require.NoError(t, err)
		_, err = repo.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered, nil, baseTime)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, tracking, *got.TrackingNumber)
	})

	t.Run("UpdateStatus on missing order", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.UpdateStatus(ctx, uuid.New(), model.OrderStatusCancelled, nil, baseTime)

		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("TransitionStatus moves only from allowed statuses", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "user-1", 0)
		require.NoError(t, repo.Create(ctx, order))
		allowed := []model.OrderStatus{model.OrderStatusPending, model.OrderStatusProcessing}

		_, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, nil, baseTime)
		require.NoError(t, err)

		moved, err := repo.TransitionStatus(ctx, order.ID, allowed, model.OrderStatusCancelled, baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, moved)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, got.Status)

		_, err = repo.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing, nil, baseTime)
		require.NoError(t, err)

		later := baseTime.Add(2 * time.Hour)
		moved, err = repo.TransitionStatus(ctx, order.ID, allowed, model.OrderStatusCancelled, later)
		require.NoError(t, err)
		assert.True(t, moved)

		got, err = repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusCancelled, got.Status)
		assert.True(t, later.Equal(got.UpdatedAt))
	})

	t.Run("TransitionStatus on missing order", func(t *testing.T) {
		repo := newRepo(t)

		moved, err := repo.TransitionStatus(ctx, uuid.New(), []model.OrderStatus{model.OrderStatusPending}, model.OrderStatusCancelled, baseTime)

		assert.NoError(t, err)
		assert.False(t, moved)
	})

	t.Run("SetTrackingNumber keeps status", func(t *testing.T) {
		repo := newRepo(t)
		order := newTestOrder(t, "user-1", 0)
		require.NoError(t, repo.Create(ctx, order))
		_, err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusShipped, nil, baseTime)
		require.NoError(t, err)

		found, err := repo.SetTrackingNumber(ctx, order.ID, "SICEPAT0001", baseTime)
		require.NoError(t, err)
		assert.True(t, found)

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusShipped, got.Status)
		require.NotNil(t, got.TrackingNumber)
		assert.Equal(t, "SICEPAT0001", *got.TrackingNumber)

		found, err = repo.SetTrackingNumber(ctx, uuid.New(), "SICEPAT0002", baseTime)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ListByUser isolates users and sorts newest first", func(t *testing.T) {
		repo := newRepo(t)
		a1 := newTestOrder(t, "user-a", 0)
		b1 := newTestOrder(t, "user-b", time.Minute)
		a2 := newTestOrder(t, "user-a", 2*time.Minute)
		a3 := newTestOrder(t, "user-a", time.Second)
		for _, o := range []*model.Order{a1, b1, a2, a3} {
			require.NoError(t, repo.Create(ctx, o))
		}

		orders, err := repo.ListByUser(ctx, "user-a", nil)
		require.NoError(t, err)
		require.Len(t, orders, 3)

		assert.Equal(t, a2.ID, orders[0].ID)
		assert.Equal(t, a3.ID, orders[1].ID)
		assert.Equal(t, a1.ID, orders[2].ID)
		for _, o := range orders {
			assert.Equal(t, "user-a", o.UserID)
			assert.Len(t, o.Items, 1)
		}
	})

	t.Run("ListByUser filters by status", func(t *testing.T) {
		repo := newRepo(t)
		pending := newTestOrder(t, "user-a", 0)
		cancelled := newTestOrder(t, "user-a", time.Second)
		require.NoError(t, repo.Create(ctx, pending))
		require.NoError(t, repo.Create(ctx, cancelled))
		_, err := repo.UpdateStatus(ctx, cancelled.ID, model.OrderStatusCancelled, nil, baseTime)
		require.NoError(t, err)

		status := model.OrderStatusCancelled
		orders, err := repo.ListByUser(ctx, "user-a", &status)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, cancelled.ID, orders[0].ID)
	})

	t.Run("ListByUser for unknown user is empty", func(t *testing.T) {
		repo := newRepo(t)

		orders, err := repo.ListByUser(ctx, "nobody", nil)

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}
