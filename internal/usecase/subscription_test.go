package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unirenta/internal/entity"
)

var anchor = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func snapshot(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func testAssignment() *entity.Assignment {
	return &entity.Assignment{ID: 1, TenantID: 11, UnitID: 7, AnchorDate: anchor}
}

func testUnit() *entity.Unit {
	internetID := int64(3)
	return &entity.Unit{
		ID:    7,
		Name:  "Loft 2B",
		Price: money("3500.00"),
		Details: entity.UnitDetails{Services: []entity.OfferedService{
			{ID: &internetID},
			{Name: "Laundry"},
		}},
	}
}

func svcInternet() *entity.Service {
	return &entity.Service{ID: 3, Name: "Internet", Price: money("150"), IsActive: true}
}

func svcWater() *entity.Service {
	return &entity.Service{ID: 1, Name: "Water", Price: money("200"), IsBase: true, IsActive: true}
}

func svcGym() *entity.Service {
	return &entity.Service{ID: 4, Name: "Gym", Price: money("80"), IsActive: true}
}

// fixedEngine pins the engine clock so cut-date math is deterministic
func fixedEngine(repo BillingRepository, sender PreinvoiceSender, now time.Time) *Subscription {
	uc := NewSubscription(repo, sender)
	uc.Now = func() time.Time { return now }
	return uc
}

// expectTxPassthrough makes WithTx run its callback against the same mock
func expectTxPassthrough(repo *MockBillingRepository) {
	repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, BillingRepository) error) error {
			return fn(ctx, repo)
		}).Times(1)
}

func Test_subscription_AddService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, on anchor day activates immediately", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(2)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)

		var created *entity.ServiceLink
		repo.EXPECT().CreateLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error) {
				assert.Equal(t, entity.LinkActive, l.State)
				require.NotNil(t, l.EffectiveFrom)
				assert.Equal(t, now, *l.EffectiveFrom)
				require.NotNil(t, l.PriceSnapshot)
				assert.True(t, l.PriceSnapshot.Equal(money("150")))
				l.ID = 42
				created = l
				return l, nil
			}).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).
			DoAndReturn(func(context.Context, int64) ([]*entity.ServiceLink, error) {
				return []*entity.ServiceLink{created}, nil
			}).Times(1)

		uc := fixedEngine(repo, nil, now)

		b, err := uc.AddService(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, b.LineItems, 1)
		assert.True(t, b.LineItems[0].Price.Equal(money("150")))
		assert.True(t, b.Total.Equal(money("3650")), "total %s", b.Total)
	})

	t.Run("ok, mid cycle schedules pending for next cut", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)

		var created *entity.ServiceLink
		repo.EXPECT().CreateLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error) {
				assert.Equal(t, entity.LinkPending, l.State)
				require.NotNil(t, l.EffectiveFrom)
				assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *l.EffectiveFrom)
				l.ID = 43
				created = l
				return l, nil
			}).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).
			DoAndReturn(func(context.Context, int64) ([]*entity.ServiceLink, error) {
				return []*entity.ServiceLink{created}, nil
			}).Times(1)

		uc := fixedEngine(repo, nil, now)

		b, err := uc.AddService(ctx, 1, 3)
		require.NoError(t, err)
		// the pending link is not billable yet, so the breakdown stays base-only
		assert.Empty(t, b.LineItems)
		assert.True(t, b.Total.Equal(money("3500")))
	})

	t.Run("err, base service cannot be added manually", func(t *testing.T) {
		ctx := context.Background()

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(1)).Return(svcWater(), nil).Times(1)
		repo.EXPECT().CreateLink(gomock.Any(), gomock.Any()).Times(0)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrBaseServiceImmutable)
	})

	t.Run("err, inactive service", func(t *testing.T) {
		ctx := context.Background()

		inactive := svcInternet()
		inactive.IsActive = false

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(inactive, nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("err, service not offered for the unit", func(t *testing.T) {
		ctx := context.Background()

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(4)).Return(svcGym(), nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 4)
		assert.ErrorIs(t, err, ErrNotOffered)
	})

	t.Run("ok, offered by trimmed case-insensitive name", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		laundry := &entity.Service{ID: 5, Name: "  LAUNDRY ", Price: money("60"), IsActive: true}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(5)).Return(laundry, nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)
		repo.EXPECT().CreateLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error) {
				l.ID = 44
				return l, nil
			}).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		_, err := uc.AddService(ctx, 1, 5)
		assert.NoError(t, err)
	})

	t.Run("err, duplicate add against active link", func(t *testing.T) {
		ctx := context.Background()

		existing := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{existing}, nil).Times(1)
		repo.EXPECT().CreateLink(gomock.Any(), gomock.Any()).Times(0)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrAlreadyActive)
	})

	t.Run("err, duplicate add against pending link", func(t *testing.T) {
		ctx := context.Background()

		from := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		existing := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkPending, EffectiveFrom: &from}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{existing}, nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrAlreadyPending)
	})

	t.Run("ok, re-add after a fully cancelled link", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

		until := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		history := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkCancelled, EffectiveUntil: &until}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{history}, nil).Times(1)
		repo.EXPECT().CreateLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.ServiceLink) (*entity.ServiceLink, error) {
				assert.Equal(t, entity.LinkPending, l.State)
				l.ID = 45
				return l, nil
			}).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{history}, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		_, err := uc.AddService(ctx, 1, 3)
		assert.NoError(t, err)
	})

	t.Run("err, invalid ids", func(t *testing.T) {
		repo := NewMockBillingRepository(ctrl)
		uc := NewSubscription(repo, nil)

		_, err := uc.AddService(context.Background(), 0, 3)
		assert.ErrorIs(t, err, ErrInvalidID)

		_, err = uc.AddService(context.Background(), 1, -2)
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("err, create failure rolls the operation back", func(t *testing.T) {
		ctx := context.Background()
		expected := errors.New("insert failed")

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)
		repo.EXPECT().CreateLink(ctx, gomock.Any()).Return(nil, expected).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC))

		_, err := uc.AddService(ctx, 1, 3)
		assert.ErrorIs(t, err, expected)
	})
}

func Test_subscription_RemoveService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, pending link is deleted outright", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

		from := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkPending, EffectiveFrom: &from, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().DeleteLink(ctx, int64(42)).Return(nil).Times(1)
		repo.EXPECT().UpdateLink(gomock.Any(), gomock.Any()).Times(0)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		b, err := uc.RemoveService(ctx, 1, 3)
		require.NoError(t, err)
		assert.Empty(t, b.LineItems)
		assert.True(t, b.Total.Equal(money("3500")))
	})

	t.Run("ok, active link cancelled through end of cycle", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

		from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive, EffectiveFrom: &from, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(2)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().UpdateLink(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.ServiceLink) error {
				assert.Equal(t, entity.LinkCancelled, l.State)
				require.NotNil(t, l.EffectiveUntil)
				assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), *l.EffectiveUntil)
				return nil
			}).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		// still billed through the cut the tenant committed to
		b, err := uc.RemoveService(ctx, 1, 3)
		require.NoError(t, err)
		require.Len(t, b.LineItems, 1)
		assert.True(t, b.Total.Equal(money("3650")))
	})

	t.Run("err, no link for the pair", func(t *testing.T) {
		ctx := context.Background()

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		_, err := uc.RemoveService(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrLinkNotFound)
	})

	t.Run("err, only cancelled history remains", func(t *testing.T) {
		ctx := context.Background()

		until := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		history := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkCancelled, EffectiveUntil: &until}

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{history}, nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		_, err := uc.RemoveService(ctx, 1, 3)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("err, base service cannot be removed", func(t *testing.T) {
		ctx := context.Background()

		repo := NewMockBillingRepository(ctrl)
		expectTxPassthrough(repo)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(1)).Return(svcWater(), nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		_, err := uc.RemoveService(ctx, 1, 1)
		assert.ErrorIs(t, err, ErrBaseServiceImmutable)
	})
}

func Test_subscription_CurrentBreakdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, snapshot survives catalog price change", func(t *testing.T) {
		ctx := context.Background()

		// subscribed at 100, catalog later raised to 150
		from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive, EffectiveFrom: &from, PriceSnapshot: snapshot("100")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

		b, err := uc.CurrentBreakdown(ctx, 1)
		require.NoError(t, err)
		require.Len(t, b.LineItems, 1)
		assert.True(t, b.LineItems[0].Price.Equal(money("100")), "line price %s", b.LineItems[0].Price)
		assert.True(t, b.Total.Equal(money("3600")))
	})

	t.Run("ok, cancelled link still billed before its end date", func(t *testing.T) {
		ctx := context.Background()

		until := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkCancelled, EffectiveUntil: &until, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

		b, err := uc.CurrentBreakdown(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, b.LineItems, 1)
	})

	t.Run("ok, cancelled link excluded past its end date", func(t *testing.T) {
		ctx := context.Background()

		until := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkCancelled, EffectiveUntil: &until, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)

		uc := fixedEngine(repo, nil, time.Date(2024, time.February, 16, 0, 0, 0, 0, time.UTC))

		b, err := uc.CurrentBreakdown(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, b.LineItems)
		assert.True(t, b.Total.Equal(money("3500")))
	})

	t.Run("err, assignment missing", func(t *testing.T) {
		ctx := context.Background()

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(99)).Return(nil, ErrAssignmentNotFound).Times(1)

		uc := NewSubscription(repo, nil)

		_, err := uc.CurrentBreakdown(ctx, 99)
		assert.ErrorIs(t, err, ErrAssignmentNotFound)
	})
}

func Test_subscription_Preinvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, projects onto the next cut", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive, EffectiveFrom: &from, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		inv, err := uc.Preinvoice(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), inv.CutDate)
		assert.Equal(t, "Loft 2B", inv.UnitName)
		require.Len(t, inv.Services, 1)
		assert.True(t, inv.Total.Equal(money("3650")))
	})

	t.Run("ok, includes a pending link starting at the cut", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		from := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		pending := &entity.ServiceLink{ID: 43, AssignmentID: 1, ServiceID: 3, State: entity.LinkPending, EffectiveFrom: &from, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{pending}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		inv, err := uc.Preinvoice(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, from, inv.CutDate)
		assert.Len(t, inv.Services, 1)
	})

	t.Run("ok, advances past the immediate cut for a late pending link", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		activeFrom := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		lateFrom := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		active := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive, EffectiveFrom: &activeFrom, PriceSnapshot: snapshot("150")}
		late := &entity.ServiceLink{ID: 43, AssignmentID: 1, ServiceID: 5, State: entity.LinkPending, EffectiveFrom: &lateFrom, PriceSnapshot: snapshot("60")}

		laundry := &entity.Service{ID: 5, Name: "Laundry", Price: money("60"), IsActive: true}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{active, late}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(5)).Return(laundry, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		inv, err := uc.Preinvoice(ctx, 1)
		require.NoError(t, err)
		// the first cut where the whole committed set is billable
		assert.Equal(t, lateFrom, inv.CutDate)
		assert.Len(t, inv.Services, 2)
		assert.True(t, inv.Total.Equal(money("3710")), "total %s", inv.Total)
	})

	t.Run("ok, cancelled link drops off the projected cut", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		until := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)
		cancelled := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkCancelled, EffectiveUntil: &until, PriceSnapshot: snapshot("150")}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{cancelled}, nil).Times(1)

		uc := fixedEngine(repo, nil, now)

		inv, err := uc.Preinvoice(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, inv.Services)
		assert.True(t, inv.Total.Equal(money("3500")))
	})
}

func Test_subscription_SendPreinvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("ok, projection delivered to the tenant", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		link := &entity.ServiceLink{ID: 42, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive, EffectiveFrom: &from, PriceSnapshot: snapshot("150")}
		contact := &entity.TenantContact{ID: 11, Name: "Ana", Email: "ana@example.com"}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(2)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return([]*entity.ServiceLink{link}, nil).Times(1)
		repo.EXPECT().GetService(ctx, int64(3)).Return(svcInternet(), nil).Times(1)
		repo.EXPECT().GetTenantContact(ctx, int64(11)).Return(contact, nil).Times(1)

		sender := NewMockPreinvoiceSender(ctrl)
		sender.EXPECT().Send(ctx, *contact, gomock.Any()).Return(nil).Times(1)

		uc := fixedEngine(repo, sender, now)

		inv, err := uc.SendPreinvoice(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), inv.CutDate)
	})

	t.Run("err, tenant without email", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

		contact := &entity.TenantContact{ID: 11, Name: "Ana"}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(2)
		repo.EXPECT().GetUnit(ctx, int64(7)).Return(testUnit(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(nil, nil).Times(1)
		repo.EXPECT().GetTenantContact(ctx, int64(11)).Return(contact, nil).Times(1)

		sender := NewMockPreinvoiceSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		uc := fixedEngine(repo, sender, now)

		_, err := uc.SendPreinvoice(ctx, 1)
		assert.ErrorIs(t, err, ErrTenantNoEmail)
	})
}

func Test_subscription_Links(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("err, invalid id", func(t *testing.T) {
		uc := NewSubscription(NewMockBillingRepository(ctrl), nil)
		_, err := uc.Links(context.Background(), 0)
		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("ok, returns links billable or not", func(t *testing.T) {
		ctx := context.Background()

		until := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		links := []*entity.ServiceLink{
			{ID: 1, AssignmentID: 1, ServiceID: 3, State: entity.LinkActive},
			{ID: 2, AssignmentID: 1, ServiceID: 5, State: entity.LinkCancelled, EffectiveUntil: &until},
		}

		repo := NewMockBillingRepository(ctrl)
		repo.EXPECT().GetAssignment(ctx, int64(1)).Return(testAssignment(), nil).Times(1)
		repo.EXPECT().ListLinks(ctx, int64(1)).Return(links, nil).Times(1)

		uc := NewSubscription(repo, nil)

		got, err := uc.Links(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
