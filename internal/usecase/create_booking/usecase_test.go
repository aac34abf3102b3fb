package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtoblesk/booking-service/internal/calendar"
	"github.com/avtoblesk/booking-service/internal/domain"
	catalogClient "github.com/avtoblesk/booking-service/internal/integrations/catalog"
	"github.com/avtoblesk/booking-service/pkg/ptr"
	"github.com/avtoblesk/booking-service/pkg/types"
)

// memoryBookingRepo потокобезопасный репозиторий в памяти для тестов гонок
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (m *memoryBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *memoryBookingRepo) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.BookingDate.Equal(date) && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

// mutexTxManager эмулирует сериализуемые транзакции взаимным исключением:
// критические секции конкурентных Execute выполняются строго по очереди
type mutexTxManager struct {
	mu sync.Mutex
}

func (m *mutexTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakeCatalog struct {
	service *catalogClient.Service
	addons  []*catalogClient.Addon
}

func (f *fakeCatalog) GetService(_ context.Context, _ int64) (*catalogClient.Service, error) {
	return f.service, nil
}

func (f *fakeCatalog) GetAddons(_ context.Context, ids []int64) ([]*catalogClient.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return f.addons, nil
}

type recordingNotifier struct {
	sent chan *domain.Booking
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan *domain.Booking, 8)}
}

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, booking *domain.Booking) error {
	n.sent <- booking
	return nil
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
	failures  int
}

func (m *countingMetrics) IncBookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) IncBookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

func (m *countingMetrics) IncNotificationFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

func weekdaysOnly() domain.WeekSchedule {
	open := domain.DayWindow{Open: "08:00", Close: "20:00"}
	return domain.WeekSchedule{
		Monday:    open,
		Tuesday:   open,
		Wednesday: open,
		Thursday:  open,
		Friday:    open,
		Saturday:  domain.DayWindow{Open: "09:00", Close: "18:00"},
		Sunday:    domain.DayWindow{Closed: true},
	}
}

func washService() *catalogClient.Service {
	return &catalogClient.Service{
		ID:              3,
		Name:            "Комплексная мойка",
		Price:           4500,
		DurationMinutes: 90,
		Active:          true,
	}
}

type testEnv struct {
	uc       *UseCase
	repo     *memoryBookingRepo
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	repo := &memoryBookingRepo{}
	notifier := newRecordingNotifier()
	m := &countingMetrics{}

	uc := NewUseCase(
		repo,
		&fakeCatalog{service: washService()},
		calendar.NewRules(weekdaysOnly(), time.UTC),
		&mutexTxManager{},
		notifier,
		m,
		ScheduleParams{
			SlotStepMinutes:      120,
			SameDayBufferMinutes: 120,
			AdvanceBookingDays:   60,
		},
		testLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	return &testEnv{uc: uc, repo: repo, notifier: notifier, metrics: m}
}

func validRequest(date time.Time, start string) *Request {
	return &Request{
		CustomerName:  "Иван Петров",
		CustomerEmail: "ivan@example.com",
		CustomerPhone: "+79990001122",
		ServiceID:     3,
		Date:          date,
		StartTime:     types.TimeString(start),
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	// 2026-06-01 - понедельник
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	req := validRequest(tuesday, "10:00")
	req.VehiclePlate = ptr.Ptr("А123ВС777")
	req.Notes = ptr.Ptr("Сильное загрязнение салона")

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.NotEqual(t, uuid.Nil, resp.Reference)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Комплексная мойка", resp.ServiceName)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 4500.0, resp.TotalPrice)
	require.NotNil(t, resp.VehiclePlate)
	assert.Equal(t, "А123ВС777", *resp.VehiclePlate)

	// Уведомление отправляется после коммита
	select {
	case sent := <-env.notifier.sent:
		assert.Equal(t, resp.Reference, sent.Reference)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation was not sent")
	}

	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, 0, env.metrics.conflicts)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
	require.NoError(t, err)

	// Пересекающийся интервал: 10:00-11:30 занят, запрос на 10:00 повторно
	_, err = env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
	require.ErrorIs(t, err, ErrSlotTaken)

	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, 1, env.metrics.conflicts)
}

func TestUseCase_Execute_BoundaryTouchIsNotConflict(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// 08:00-09:30 занято, услуга 90 минут
	_, err := env.uc.Execute(context.Background(), validRequest(tuesday, "08:00"))
	require.NoError(t, err)

	// 10:00 свободно: интервалы 08:00-09:30 и 10:00-11:30 не пересекаются
	_, err = env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
	require.NoError(t, err)
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	resp, err := env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
	require.NoError(t, err)

	// Отменяем созданное бронирование напрямую в репозитории
	env.repo.mu.Lock()
	for _, b := range env.repo.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelled
		}
	}
	env.repo.mu.Unlock()

	_, err = env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
	require.NoError(t, err)
}

func TestUseCase_Execute_ClosedDay(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 6, 7, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), validRequest(sunday, "10:00"))
	require.ErrorIs(t, err, ErrStudioClosed)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), validRequest(now.AddDate(0, 0, -1), "10:00"))
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_TimeValidation(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{name: "before opening", start: "07:00", wantErr: ErrOutsideWorkingHours},
		{name: "off grid", start: "09:00", wantErr: ErrOutsideWorkingHours},
		{name: "does not fit before closing", start: "20:00", wantErr: ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.uc.Execute(context.Background(), validRequest(tuesday, tt.start))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_SameDayBuffer(t *testing.T) {
	// Сегодня 2026-06-01 (понедельник), 15:30. Буфер 120 минут:
	// минимально допустимое начало 17:30, ближайший слот сетки 18:00.
	now := time.Date(2026, 6, 1, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	_, err := env.uc.Execute(context.Background(), validRequest(today, "16:00"))
	require.ErrorIs(t, err, ErrTooLateToBook)

	_, err = env.uc.Execute(context.Background(), validRequest(today, "18:00"))
	require.NoError(t, err)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty name", mutate: func(r *Request) { r.CustomerName = "  " }},
		{name: "bad email", mutate: func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{name: "empty phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "zero service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "bad start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "duplicate addons", mutate: func(r *Request) { r.AddonIDs = []int64{7, 7} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(tuesday, "10:00")
			tt.mutate(req)
			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_DurationOutOfRange(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	// Услуга 90 минут + опция 420 минут: суммарно больше рабочего дня
	env.uc.catalog = &fakeCatalog{
		service: washService(),
		addons: []*catalogClient.Addon{
			{ID: 7, Name: "Полная оклейка кузова", Price: 90000, ExtraMinutes: 420, Active: true},
		},
	}

	req := validRequest(tuesday, "08:00")
	req.AddonIDs = []int64{7}

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_ConcurrentSameSlot(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tuesday := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.uc.Execute(context.Background(), validRequest(tuesday, "10:00"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrSlotTaken)
		}
	}

	// Ровно одна из конкурентных попыток получает слот
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, env.metrics.created)
	assert.Equal(t, attempts-1, env.metrics.conflicts)
}
