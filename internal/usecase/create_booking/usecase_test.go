package create_booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portico-living/court-booking-service/internal/domain"
	"github.com/portico-living/court-booking-service/pkg/timeofday"
)

// Фейки коллабораторов admission

type fakeRepo struct {
	bookings  []*domain.Booking
	nextID    int64
	createErr error
	getErr    error
}

func (r *fakeRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *fakeRepo) GetByDate(_ context.Context, date time.Time, _ bool) ([]*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Date.Equal(date) && b.IsActive() {
			out = append(out, b)
		}
	}
	// Контракт репозитория: по возрастанию времени начала (ORDER BY start_time)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeHolidayChecker struct {
	holidays map[string]bool
	err      error
}

func (c *fakeHolidayChecker) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.holidays[date.Format(domain.DateFormat)], nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

// lockingTxManager сериализует конкурентные admission, как это делает
// сериализуемая транзакция поверх FOR UPDATE
type lockingTxManager struct {
	mu sync.Mutex
}

func (m *lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Общая обвязка тестов

func mustTime(t *testing.T, s string) timeofday.Minutes {
	t.Helper()
	m, err := timeofday.Parse(s)
	require.NoError(t, err)
	return m
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func testPolicy(t *testing.T) domain.Policy {
	t.Helper()
	return domain.Policy{
		Window: domain.OperatingWindow{
			DayStart: mustTime(t, "06:00"),
			DayEnd:   mustTime(t, "22:00"),
		},
		GranularityMinutes: 15,
		MaxDurationMinutes: 90,
		MaxAdvanceDays:     7,
		RestrictedWindows: []domain.Interval{
			{Start: mustTime(t, "07:00"), End: mustTime(t, "10:00")},
			{Start: mustTime(t, "17:00"), End: mustTime(t, "20:00")},
		},
	}
}

type fixture struct {
	uc       *UseCase
	repo     *fakeRepo
	tx       *fakeTxManager
	holidays *fakeHolidayChecker
}

// Понедельник 2026-03-09, 12:00 по часам корта
func newFixture(t *testing.T, policy domain.Policy) *fixture {
	t.Helper()

	repo := &fakeRepo{}
	tx := &fakeTxManager{}
	holidays := &fakeHolidayChecker{holidays: map[string]bool{}}

	uc := NewUseCase(repo, holidays, tx, policy, time.UTC, nopLogger{})
	uc.timeProvider = &fakeClock{now: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, repo: repo, tx: tx, holidays: holidays}
}

func resident(userID int64) domain.Identity {
	return domain.Identity{UserID: userID, Role: domain.RoleResident}
}

func admin(userID int64) domain.Identity {
	return domain.Identity{UserID: userID, Role: domain.RoleAdmin}
}

// Вторник той же недели: будний день внутри окна заблаговременности
const tuesday = "2026-03-10"

// Суббота той же недели
const saturday = "2026-03-14"

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Booking.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Booking.Status)
	assert.Equal(t, 1, f.tx.calls, "admission runs in a serializable transaction")
	require.Len(t, resp.DaySchedule, 1)
	assert.Equal(t, resp.Booking.ID, resp.DaySchedule[0].ID)
}

func TestExecute_ReturnsUpdatedDaySchedule(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "14:00"),
		End:       mustTime(t, "15:00"),
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(2),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})
	require.NoError(t, err)

	// Расписание дня отсортировано по началу, включает обе брони
	require.Len(t, resp.DaySchedule, 2)
	assert.Equal(t, "10:00", resp.DaySchedule[0].Start.String())
	assert.Equal(t, "14:00", resp.DaySchedule[1].Start.String())
}

func TestExecute_EmptyDurationIsInvalidInput(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	for _, end := range []string{"10:00", "09:45"} {
		_, err := f.uc.Execute(context.Background(), &Request{
			Requester: resident(1),
			Date:      date(t, tuesday),
			Start:     mustTime(t, "10:00"),
			End:       mustTime(t, end),
		})

		// Пустая длительность — ошибка входных данных, не нарушение политики
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, f.tx.calls, "rejected before touching the ledger")
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	tests := []struct {
		name       string
		start, end string
	}{
		{name: "before opening", start: "05:30", end: "06:30"},
		{name: "after closing", start: "21:30", end: "22:30"},
		{name: "entirely outside", start: "22:00", end: "23:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				Requester: resident(1),
				Date:      date(t, tuesday),
				Start:     mustTime(t, tt.start),
				End:       mustTime(t, tt.end),
			})
			assert.ErrorIs(t, err, ErrOutsideOperatingHours)
		})
	}
}

func TestExecute_OperatingHoursBindAdminsToo(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "05:00"),
		End:       mustTime(t, "06:30"),
	})

	// Операционное окно обязательно для всех, включая админов
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestExecute_ExceedsMaxDuration(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:45"), // 105 минут
	})
	assert.ErrorIs(t, err, ErrExceedsMaxDuration)

	// Ровно 90 минут — допустимо
	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:30"),
	})
	assert.NoError(t, err)
}

func TestExecute_AdminBypassesMaxDuration(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "14:00"), // 4 часа: админский блок на турнир
	})

	assert.NoError(t, err)
}

func TestExecute_AdvanceWindow(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "today", date: "2026-03-09", wantErr: false},
		{name: "last allowed day", date: "2026-03-16", wantErr: false},
		{name: "one day too far", date: "2026-03-17", wantErr: true},
		{name: "past date", date: "2026-03-08", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				Requester: resident(int64(100 + len(tt.name))),
				Date:      date(t, tt.date),
				Start:     mustTime(t, "12:00"),
				End:       mustTime(t, "13:00"),
			})
			if tt.wantErr {
				// Дата в прошлом — та же ошибка окна, с другой стороны
				assert.ErrorIs(t, err, ErrExceedsAdvanceWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_AdvanceWindowInCourtTimezone(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)

	f := newFixture(t, testPolicy(t))
	f.uc.location = sydney
	f.uc.timeProvider = &fakeClock{now: time.Date(2026, 3, 9, 12, 0, 0, 0, sydney)}

	// Дата заявки парсится как полночь UTC, "сегодня" — по календарю корта.
	// Последний допустимый день (сегодня + 7) проходит и к востоку от UTC:
	// сравнение календарное, не по абсолютным моментам.
	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, "2026-03-16"),
		Start:     mustTime(t, "12:00"),
		End:       mustTime(t, "13:00"),
	})
	assert.NoError(t, err)

	// Граница остаётся границей: следующий день отклоняется
	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: resident(2),
		Date:      date(t, "2026-03-17"),
		Start:     mustTime(t, "12:00"),
		End:       mustTime(t, "13:00"),
	})
	assert.ErrorIs(t, err, ErrExceedsAdvanceWindow)
}

func TestExecute_AdminBypassesAdvanceWindow(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, "2026-04-20"), // сильно за пределами недели
		Start:     mustTime(t, "12:00"),
		End:       mustTime(t, "13:00"),
	})

	assert.NoError(t, err)
}

func TestExecute_WeekendRestrictedWindows(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{name: "inside morning window", start: "08:00", end: "09:00", wantErr: true},
		{name: "overlapping evening window start", start: "16:30", end: "17:30", wantErr: true},
		{name: "ends exactly at window start", start: "06:00", end: "07:00", wantErr: false},
		{name: "starts exactly at window end", start: "10:00", end: "11:00", wantErr: false},
		{name: "between windows", start: "12:00", end: "13:00", wantErr: false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				Requester: resident(int64(200 + i)),
				Date:      date(t, saturday),
				Start:     mustTime(t, tt.start),
				End:       mustTime(t, tt.end),
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRestrictedWindow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_HolidayRestrictedWindows(t *testing.T) {
	f := newFixture(t, testPolicy(t))
	f.holidays.holidays[tuesday] = true

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "08:00"),
		End:       mustTime(t, "09:00"),
	})

	// Праздничный будний день закрыт так же, как выходной
	assert.ErrorIs(t, err, ErrRestrictedWindow)
}

func TestExecute_HolidayLookupFailureIsInternal(t *testing.T) {
	f := newFixture(t, testPolicy(t))
	f.holidays.err = errors.New("feed unavailable")

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "08:00"),
		End:       mustTime(t, "09:00"),
	})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_AdminBypassesRestrictedWindows(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, saturday),
		Start:     mustTime(t, "08:00"),
		End:       mustTime(t, "09:00"),
	})

	assert.NoError(t, err)
}

func TestExecute_DuplicateBookingForUser(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "14:00"),
		End:       mustTime(t, "15:00"),
	})
	assert.ErrorIs(t, err, ErrDuplicateBooking)

	// Другой день — можно
	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, "2026-03-11"),
		Start:     mustTime(t, "14:00"),
		End:       mustTime(t, "15:00"),
	})
	assert.NoError(t, err)
}

func TestExecute_AdminBypassesDuplicateRule(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	for _, span := range [][2]string{{"10:00", "11:00"}, {"14:00", "15:00"}} {
		_, err := f.uc.Execute(context.Background(), &Request{
			Requester: admin(99),
			Date:      date(t, tuesday),
			Start:     mustTime(t, span[0]),
			End:       mustTime(t, span[1]),
		})
		assert.NoError(t, err)
	}
}

func TestExecute_OverlapConflict(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	// Существующая бронь короткая, чтобы объемлющий интервал
	// укладывался в лимит длительности и доходил до правила пересечения
	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:30"),
		End:       mustTime(t, "11:00"),
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{name: "identical span", start: "10:30", end: "11:00", wantErr: true},
		{name: "partial overlap", start: "10:45", end: "11:30", wantErr: true},
		{name: "containing span", start: "10:15", end: "11:15", wantErr: true},
		{name: "touching end boundary", start: "11:00", end: "12:00", wantErr: false},
		{name: "touching start boundary", start: "09:30", end: "10:30", wantErr: false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				Requester: resident(int64(300 + i)),
				Date:      date(t, tuesday),
				Start:     mustTime(t, tt.start),
				End:       mustTime(t, tt.end),
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOverlapConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_CancelledBookingFreesItsSpan(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	f.repo.bookings = append(f.repo.bookings, &domain.Booking{
		ID:     1,
		UserID: 1,
		Date:   date(t, tuesday),
		Start:  mustTime(t, "10:00"),
		End:    mustTime(t, "11:00"),
		Status: domain.StatusCancelledByUser,
	})
	f.repo.nextID = 1

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(2),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})

	assert.NoError(t, err)
}

func TestExecute_AdminOverlapRequiresConfigOverride(t *testing.T) {
	// По умолчанию пересечение блокирует и админа
	f := newFixture(t, testPolicy(t))

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:30"),
		End:       mustTime(t, "11:30"),
	})
	assert.ErrorIs(t, err, ErrOverlapConflict)

	// С включённым admin_overlap_override — проходит
	policy := testPolicy(t)
	policy.AdminOverlapOverride = true
	f2 := newFixture(t, policy)

	_, err = f2.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})
	require.NoError(t, err)

	_, err = f2.uc.Execute(context.Background(), &Request{
		Requester: admin(99),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:30"),
		End:       mustTime(t, "11:30"),
	})
	assert.NoError(t, err)
}

func TestExecute_LedgerWriteFailure(t *testing.T) {
	f := newFixture(t, testPolicy(t))
	f.repo.createErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, tuesday),
		Start:     mustTime(t, "10:00"),
		End:       mustTime(t, "11:00"),
	})

	// Отдельный код отказа; частичное состояние не сохраняется
	assert.ErrorIs(t, err, ErrLedgerWrite)
	assert.Empty(t, f.repo.bookings)
}

func TestExecute_ConcurrentOverlappingAdmissions(t *testing.T) {
	f := newFixture(t, testPolicy(t))
	f.uc.txManager = &lockingTxManager{}

	day := date(t, tuesday)
	start := mustTime(t, "10:00")
	end := mustTime(t, "11:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{
				Requester: resident(int64(400 + i)),
				Date:      day,
				Start:     start,
				End:       end,
			})
		}(i)
	}
	wg.Wait()

	// Ровно одна заявка проходит, вторая получает конфликт пересечения
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrOverlapConflict)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, f.repo.bookings, 1)
}

func TestExecute_ConcurrentDisjointAdmissions(t *testing.T) {
	f := newFixture(t, testPolicy(t))
	f.uc.txManager = &lockingTxManager{}

	day := date(t, tuesday)
	spans := [2][2]timeofday.Minutes{
		{mustTime(t, "10:00"), mustTime(t, "11:00")},
		{mustTime(t, "14:00"), mustTime(t, "15:00")},
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), &Request{
				Requester: resident(int64(500 + i)),
				Date:      day,
				Start:     spans[i][0],
				End:       spans[i][1],
			})
		}(i)
	}
	wg.Wait()

	// Непересекающиеся заявки на одну дату проходят обе
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Len(t, f.repo.bookings, 2)
}

func TestExecute_RuleOrderShortCircuits(t *testing.T) {
	f := newFixture(t, testPolicy(t))

	// Заявка нарушает и длительность (3), и окно заблаговременности (4),
	// и закрытое окно выходного (5) — сообщается первое по порядку
	_, err := f.uc.Execute(context.Background(), &Request{
		Requester: resident(1),
		Date:      date(t, "2026-03-21"), // суббота за пределами недели
		Start:     mustTime(t, "07:00"),
		End:       mustTime(t, "09:00"), // 120 минут
	})

	assert.ErrorIs(t, err, ErrExceedsMaxDuration)
}
