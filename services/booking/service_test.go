package booking

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "craftlink/database/repository/booking"
	"craftlink/models"
)

// fakeBookingRepo is an in-memory Repository with the same contract as the
// mongo implementation, including version-guarded updates.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	// failUpdates injects that many version conflicts before updates succeed.
	failUpdates int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := b
	return &copied, nil
}

func (r *fakeBookingRepo) FindByProfessional(_ context.Context, professionalID string, excludeStatuses []models.BookingStatus) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findByProfessionalLocked(professionalID, excludeStatuses), nil
}

func (r *fakeBookingRepo) findByProfessionalLocked(professionalID string, excludeStatuses []models.BookingStatus) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProfessionalID != professionalID {
			continue
		}
		excluded := false
		for _, s := range excludeStatuses {
			if b.Status == s {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, b)
		}
	}
	return out
}

func (r *fakeBookingRepo) FindByParty(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == userID || b.ProfessionalID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdates > 0 {
		r.failUpdates--
		return bookingRepo.ErrVersionConflict
	}
	stored, ok := r.bookings[b.ID]
	if !ok || stored.Version != b.Version {
		return bookingRepo.ErrVersionConflict
	}
	b.Version++
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) CreateInConflictScope(_ context.Context, b *models.Booking, findConflict func([]models.Booking) *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.findByProfessionalLocked(b.ProfessionalID, models.SlotFreeingStatuses)
	if conflict := findConflict(existing); conflict != nil {
		copied := *conflict
		return &copied, nil
	}
	r.bookings[b.ID] = *b
	return nil, nil
}

// fakeAvailability answers availability from a map without touching redis.
type fakeAvailability struct {
	available map[string]bool
}

func (f *fakeAvailability) GetByID(_ context.Context, id string) (*models.Professional, error) {
	if _, ok := f.available[id]; !ok {
		return nil, nil
	}
	return &models.Professional{ID: id, Available: f.available[id]}, nil
}

func (f *fakeAvailability) IsAvailable(_ context.Context, id string) (bool, error) {
	return f.available[id], nil
}

// recorderStub captures activity events.
type recorderStub struct {
	mu     sync.Mutex
	events []models.ActivityEvent
}

func (r *recorderStub) Record(_ context.Context, event models.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// reminderStub counts scheduled reminders.
type reminderStub struct {
	scheduled []string
}

func (r *reminderStub) ScheduleBookingReminder(_ context.Context, b *models.Booking) error {
	r.scheduled = append(r.scheduled, b.ID)
	return nil
}

type testEnv struct {
	svc       *DefaultBookingService
	repo      *fakeBookingRepo
	recorder  *recorderStub
	reminders *reminderStub
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	repo := newFakeBookingRepo()
	recorder := &recorderStub{}
	reminders := &reminderStub{}
	svc := &DefaultBookingService{
		Repo: repo,
		Availability: &AvailabilityChecker{
			Professionals: &fakeAvailability{available: map[string]bool{"pro-1": true}},
		},
		Conflicts: &ConflictDetector{Repo: repo},
		Validator: &Validator{Clock: fixedClock{t: now}},
		Activity:  recorder,
		Reminders: reminders,
		Clock:     fixedClock{t: now},
	}
	return &testEnv{svc: svc, repo: repo, recorder: recorder, reminders: reminders, now: now}
}

func (e *testEnv) createBooking(t *testing.T, start time.Time, minutes int) *models.Booking {
	t.Helper()
	req := validRequest(e.now)
	req.ScheduledDate = start
	req.EstimatedDuration = minutes
	b, err := e.svc.CreateBooking(context.Background(), req, "cust-1")
	require.NoError(t, err)
	return b
}

func TestCreateBooking(t *testing.T) {
	tenAM := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("creates a pending booking", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, models.StatusPending, b.Status)
		assert.Equal(t, "cust-1", b.CustomerID)
		assert.Nil(t, b.StartedAt)
		assert.Nil(t, b.CompletedAt)
		assert.Nil(t, b.CancelledAt)

		require.Len(t, env.recorder.events, 1)
		assert.Equal(t, "booking_created", env.recorder.events[0].Action)
	})

	t.Run("overlapping request fails with scheduling conflict", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.createBooking(t, tenAM, 120) // 10:00-12:00

		req := validRequest(env.now)
		req.ScheduledDate = tenAM.Add(30 * time.Minute) // 10:30-11:30
		req.EstimatedDuration = 60
		_, err := env.svc.CreateBooking(context.Background(), req, "cust-2")

		var conflict *SchedulingConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, a.ID, conflict.ConflictingBookingID)

		// No partial write.
		bookings, _ := env.repo.FindByProfessional(context.Background(), "pro-1", nil)
		assert.Len(t, bookings, 1)
	})

	t.Run("cancelled slot is free again", func(t *testing.T) {
		env := newTestEnv(t)
		a := env.createBooking(t, tenAM, 120)

		_, err := env.svc.CancelBooking(context.Background(), a.ID, "plans changed", "cust-1")
		require.NoError(t, err)

		b := env.createBooking(t, tenAM, 120)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, models.StatusPending, b.Status)
	})

	t.Run("back to back bookings are both accepted", func(t *testing.T) {
		env := newTestEnv(t)
		env.createBooking(t, tenAM, 120)
		b := env.createBooking(t, tenAM.Add(2*time.Hour), 60)
		assert.Equal(t, models.StatusPending, b.Status)
	})

	t.Run("unavailable professional is refused", func(t *testing.T) {
		env := newTestEnv(t)
		env.svc.Availability.Professionals = &fakeAvailability{available: map[string]bool{"pro-1": false}}

		req := validRequest(env.now)
		_, err := env.svc.CreateBooking(context.Background(), req, "cust-1")
		var notAvailable *NotAvailableError
		require.ErrorAs(t, err, &notAvailable)
	})

	t.Run("artist booking without project details is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		req := validRequest(env.now)
		req.ProfessionalType = models.TypeArtist
		_, err := env.svc.CreateBooking(context.Background(), req, "cust-1")
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Project details are required")
	})
}

// Concurrent creations for one professional must leave a pairwise
// non-overlapping calendar: every request either persists or fails with a
// scheduling conflict, never both and never a silent double booking.
func TestCreateBookingConcurrentNoOverlap(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	rng := rand.New(rand.NewSource(1))
	const attempts = 40
	reqs := make([]models.BookingRequest, attempts)
	for i := range reqs {
		req := validRequest(env.now)
		req.ScheduledDate = base.Add(time.Duration(rng.Intn(8*60)) * time.Minute)
		req.EstimatedDuration = 30 + rng.Intn(120)
		reqs[i] = req
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.CreateBooking(context.Background(), reqs[i], "cust-1")
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *SchedulingConflictError
		require.ErrorAs(t, err, &conflict)
		conflicted++
	}
	assert.Equal(t, attempts, succeeded+conflicted)
	assert.Positive(t, succeeded)
	assert.Positive(t, conflicted)

	persisted, err := env.repo.FindByProfessional(context.Background(), "pro-1", nil)
	require.NoError(t, err)
	assert.Len(t, persisted, succeeded)
	for i := range persisted {
		for j := i + 1; j < len(persisted); j++ {
			a, b := persisted[i], persisted[j]
			assert.False(t, a.OccupiedInterval().Overlaps(b.OccupiedInterval()),
				"bookings %s and %s overlap", a.ID, b.ID)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	tenAM := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("pending cannot jump to completed", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusCompleted, "cust-1", "")
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, err.Error(), "pending")
	})

	t.Run("full happy path stamps timestamps once", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		confirmed, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		assert.Nil(t, confirmed.StartedAt)

		started, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		require.NoError(t, err)
		require.NotNil(t, started.StartedAt)
		assert.Equal(t, env.now, *started.StartedAt)

		completed, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusCompleted, "pro-1", "")
		require.NoError(t, err)
		require.NotNil(t, completed.CompletedAt)
		assert.Equal(t, env.now, *completed.CompletedAt)

		// Completed is absorbing.
		_, err = env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)

		// Fields survived the failed attempt unchanged.
		after, err := env.svc.GetBooking(ctx, b.ID, "pro-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, after.Status)
		assert.Equal(t, *completed.CompletedAt, *after.CompletedAt)
	})

	t.Run("confirming schedules a reminder", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		assert.Equal(t, []string{b.ID}, env.reminders.scheduled)
	})

	t.Run("cancellation via status update requires notes", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusCancelled, "cust-1", "")
		assertValidationError(t, err)

		cancelled, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusCancelled, "cust-1", "found someone closer")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		assert.Equal(t, "found someone closer", cancelled.CancellationReason)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "somebody-else", "")
		var forbidden *ForbiddenError
		require.ErrorAs(t, err, &forbidden)
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.UpdateStatus(ctx, "nope", models.StatusConfirmed, "cust-1", "")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("version conflict is retried", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		env.repo.failUpdates = 2

		updated, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConfirmed, updated.Status)
	})

	t.Run("persistent version conflict surfaces after retries", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		env.repo.failUpdates = statusUpdateRetries

		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		var concurrency *ConcurrencyConflictError
		require.ErrorAs(t, err, &concurrency)
	})
}

func TestCancelBooking(t *testing.T) {
	tenAM := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("cancellation reason round trip", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		cancelled, err := env.svc.CancelBooking(ctx, b.ID, "plans changed", "cust-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		assert.Equal(t, "plans changed", cancelled.CancellationReason)
		require.NotNil(t, cancelled.CancelledAt)
		assert.Equal(t, env.now, *cancelled.CancelledAt)
	})

	t.Run("confirmed booking can be cancelled", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)

		cancelled, err := env.svc.CancelBooking(ctx, b.ID, "weather", "pro-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
	})

	t.Run("in_progress booking cannot be cancelled", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		_, err = env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		require.NoError(t, err)

		_, err = env.svc.CancelBooking(ctx, b.ID, "changed my mind", "cust-1")
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel booking with status in_progress")
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		for _, s := range []models.BookingStatus{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
			_, err := env.svc.UpdateStatus(ctx, b.ID, s, "pro-1", "")
			require.NoError(t, err)
		}

		_, err := env.svc.CancelBooking(ctx, b.ID, "too late", "cust-1")
		assertValidationError(t, err)
		assert.Contains(t, err.Error(), "Cannot cancel booking with status completed")
	})

	t.Run("missing reason is a validation error, not a transition error", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		_, err := env.svc.CancelBooking(ctx, b.ID, "", "cust-1")
		assertValidationError(t, err)
	})

	t.Run("oversized reason is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		long := make([]byte, models.MaxCancellationReasonLength+1)
		for i := range long {
			long[i] = 'r'
		}
		_, err := env.svc.CancelBooking(ctx, b.ID, string(long), "cust-1")
		assertValidationError(t, err)
	})
}

func TestGetAndListBookings(t *testing.T) {
	tenAM := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("parties can read, strangers get not found", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		for _, who := range []string{"cust-1", "pro-1"} {
			got, err := env.svc.GetBooking(ctx, b.ID, who)
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID)
		}

		_, err := env.svc.GetBooking(ctx, b.ID, "somebody-else")
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("repeated reads are identical", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)

		first, err := env.svc.GetBooking(ctx, b.ID, "cust-1")
		require.NoError(t, err)
		second, err := env.svc.GetBooking(ctx, b.ID, "cust-1")
		require.NoError(t, err)
		assert.Equal(t, *first, *second)
	})

	t.Run("list returns only the requester's bookings", func(t *testing.T) {
		env := newTestEnv(t)
		env.createBooking(t, tenAM, 60)
		env.createBooking(t, tenAM.Add(2*time.Hour), 60)

		mine, err := env.svc.ListBookings(ctx, "cust-1")
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		theirs, err := env.svc.ListBookings(ctx, "cust-9")
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})
}

func TestAttachProgressPhotos(t *testing.T) {
	tenAM := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	artistBooking := func(t *testing.T, env *testEnv) *models.Booking {
		req := validRequest(env.now)
		req.ProfessionalType = models.TypeArtist
		req.ServiceCategory = "mural"
		req.ScheduledDate = tenAM
		req.ProjectDetails = &models.ProjectDetails{
			ProjectType:      "wall mural",
			DurationEstimate: "2 weeks",
			PriceRange:       "1000-1500",
		}
		b, err := env.svc.CreateBooking(ctx, req, "cust-1")
		require.NoError(t, err)
		return b
	}

	t.Run("artist professional attaches photos while in progress", func(t *testing.T) {
		env := newTestEnv(t)
		b := artistBooking(t, env)
		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		_, err = env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		require.NoError(t, err)

		updated, err := env.svc.AttachProgressPhotos(ctx, b.ID, []string{"https://cdn.example/p1.jpg"}, "pro-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://cdn.example/p1.jpg"}, updated.ProgressPhotos)
	})

	t.Run("customer may not attach photos", func(t *testing.T) {
		env := newTestEnv(t)
		b := artistBooking(t, env)
		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		_, err = env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		require.NoError(t, err)

		_, err = env.svc.AttachProgressPhotos(ctx, b.ID, []string{"x"}, "cust-1")
		var forbidden *ForbiddenError
		require.ErrorAs(t, err, &forbidden)
	})

	t.Run("handyman bookings do not take photos", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.createBooking(t, tenAM, 120)
		_, err := env.svc.UpdateStatus(ctx, b.ID, models.StatusConfirmed, "pro-1", "")
		require.NoError(t, err)
		_, err = env.svc.UpdateStatus(ctx, b.ID, models.StatusInProgress, "pro-1", "")
		require.NoError(t, err)

		_, err = env.svc.AttachProgressPhotos(ctx, b.ID, []string{"x"}, "pro-1")
		assertValidationError(t, err)
	})

	t.Run("photos require in_progress status", func(t *testing.T) {
		env := newTestEnv(t)
		b := artistBooking(t, env)

		_, err := env.svc.AttachProgressPhotos(ctx, b.ID, []string{"x"}, "pro-1")
		assertValidationError(t, err)
	})
}
