package calendar

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment/appointmenttest"
	"github.com/BruksfildServices01/booking-calendar/internal/dto"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/infra/remote"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
	"github.com/BruksfildServices01/booking-calendar/internal/timezone"
)

const testWorkspace = uint(1)

func seeded(t *testing.T) *appointmenttest.Repository {
	t.Helper()
	repo := appointmenttest.New()
	repo.AddWorkspace(models.Workspace{ID: testWorkspace, Name: "Студия", Timezone: "Asia/Almaty"})

	client := repo.AddClient(models.Client{WorkspaceID: testWorkspace, Name: "Айгуль", Surname: "Садыкова", Phone: "+77010000000"})

	for _, b := range []models.Booking{
		{ID: 1, Date: "2026-10-16", StartTime: "09:00", EndTime: "10:00", Status: "new"},
		{ID: 2, Date: "2026-10-16", StartTime: "09:30", EndTime: "10:30", Status: "confirmed"},
		{ID: 3, Date: "2026-10-16", StartTime: "11:00", EndTime: "13:30", Status: "canceled"},
		{ID: 4, Date: "2026-10-17", StartTime: "12:00", EndTime: "13:00", Status: "new"},
		{ID: 5, Date: "", StartTime: "18:00", EndTime: "19:00", Status: "pending"},
		{ID: 6, Date: "2026-10-16", StartTime: "later", EndTime: "", Status: "new"},
	} {
		b.WorkspaceID = testWorkspace
		b.ClientID = client.ID
		repo.AddBooking(b)
	}
	return repo
}

func newGetDay(repo *appointmenttest.Repository) *GetDay {
	uc := NewGetDay(repo, 96, timezone.DefaultTimezone)
	uc.now = func() time.Time {
		return time.Date(2026, time.October, 16, 3, 0, 0, 0, time.UTC)
	}
	return uc
}

func placed(view *dto.DayViewDTO, id string) (dto.PlacedAppointmentDTO, int, bool) {
	for _, h := range view.Hours {
		for _, a := range h.Appointments {
			if a.ID == id {
				return a, h.Hour, true
			}
		}
	}
	return dto.PlacedAppointmentDTO{}, 0, false
}

func TestGetDayLaysOutTheRequestedDate(t *testing.T) {
	uc := newGetDay(seeded(t))

	view, err := uc.Execute(context.Background(), GetDayInput{WorkspaceID: testWorkspace, Date: "2026-10-16"})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-16", view.Date)
	assert.Equal(t, "16 октября 2026 г.", view.Title)
	assert.Equal(t, "2026-10-15", view.PrevDate)
	assert.Equal(t, "2026-10-17", view.NextDate)
	assert.True(t, view.IsToday)
	require.Len(t, view.Hours, 24)

	a1, h1, ok := placed(view, "1")
	require.True(t, ok)
	a2, h2, ok := placed(view, "2")
	require.True(t, ok)
	assert.Equal(t, 9, h1)
	assert.Equal(t, 9, h2)
	assert.NotEqual(t, a1.Lane, a2.Lane)

	a3, h3, ok := placed(view, "3")
	require.True(t, ok)
	assert.Equal(t, 11, h3)
	assert.Equal(t, 2, a3.Lane)
	assert.Equal(t, 288, a3.HeightPx)
	assert.Equal(t, 13, a3.ZIndex)
	assert.Equal(t, "Длительность: 3 часа", a3.DurationLabel)
	assert.Equal(t, "Отменено", a3.Badge.Label)
	assert.Equal(t, "Айгуль Садыкова", a3.ClientName)
	for _, h := range []int{12, 13} {
		require.Len(t, view.Hours[h].Continuing, 1)
		assert.Equal(t, "3", view.Hours[h].Continuing[0].ID)
		assert.Equal(t, 2, view.Hours[h].Continuing[0].Lane)
	}

	_, _, ok = placed(view, "4")
	assert.False(t, ok, "booking of another date")

	a5, _, ok := placed(view, "5")
	require.True(t, ok, "booking without a date shows on every day")
	assert.Equal(t, "gray", string(a5.Badge.Color))
	assert.Equal(t, "pending", a5.Badge.Label)

	require.Len(t, view.Unplaced, 1)
	assert.Equal(t, "6", view.Unplaced[0].ID)
}

func TestGetDayNavigation(t *testing.T) {
	uc := newGetDay(seeded(t))
	ctx := context.Background()

	view, err := uc.Execute(ctx, GetDayInput{WorkspaceID: testWorkspace, Date: "2026-10-16", Step: "next"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", view.Date)
	assert.False(t, view.IsToday)
	_, _, ok := placed(view, "4")
	assert.True(t, ok)

	view, err = uc.Execute(ctx, GetDayInput{WorkspaceID: testWorkspace, Date: "2026-01-01", Step: "prev"})
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", view.Date)

	// 03:00 UTC is 08:00 in Almaty
	view, err = uc.Execute(ctx, GetDayInput{WorkspaceID: testWorkspace, Date: "2026-03-01", Step: "today"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", view.Date)

	view, err = uc.Execute(ctx, GetDayInput{WorkspaceID: testWorkspace})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", view.Date)
}

func TestGetDayErrors(t *testing.T) {
	uc := newGetDay(seeded(t))
	ctx := context.Background()

	tests := []struct {
		name string
		in   GetDayInput
		code string
	}{
		{"week view", GetDayInput{WorkspaceID: testWorkspace, View: "week"}, "view_mode_not_supported"},
		{"month view", GetDayInput{WorkspaceID: testWorkspace, View: "month"}, "view_mode_not_supported"},
		{"bad view", GetDayInput{WorkspaceID: testWorkspace, View: "agenda"}, "invalid_view_mode"},
		{"bad date", GetDayInput{WorkspaceID: testWorkspace, Date: "16/10/2026"}, "invalid_date"},
		{"bad step", GetDayInput{WorkspaceID: testWorkspace, Step: "back"}, "invalid_step"},
		{"unknown workspace", GetDayInput{WorkspaceID: 99}, "workspace_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.in)
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
		})
	}
}

func TestGetDayBackendFailure(t *testing.T) {
	repo := seeded(t)
	boom := errors.New("connection refused")
	repo.Fail = func(op string) error {
		if op == "ListBookings" {
			return boom
		}
		return nil
	}

	_, err := newGetDay(repo).Execute(context.Background(), GetDayInput{WorkspaceID: testWorkspace})
	assert.ErrorIs(t, err, boom)
	_, isBusiness := httperr.BusinessCode(err)
	assert.False(t, isBusiness)
}

func TestGetDayCollapsesConcurrentFetches(t *testing.T) {
	repo := seeded(t)
	release := make(chan struct{})
	var once sync.Once
	entered := make(chan struct{})
	repo.Fail = func(op string) error {
		if op == "ListBookings" {
			once.Do(func() { close(entered) })
			<-release
		}
		return nil
	}
	uc := newGetDay(repo)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), GetDayInput{WorkspaceID: testWorkspace})
			assert.NoError(t, err)
		}()
	}

	<-entered
	// let the other callers reach the shared flight
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Less(t, repo.CallCount("ListBookings"), 5)
}

func TestGetDayJoinerSurvivesFirstCallerCancel(t *testing.T) {
	var hits atomic.Int32
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/workspace/workspaces/1":
			_, _ = io.WriteString(w, `{"id": 1, "name": "Студия"}`)
		case "/api/booking/bookings/workspace/1":
			hits.Add(1)
			select {
			case entered <- struct{}{}:
			default:
			}
			<-release
			_, _ = io.WriteString(w, `[{"id": 3, "workspace_id": 1, "date": "2026-10-16",
				"start_time": "09:00", "end_time": "10:00", "status": "new",
				"client": {"id": 1, "name": "Айгуль"}}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	defer close(release)

	uc := NewGetDay(remote.NewRepository(remote.NewClient(srv.URL, "", 5*time.Second)), 96, timezone.DefaultTimezone)
	in := GetDayInput{WorkspaceID: testWorkspace, Date: "2026-10-16"}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := uc.Execute(ctxA, in)
		errA <- err
	}()
	<-entered

	type result struct {
		view *dto.DayViewDTO
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		view, err := uc.Execute(context.Background(), in)
		resB <- result{view, err}
	}()

	// give B time to join the running fetch
	time.Sleep(50 * time.Millisecond)
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	release <- struct{}{}
	b := <-resB
	require.NoError(t, b.err)
	_, _, ok := placed(b.view, "3")
	assert.True(t, ok)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetDayNeverShowsClientOfAnotherWorkspace(t *testing.T) {
	repo := seeded(t)
	foreign := repo.AddClient(models.Client{WorkspaceID: 99, Name: "Чужой", Phone: "+77000000099"})
	b := repo.AddBooking(models.Booking{
		WorkspaceID: testWorkspace, ClientID: foreign.ID,
		Date: "2026-10-16", StartTime: "20:00", EndTime: "21:00", Status: "new",
	})

	view, err := newGetDay(repo).Execute(context.Background(), GetDayInput{WorkspaceID: testWorkspace, Date: "2026-10-16"})
	require.NoError(t, err)

	card, _, ok := placed(view, strconv.FormatUint(uint64(b.ID), 10))
	require.True(t, ok)
	assert.NotContains(t, card.ClientName, "Чужой")
	assert.Empty(t, card.PhoneNumber)
}

func TestGetDraft(t *testing.T) {
	uc := NewGetDraft(seeded(t), timezone.DefaultTimezone)

	d, err := uc.Execute(context.Background(), GetDraftInput{WorkspaceID: testWorkspace, Date: "2026-10-16", Hour: 14})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", d.Appointment.Date)
	assert.Equal(t, "14:00", d.Appointment.StartTime)
	assert.Equal(t, "15:00", d.Appointment.EndTime)
	assert.Equal(t, "new", string(d.Appointment.Status))

	d, err = uc.Execute(context.Background(), GetDraftInput{WorkspaceID: testWorkspace, Date: "2026-10-16", Hour: 23})
	require.NoError(t, err)
	assert.Equal(t, "23:59", d.Appointment.EndTime)

	_, err = uc.Execute(context.Background(), GetDraftInput{WorkspaceID: testWorkspace, Date: "2026-10-16", Hour: 25})
	assert.True(t, httperr.IsBusiness(err, "invalid_hour"))
}
