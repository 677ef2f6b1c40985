package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

func newTestRepo(t *testing.T, h http.HandlerFunc) *Repository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRepository(NewClient(srv.URL+"/", "secret", time.Second))
}

func TestListBookingsMapsNullableFields(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/booking/bookings/workspace/3", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `[
			{"id": 10, "client_id": 5, "workspace_id": 3,
			 "start_time": "09:00", "end_time": "10:30", "date": null,
			 "price": 0, "status": "confirmed",
			 "client": {"id": 5, "name": "Айгуль", "surname": "Садыкова",
			            "phone": "+7 701 000 00 00", "category": "vip",
			            "prefernces": "кофе", "comments": null}},
			{"id": 11, "client_id": 6, "start_time": null, "end_time": null,
			 "status": null, "client": {"id": 6, "name": "", "surname": ""}}
		]`)
	})

	bookings, err := repo.ListBookings(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	b := bookings[0]
	assert.Equal(t, uint(10), b.ID)
	assert.Equal(t, "09:00", b.StartTime)
	assert.Equal(t, "", b.Date)
	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, "Садыкова", b.Client.Surname)
	assert.Equal(t, "кофе", b.Client.Preferences)
	assert.Equal(t, "vip", b.Client.Category)

	assert.Equal(t, uint(3), bookings[1].WorkspaceID)

	a := appointment.FromBooking(bookings[1])
	assert.Equal(t, "00:00", a.StartTime)
	assert.Equal(t, appointment.StatusNew, a.Status)
}

func TestGetBookingNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"detail":"Booking not found"}`)
	})

	_, err := repo.GetBooking(context.Background(), 1, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, appointment.ErrNotFound)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "Booking not found")
}

func TestGetBookingOfOtherWorkspaceIsNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id": 4, "workspace_id": 2, "client": {"id": 1}}`)
	})

	_, err := repo.GetBooking(context.Background(), 1, 4)
	assert.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestGetClient(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/client/get_client/5" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"detail":"Client not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id": 5, "name": "Айгуль", "surname": "Садыкова", "phone": "+77010000000"}`)
	})

	c, err := repo.GetClient(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), c.ID)
	assert.Equal(t, uint(3), c.WorkspaceID)
	assert.Equal(t, "Садыкова", c.Surname)

	_, err = repo.GetClient(context.Background(), 3, 6)
	assert.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestCreateClientAcceptsEitherIDField(t *testing.T) {
	for name, body := range map[string]string{
		"client_id": `{"client_id": 42}`,
		"id":        `{"id": 42, "name": "Иван"}`,
	} {
		t.Run(name, func(t *testing.T) {
			repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/client/create_client", r.URL.Path)

				var in map[string]any
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "Иван", in["name"])
				assert.Equal(t, "Петров", in["surname"])
				assert.NotContains(t, in, "email")

				_, _ = io.WriteString(w, body)
			})

			c := models.Client{Name: "Иван", Surname: "Петров", Phone: "8700"}
			require.NoError(t, repo.CreateClient(context.Background(), &c))
			assert.Equal(t, uint(42), c.ID)
		})
	}
}

func TestCreateBookingValidationError(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","start_time"],"msg":"field required"}]}`)
	})

	err := repo.CreateBooking(context.Background(), &models.Booking{WorkspaceID: 1})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnprocessableEntity))
	assert.Contains(t, err.Error(), "field required")
	assert.NotErrorIs(t, err, appointment.ErrNotFound)
}

func TestCreateBookingReadsBookingID(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var in bookingWrite
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, uint(7), in.ClientID)
		assert.Equal(t, "new", in.Status)
		if assert.NotNil(t, in.Date) {
			assert.Equal(t, "2026-10-16", *in.Date)
		}

		_, _ = io.WriteString(w, `{"booking_id": 55}`)
	})

	b := models.Booking{WorkspaceID: 1, ClientID: 7, Date: "2026-10-16", StartTime: "10:00", EndTime: "11:00", Status: "new"}
	require.NoError(t, repo.CreateBooking(context.Background(), &b))
	assert.Equal(t, uint(55), b.ID)
}

func TestUpdateBookingSendsIDInBody(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/booking/bookings", r.URL.Path)

		var in bookingWrite
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, uint(9), in.ID)

		_, _ = io.WriteString(w, `{"id": 9}`)
	})

	require.NoError(t, repo.UpdateBooking(context.Background(), &models.Booking{ID: 9, WorkspaceID: 1}))
}

func TestDeleteBookingChecksWorkspaceFirst(t *testing.T) {
	var deleted string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `{"id": 9, "workspace_id": 1, "client": {"id": 1}}`)
		case http.MethodDelete:
			deleted = r.URL.Query().Get("booking_id")
			w.WriteHeader(http.StatusNoContent)
		}
	})

	require.NoError(t, repo.DeleteBooking(context.Background(), 1, 9))
	assert.Equal(t, "9", deleted)

	deleted = ""
	err := repo.DeleteBooking(context.Background(), 2, 9)
	assert.ErrorIs(t, err, appointment.ErrNotFound)
	assert.Empty(t, deleted)
}

func TestClientHonoursContext(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := repo.ListClients(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "boom", errorDetail([]byte(`{"detail":"boom"}`)))
	assert.Equal(t, "first", errorDetail([]byte(`{"detail":[{"msg":"first"},{"msg":"second"}]}`)))
	assert.Equal(t, "plain text", errorDetail([]byte("plain text\n")))
}
