package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-admin/internal/models"
	appErrors "github.com/noah-isme/booking-admin/pkg/errors"
	"github.com/noah-isme/booking-admin/pkg/middleware/requestid"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type recordedCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
	ReqID  string
}

type fakeBookingAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	status int
	reply  string
}

func (f *fakeBookingAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{
		Method: r.Method,
		Path:   r.URL.Path,
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
		ReqID:  r.Header.Get(requestid.HeaderKey),
	})
	status, reply := f.status, f.reply
	f.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func (f *fakeBookingAPI) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

type upstreamSample struct {
	resource, method string
	status           int
}

type fakeObserver struct {
	samples []upstreamSample
}

func (o *fakeObserver) ObserveUpstream(resource, method string, status int, _ time.Duration) {
	o.samples = append(o.samples, upstreamSample{resource, method, status})
}

func newTestClient(t *testing.T, api *fakeBookingAPI, token string) (*BookingClient, *fakeObserver) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	observer := &fakeObserver{}
	return NewBookingClient(srv.URL+"/", time.Second, staticToken(token), observer, nil), observer
}

func TestBookingClientSendsBearerToken(t *testing.T) {
	api := &fakeBookingAPI{reply: `[{"id":1,"name":"Math"},{"id":"2","name":"Art"}]`}
	client, observer := newTestClient(t, api, "tok-1")

	ctx := requestid.WithValue(context.Background(), "req-9")
	subjects, err := NewSubjectRepository(client).List(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, models.ID("1"), subjects[0].ID)
	assert.Equal(t, "Art", subjects[1].Name)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/subject", calls[0].Path)
	assert.Equal(t, "Bearer tok-1", calls[0].Auth)
	assert.Equal(t, "req-9", calls[0].ReqID)
	assert.Equal(t, []upstreamSample{{"subject", http.MethodGet, http.StatusOK}}, observer.samples)
}

func TestBookingClientMissingTokenNeverCallsServer(t *testing.T) {
	api := &fakeBookingAPI{}
	client, _ := newTestClient(t, api, "")

	_, err := NewTeacherRepository(client).List(context.Background())
	require.ErrorIs(t, err, appErrors.ErrMissingToken)
	assert.Empty(t, api.recorded())
}

func TestBookingClientWireContract(t *testing.T) {
	api := &fakeBookingAPI{reply: `{}`}
	client, _ := newTestClient(t, api, "tok")
	ctx := context.Background()

	teachers := NewTeacherRepository(client)
	subjects := NewSubjectRepository(client)
	schedules := NewScheduleRepository(client)

	_, err := subjects.FindByID(ctx, "7")
	require.NoError(t, err)
	_, err = subjects.Create(ctx, models.SubjectDraft{Name: "Math"})
	require.NoError(t, err)
	require.NoError(t, subjects.Update(ctx, models.Subject{ID: "7", Name: "Maths"}))
	require.NoError(t, subjects.Delete(ctx, "7"))
	_, err = teachers.FindByID(ctx, "3")
	require.NoError(t, err)
	_, err = teachers.Create(ctx, models.TeacherDraft{Name: "Ana", Email: "ana@example.com", EmployeeID: "E1"})
	require.NoError(t, err)
	require.NoError(t, teachers.Update(ctx, models.Teacher{ID: "3", Name: "Ana"}))
	require.NoError(t, teachers.Delete(ctx, "3"))
	_, err = schedules.Create(ctx, models.ScheduleDraft{TeacherID: "3", SubjectID: "7", StartTime: "2024-01-10T08:00", EndTime: "2024-01-10T09:00"})
	require.NoError(t, err)
	require.NoError(t, schedules.Delete(ctx, "2"))

	calls := api.recorded()
	got := make([]string, len(calls))
	for i, c := range calls {
		got[i] = c.Method + " " + c.Path
	}
	assert.Equal(t, []string{
		"GET /subject/7",
		"POST /subject/",
		"PUT /subject/7",
		"DELETE /subject/7",
		"GET /teacher/3",
		"POST /teacher/",
		"PUT /teacher/3",
		"DELETE /teacher/3",
		"POST /schedule",
		"DELETE /schedule/2",
	}, got)

	assert.JSONEq(t, `{"name":"Math"}`, calls[1].Body)
	assert.JSONEq(t, `{"id":7,"name":"Maths"}`, calls[2].Body)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@example.com","employee_id":"E1"}`, calls[5].Body)
	assert.JSONEq(t, `{"teacher_id":"3","subject_id":"7","start_time":"2024-01-10T08:00","end_time":"2024-01-10T09:00"}`, calls[8].Body)
	assert.Empty(t, calls[9].Body)
}

func TestBookingClientMapsStatusCodes(t *testing.T) {
	cases := []struct {
		status int
		want   *appErrors.Error
	}{
		{http.StatusUnauthorized, appErrors.ErrUnauthorized},
		{http.StatusForbidden, appErrors.ErrUnauthorized},
		{http.StatusNotFound, appErrors.ErrNotFound},
		{http.StatusInternalServerError, appErrors.ErrUpstream},
		{http.StatusBadRequest, appErrors.ErrUpstream},
	}
	for _, tc := range cases {
		api := &fakeBookingAPI{status: tc.status, reply: `{"message":"nope"}`}
		client, _ := newTestClient(t, api, "tok")
		_, err := NewTeacherRepository(client).FindByID(context.Background(), "7")
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestBookingClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	observer := &fakeObserver{}
	client := NewBookingClient(url, time.Second, staticToken("tok"), observer, nil)
	err := NewScheduleRepository(client).Delete(context.Background(), "2")
	require.ErrorIs(t, err, appErrors.ErrUpstream)
	require.Len(t, observer.samples, 1)
	assert.Equal(t, 0, observer.samples[0].status)
}

func TestBookingClientHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := NewBookingClient(srv.URL, 5*time.Second, staticToken("tok"), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScheduleRepository(client).List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScheduleCreateDecodesResponse(t *testing.T) {
	created := map[string]interface{}{
		"id":         3,
		"teacher":    map[string]interface{}{"id": 1, "name": "Ana"},
		"subject":    map[string]interface{}{"id": 2, "name": "Math"},
		"start_time": "2024-01-11T08:00",
		"end_time":   "2024-01-11T09:00",
	}
	raw, _ := json.Marshal(created)
	api := &fakeBookingAPI{reply: string(raw)}
	client, _ := newTestClient(t, api, "tok")

	schedule, err := NewScheduleRepository(client).Create(context.Background(), models.ScheduleDraft{TeacherID: "1", SubjectID: "2", StartTime: "x", EndTime: "y"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("3"), schedule.ID)
	assert.Equal(t, "Ana", schedule.Teacher.Name)
	assert.Equal(t, "Math", schedule.Subject.Name)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "teacher", resourceOf("/teacher/42"))
	assert.Equal(t, "subject", resourceOf("/subject/"))
	assert.Equal(t, "schedule", resourceOf("/schedule"))
}
