package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/booking-admin/internal/models"
	"github.com/noah-isme/booking-admin/internal/repository"
	"github.com/noah-isme/booking-admin/internal/service"
	"github.com/noah-isme/booking-admin/internal/ui"
	"github.com/noah-isme/booking-admin/pkg/config"
)

const testCookie = "sid"

type stubCall struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

func (c stubCall) key() string { return c.Method + " " + c.Path }

// bookingStub plays the remote booking API.
type bookingStub struct {
	mu    sync.Mutex
	calls []stubCall
	fail  map[string]int
	gates map[string]*stubGate
}

// stubGate holds a call until released so that a second request can overlap it.
type stubGate struct {
	entered chan struct{}
	release chan struct{}
}

var stubFixtures = map[string]interface{}{
	"GET /teacher": []map[string]interface{}{
		{"id": 1, "name": "Ana", "email": "ana@example.com", "employee_id": "E1"},
		{"id": 2, "name": "Bob", "email": "bob@example.com", "employee_id": "E2"},
	},
	"GET /teacher/3": map[string]interface{}{"id": 3, "name": "Carla", "email": "carla@example.com", "employee_id": "E3"},
	"GET /subject": []map[string]interface{}{
		{"id": 1, "name": "Math"},
		{"id": 2, "name": "Art"},
	},
	"GET /subject/1": map[string]interface{}{"id": 1, "name": "Math"},
	"GET /schedule": []map[string]interface{}{
		{"id": 1, "teacher": map[string]interface{}{"id": 1, "name": "Ana"}, "subject": map[string]interface{}{"id": 1, "name": "Math"}, "start_time": "2024-01-10T08:00", "end_time": "2024-01-10T09:00"},
		{"id": 2, "teacher": map[string]interface{}{"id": 2, "name": "Bob"}, "subject": map[string]interface{}{"id": 2, "name": "Art"}, "start_time": "2024-01-10T10:00", "end_time": "2024-01-10T11:00"},
	},
	"POST /schedule": map[string]interface{}{"id": 3, "teacher": map[string]interface{}{"id": 1, "name": "Ana"}, "subject": map[string]interface{}{"id": 2, "name": "Art"}, "start_time": "2024-01-11T14:00", "end_time": "2024-01-11T15:00"},
	"POST /subject/": map[string]interface{}{"id": 9, "name": "History"},
	"POST /teacher/": map[string]interface{}{"id": 9, "name": "Dora"},
}

func (s *bookingStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	call := stubCall{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: string(body)}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	status, failing := s.fail[call.key()]
	gate := s.gates[call.key()]
	s.mu.Unlock()

	if gate != nil {
		select {
		case gate.entered <- struct{}{}:
		default:
		}
		<-gate.release
	}

	w.Header().Set("Content-Type", "application/json")
	if failing {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"message":"boom"}`)
		return
	}
	if fixture, ok := stubFixtures[call.key()]; ok {
		_ = json.NewEncoder(w).Encode(fixture)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *bookingStub) failWith(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail == nil {
		s.fail = make(map[string]int)
	}
	s.fail[key] = status
}

// hold makes calls to key wait until the returned gate is released.
func (s *bookingStub) hold(key string) *stubGate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gates == nil {
		s.gates = make(map[string]*stubGate)
	}
	gate := &stubGate{entered: make(chan struct{}, 1), release: make(chan struct{})}
	s.gates[key] = gate
	return gate
}

func (s *bookingStub) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.key() == key {
			n++
		}
	}
	return n
}

func (s *bookingStub) all() []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubCall(nil), s.calls...)
}

func (s *bookingStub) reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// testApp is a browser with one session cookie talking to the full console stack.
type testApp struct {
	t      *testing.T
	router *gin.Engine
	stub   *bookingStub
	cookie *http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &bookingStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	sessionCfg := config.SessionConfig{CookieName: testCookie, TTL: time.Hour}
	metrics := service.NewMetricsService()
	sessions := service.NewSessionService(repository.NewMemorySessionRepository(time.Hour), metrics, nil, nil)
	client := repository.NewBookingClient(srv.URL, time.Second, sessions, metrics, nil)

	teachers := service.NewTeacherService(repository.NewTeacherRepository(client), nil)
	subjects := service.NewSubjectService(repository.NewSubjectRepository(client), nil)
	schedules := service.NewScheduleService(repository.NewScheduleRepository(client), nil, nil)
	exports := service.NewExportService(schedules, time.UTC, nil)

	renderer, err := ui.NewRenderer(time.UTC)
	require.NoError(t, err)
	presenter := NewPresenter(sessions, 5*time.Second)

	router := NewRouter(RouterConfig{Session: sessionCfg, Metrics: metrics, Renderer: renderer}, Handlers{
		Presenter: presenter,
		Subjects:  NewCatalogHandler[models.Subject, models.SubjectDraft](subjects, presenter, SubjectOptions()),
		Teachers:  NewCatalogHandler[models.Teacher, models.TeacherDraft](teachers, presenter, TeacherOptions()),
		Schedules: NewScheduleHandler(teachers, subjects, schedules, sessions, presenter),
		Export:    NewExportHandler(exports, presenter),
		Auth:      NewAuthHandler(sessions, presenter, nil),
		System:    NewSystemHandler(sessions, metrics),
	})
	return &testApp{t: t, router: router, stub: stub}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	rec := a.send(a.cookie, method, path, form)
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookie {
			a.cookie = c
		}
	}
	return rec
}

// send serves one request with cookie and leaves the app's cookie alone, so it is safe to call
// from another goroutine.
func (a *testApp) send(cookie *http.Cookie, method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// overlap submits form to path twice: the second submit is sent while the first one is held
// upstream at key. It returns the first and second responses.
func (a *testApp) overlap(key, path string, form url.Values) (first, second *httptest.ResponseRecorder) {
	a.t.Helper()
	gate := a.stub.hold(key)
	cookie := a.cookie

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- a.send(cookie, http.MethodPost, path, form)
	}()

	select {
	case <-gate.entered:
	case <-time.After(time.Second):
		close(gate.release)
		a.t.Fatalf("first submit never reached %s", key)
	}
	second = a.send(cookie, http.MethodPost, path, form)
	close(gate.release)
	return <-done, second
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil)
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return a.do(http.MethodPost, path, form)
}

func (a *testApp) login() {
	a.t.Helper()
	rec := a.post("/login", url.Values{"token": {"tok-123"}})
	require.Equal(a.t, http.StatusSeeOther, rec.Code)
	require.Equal(a.t, "/", rec.Header().Get("Location"))
	a.stub.reset()
}
