package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"elderguard-data/internal/domain"
	"elderguard-data/internal/service"
)

type stubUsersRepo struct {
	user *domain.User
}

func (s *stubUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUsersRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUsersRepo) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	return user.UserID, nil
}

func (s *stubUsersRepo) UpdateProfile(ctx context.Context, userID string, user *domain.User) error {
	return nil
}

type stubMetricsRepo struct{}

func (s *stubMetricsRepo) CreateMetric(ctx context.Context, metric *domain.HealthMetric) (string, error) {
	return "metric-1", nil
}

func (s *stubMetricsRepo) CreateMetricsBatch(ctx context.Context, metrics []*domain.HealthMetric) (int, error) {
	return len(metrics), nil
}

func (s *stubMetricsRepo) ListRecentMetrics(ctx context.Context, userID string, limit int) ([]*domain.HealthMetric, error) {
	return nil, nil
}

func (s *stubMetricsRepo) GetLatestMetric(ctx context.Context, userID string) (*domain.HealthMetric, error) {
	return nil, nil
}

type stubAlertsRepo struct {
	mu   sync.Mutex
	done chan struct{}
}

func (s *stubAlertsRepo) CreateAlertEvent(ctx context.Context, event *domain.AlertEvent) (string, error) {
	return "event-1", nil
}

func (s *stubAlertsRepo) UpdateNotifiedContacts(ctx context.Context, eventID string, results json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
	return nil
}

func (s *stubAlertsRepo) ListAlertEvents(ctx context.Context, userID string, limit int) ([]*domain.AlertEvent, error) {
	return nil, nil
}

type recordingDispatcher struct {
	mu         sync.Mutex
	recipients []string
	messages   []string
}

func (d *recordingDispatcher) Send(ctx context.Context, to, body string) domain.DispatchResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recipients = append(d.recipients, to)
	d.messages = append(d.messages, body)
	return domain.DispatchResult{Status: domain.DispatchSent, Recipient: to, Detail: body}
}

func newSafetyTestServer(t *testing.T, users *stubUsersRepo, alerts *stubAlertsRepo, dispatcher *recordingDispatcher) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()

	alertService := service.NewAlertService(users, &stubMetricsRepo{}, alerts, dispatcher, 8, "Home Bedroom (Camera 1)", logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = alertService.StartDispatchWorker(ctx) }()

	authService := service.NewAuthService(users, "test-secret", 30, true, logger)
	auth := NewAuthMiddleware(authService, logger)

	router := NewRouter(logger)
	router.RegisterSafetyRoutes(NewSafetyHandler(alertService, logger), auth)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestTriggerFall_EndToEndFanOut(t *testing.T) {
	users := &stubUsersRepo{user: &domain.User{
		UserID:   "user-jane",
		Email:    "jane@example.com",
		FullName: "Jane",
		Role:     domain.RoleElder,
		EmergencyContacts: sql.NullString{
			String: `[{"name":"A","phone":"111","relation":"Son"},{"name":"B","phone":"222","relation":"Daughter"}]`,
			Valid:  true,
		},
	}}
	alerts := &stubAlertsRepo{done: make(chan struct{})}
	dispatcher := &recordingDispatcher{}
	server := newSafetyTestServer(t, users, alerts, dispatcher)

	done := alerts.done

	req, err := http.NewRequest(http.MethodPost, server.URL+"/safety/alert/fall", strings.NewReader(`{"location":"Kitchen"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer demo-token")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "alert_sent", body["status"])
	assert.Equal(t, "Fall detected! escalating to emergency contacts.", body["message"])

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not complete")
	}

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	require.Equal(t, []string{"111", "222"}, dispatcher.recipients)
	assert.Equal(t, "SOS ALERT! Jane needs help. Location: Kitchen. Please check the ElderGuard App immediately.", dispatcher.messages[0])
	assert.Equal(t, dispatcher.messages[0], dispatcher.messages[1])
}

func TestTriggerFall_RequiresAuth(t *testing.T) {
	users := &stubUsersRepo{user: &domain.User{UserID: "user-1", FullName: "Mary", Role: domain.RoleElder}}
	server := newSafetyTestServer(t, users, &stubAlertsRepo{}, &recordingDispatcher{})

	resp, err := http.Post(server.URL+"/safety/alert/fall", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Could not validate credentials", body["detail"])
}

func TestTriggerFall_MethodNotAllowed(t *testing.T) {
	users := &stubUsersRepo{user: &domain.User{UserID: "user-1", FullName: "Mary", Role: domain.RoleElder}}
	server := newSafetyTestServer(t, users, &stubAlertsRepo{}, &recordingDispatcher{})

	resp, err := http.Get(server.URL + "/safety/alert/fall")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
