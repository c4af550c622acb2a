package pkg

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/anchore/kubeview-client/internal/config"
	"github.com/anchore/kubeview-client/internal/kubeview"
	"github.com/anchore/kubeview-client/internal/logger"
	"github.com/anchore/kubeview-client/pkg/event"
	"github.com/anchore/kubeview-client/pkg/mode"
	"github.com/anchore/kubeview-client/pkg/namespace"
	"github.com/anchore/kubeview-client/pkg/presenter"
)

var (
	TestNamespaceA = corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "a"}}
	TestNamespaceB = corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "b"}}
	TestNamespaces = []corev1.Namespace{TestNamespaceA, TestNamespaceB}

	forbiddenError = &kubeview.APIClientError{
		HTTPStatusCode: http.StatusForbidden,
		Message:        "403 Forbidden response from kubeview (during namespace scrape)",
		Path:           "/api/scrape/kube-system",
		Method:         http.MethodGet,
		Body:           "pods is forbidden",
	}

	serverError = &kubeview.APIClientError{
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        "500 Internal Server Error response from kubeview (during namespace scrape)",
		Path:           "/api/scrape/default",
		Method:         http.MethodGet,
		Body:           "boom",
	}

	bodylessError = &kubeview.APIClientError{
		HTTPStatusCode: http.StatusNotFound,
		Message:        "404 Not Found response from kubeview (during namespace scrape)",
		Path:           "/api/scrape/default",
		Method:         http.MethodGet,
	}

	refusedError = &url.Error{
		Op:  "Get",
		URL: "http://127.0.0.1:8000/api/namespaces",
		Err: syscall.ECONNREFUSED,
	}
)

type mockAPI struct {
	namespaces    []corev1.Namespace
	namespacesErr error
	data          json.RawMessage
	dataErr       error
	calls         int
}

func (m *mockAPI) ListNamespaces(context.Context) ([]corev1.Namespace, error) {
	m.calls++
	return m.namespaces, m.namespacesErr
}

func (m *mockAPI) GetNamespaceData(context.Context, string) (json.RawMessage, error) {
	m.calls++
	return m.data, m.dataErr
}

func captureLogs(t *testing.T) *test.Hook {
	t.Helper()
	testLogger, hook := test.NewNullLogger()
	testLogger.SetLevel(logrus.DebugLevel)
	SetLogger(&logger.LogrusLogger{Logger: testLogger})
	t.Cleanup(func() { SetLogger(&logger.LogrusLogger{Logger: logrus.New()}) })
	return hook
}

func errorMessages(hook *test.Hook) []string {
	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			messages = append(messages, entry.Message)
		}
	}
	return messages
}

func useAPI(t *testing.T, api API) {
	t.Helper()
	orig := newAPI
	newAPI = func(config.APIInfo) (API, error) { return api, nil }
	t.Cleanup(func() { newAPI = orig })
}

func TestFetchNamespaces(t *testing.T) {
	tests := []struct {
		name       string
		api        *mockAPI
		filter     namespace.Filter
		want       []corev1.Namespace
		wantLogged string
	}{
		{
			name: "no filter",
			api:  &mockAPI{namespaces: TestNamespaces},
			want: TestNamespaces,
		},
		{
			name:   "include",
			api:    &mockAPI{namespaces: TestNamespaces},
			filter: namespace.Filter{Include: []string{"a"}},
			want:   []corev1.Namespace{TestNamespaceA},
		},
		{
			name:   "exclude",
			api:    &mockAPI{namespaces: TestNamespaces},
			filter: namespace.Filter{Exclude: []string{"a"}},
			want:   []corev1.Namespace{TestNamespaceB},
		},
		{
			name:       "forbidden is swallowed",
			api:        &mockAPI{namespacesErr: forbiddenError},
			filter:     namespace.Filter{Include: []string{"a"}},
			want:       nil,
			wantLogged: "API error: pods is forbidden",
		},
		{
			name:       "server error is swallowed",
			api:        &mockAPI{namespacesErr: serverError},
			want:       nil,
			wantLogged: "API error: boom",
		},
		{
			name:       "unreachable server is swallowed",
			api:        &mockAPI{namespacesErr: refusedError},
			want:       nil,
			wantLogged: "kubeview API is unreachable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := captureLogs(t)

			got, err := FetchNamespaces(context.Background(), tt.api, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, tt.api.calls)

			if tt.wantLogged == "" {
				assert.Empty(t, errorMessages(hook))
				return
			}
			require.Len(t, errorMessages(hook), 1)
			assert.Contains(t, errorMessages(hook)[0], tt.wantLogged)
		})
	}
}

func TestFetchNamespaces_Cancelled(t *testing.T) {
	hook := captureLogs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := FetchNamespaces(ctx, &mockAPI{namespacesErr: context.Canceled}, namespace.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
	assert.Empty(t, errorMessages(hook))
}

func TestFetchNamespaceData(t *testing.T) {
	payload := json.RawMessage(`{"pods":[]}`)

	tests := []struct {
		name       string
		api        *mockAPI
		want       json.RawMessage
		wantErr    error
		wantLogged string
	}{
		{
			name: "success",
			api:  &mockAPI{data: payload},
			want: payload,
		},
		{
			name:    "forbidden propagates",
			api:     &mockAPI{dataErr: forbiddenError},
			wantErr: forbiddenError,
		},
		{
			name:    "wrapped forbidden propagates",
			api:     &mockAPI{dataErr: errors.Join(errors.New("scrape"), forbiddenError)},
			wantErr: forbiddenError,
		},
		{
			name:       "server error body is logged",
			api:        &mockAPI{dataErr: serverError},
			wantLogged: "boom",
		},
		{
			name:       "error without body is logged raw",
			api:        &mockAPI{dataErr: bodylessError},
			wantLogged: "404 Not Found",
		},
		{
			name:       "transport error is logged raw",
			api:        &mockAPI{dataErr: errors.New("tls: handshake failure")},
			wantLogged: "API error: tls: handshake failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := captureLogs(t)

			got, err := FetchNamespaceData(context.Background(), tt.api, "default")
			assert.Equal(t, tt.want, got)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, kubeview.IsForbidden(err))
			} else {
				assert.NoError(t, err)
			}

			if tt.wantLogged == "" {
				assert.Empty(t, errorMessages(hook))
				return
			}
			require.Len(t, errorMessages(hook), 1)
			assert.Contains(t, errorMessages(hook)[0], tt.wantLogged)
		})
	}
}

func TestFetchNamespaceData_Cancelled(t *testing.T) {
	captureLogs(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := FetchNamespaceData(ctx, &mockAPI{dataErr: serverError}, "default")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetNamespaces_UsesConfiguredFilter(t *testing.T) {
	api := &mockAPI{namespaces: TestNamespaces}
	useAPI(t, api)

	cfg := &config.Application{
		Namespaces: config.NamespaceSelection{Exclude: []string{"b"}},
	}

	got, err := GetNamespaces(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []corev1.Namespace{TestNamespaceA}, got)
}

func TestGetNamespaceData_InvalidAPI(t *testing.T) {
	_, err := GetNamespaceData(context.Background(), &config.Application{}, "default")
	assert.Error(t, err)
}

func subscribe(t *testing.T, types ...partybus.EventType) *partybus.Subscription {
	t.Helper()
	eventBus := partybus.NewBus()
	SetBus(eventBus)
	t.Cleanup(func() { SetBus(nil) })
	return eventBus.Subscribe(types...)
}

func nextEvent(t *testing.T, subscription *partybus.Subscription) partybus.Event {
	t.Helper()
	select {
	case e := <-subscription.Events():
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return partybus.Event{}
}

func TestReportNamespaces(t *testing.T) {
	useAPI(t, &mockAPI{namespaces: TestNamespaces})
	subscription := subscribe(t, event.NamespacesRetrieved)

	err := ReportNamespaces(context.Background(), &config.Application{PresenterOpt: presenter.JSONPresenter})
	require.NoError(t, err)

	e := nextEvent(t, subscription)
	assert.Equal(t, event.NamespacesRetrieved, e.Type)
	assert.Implements(t, (*presenter.Presenter)(nil), e.Value)
}

func TestReportNamespaceData_Forbidden(t *testing.T) {
	useAPI(t, &mockAPI{dataErr: forbiddenError})
	subscribe(t, event.NamespaceDataRetrieved)

	err := ReportNamespaceData(context.Background(), &config.Application{PresenterOpt: presenter.TablePresenter}, "kube-system")
	assert.True(t, kubeview.IsForbidden(err))
}

func TestReportNamespaceData(t *testing.T) {
	useAPI(t, &mockAPI{data: json.RawMessage(`{"pods":[]}`)})
	subscription := subscribe(t, event.NamespaceDataRetrieved)

	err := ReportNamespaceData(context.Background(), &config.Application{PresenterOpt: presenter.TablePresenter}, "default")
	require.NoError(t, err)

	e := nextEvent(t, subscription)
	assert.Equal(t, event.NamespaceDataRetrieved, e.Type)
}

func TestPeriodicallyReportNamespaces(t *testing.T) {
	api := &mockAPI{namespaces: TestNamespaces}
	useAPI(t, api)
	subscription := subscribe(t, event.NamespacesRetrieved)

	cfg := &config.Application{
		PresenterOpt:           presenter.JSONPresenter,
		RunMode:                mode.PeriodicPolling,
		PollingIntervalSeconds: 1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- PeriodicallyReportNamespaces(ctx, cfg)
	}()

	nextEvent(t, subscription)
	nextEvent(t, subscription)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("periodic reporting did not stop")
	}
}
