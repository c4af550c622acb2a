/*
Package pkg fetches namespaces and per-namespace scrape data from the kubeview API. Fetch failures are logged and
swallowed, with one exception: a 403 on a scrape data fetch is returned to the caller.
*/
package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wagoodman/go-partybus"
	corev1 "k8s.io/api/core/v1"

	"github.com/anchore/kubeview-client/internal/bus"
	"github.com/anchore/kubeview-client/internal/config"
	"github.com/anchore/kubeview-client/internal/kubeview"
	"github.com/anchore/kubeview-client/internal/log"
	"github.com/anchore/kubeview-client/internal/tracker"
	"github.com/anchore/kubeview-client/pkg/event"
	"github.com/anchore/kubeview-client/pkg/logger"
	"github.com/anchore/kubeview-client/pkg/namespace"
	"github.com/anchore/kubeview-client/pkg/presenter"
)

// API is the subset of the kubeview API the fetchers use
type API interface {
	ListNamespaces(ctx context.Context) ([]corev1.Namespace, error)
	GetNamespaceData(ctx context.Context, namespace string) (json.RawMessage, error)
}

type _NewAPI func(cfg config.APIInfo) (API, error)

var newAPI _NewAPI = func(cfg config.APIInfo) (API, error) {
	return kubeview.NewClient(cfg)
}

// FetchNamespaces lists the namespaces and applies the filter. Any failure is logged and results in no namespaces
// and no error; only the cancellation of ctx is returned.
func FetchNamespaces(ctx context.Context, api API, filter namespace.Filter) ([]corev1.Namespace, error) {
	defer tracker.TrackFunctionTime(time.Now(), "Fetching namespaces")

	namespaces, err := api.ListNamespaces(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logAPIError(err)
		return nil, nil
	}

	filtered := filter.Apply(namespaces)
	log.Infof("Found %d namespaces, showing %d", len(namespaces), len(filtered))
	log.Debugf("Namespaces: %v", namespace.Names(filtered))
	return filtered, nil
}

// FetchNamespaceData returns the scrape payload of a namespace. A 403 from the API is returned as an error, every
// other failure is logged and results in no data and no error. The cancellation of ctx is also returned.
func FetchNamespaceData(ctx context.Context, api API, ns string) (json.RawMessage, error) {
	defer tracker.TrackFunctionTime(time.Now(), fmt.Sprintf("Fetching data for namespace %q", ns))

	data, err := api.GetNamespaceData(ctx, ns)
	if err == nil {
		return data, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if kubeview.IsForbidden(err) {
		return nil, err
	}

	logAPIError(err)
	return nil, nil
}

// logAPIError prefers the textual body the API sent back, falling back to the error itself
func logAPIError(err error) {
	if apiClientError, ok := kubeview.AsAPIClientError(err); ok && apiClientError.Body != "" {
		log.Errorf("API error: %s", apiClientError.Body)
		return
	}
	if kubeview.ServerIsOffline(err) {
		log.Errorf("kubeview API is unreachable: %v", err)
		return
	}
	log.Errorf("API error: %v", err)
}

// GetNamespaces fetches the namespaces selected by the application configuration
func GetNamespaces(ctx context.Context, cfg *config.Application) ([]corev1.Namespace, error) {
	api, err := newAPI(cfg.API)
	if err != nil {
		return nil, err
	}
	return FetchNamespaces(ctx, api, cfg.Namespaces.Filter())
}

// GetNamespaceData fetches the scrape data of ns from the configured API
func GetNamespaceData(ctx context.Context, cfg *config.Application, ns string) (json.RawMessage, error) {
	api, err := newAPI(cfg.API)
	if err != nil {
		return nil, err
	}
	return FetchNamespaceData(ctx, api, ns)
}

// ReportNamespaces fetches the namespaces and publishes them for presentation
func ReportNamespaces(ctx context.Context, cfg *config.Application) error {
	namespaces, err := GetNamespaces(ctx, cfg)
	if err != nil {
		return err
	}

	bus.Publish(partybus.Event{
		Type:  event.NamespacesRetrieved,
		Value: presenter.GetNamespacesPresenter(cfg.PresenterOpt, namespaces),
	})
	return nil
}

// ReportNamespaceData fetches the scrape data of ns and publishes it for presentation
func ReportNamespaceData(ctx context.Context, cfg *config.Application, ns string) error {
	data, err := GetNamespaceData(ctx, cfg, ns)
	if err != nil {
		return err
	}

	bus.Publish(partybus.Event{
		Type:  event.NamespaceDataRetrieved,
		Value: presenter.GetNamespaceDataPresenter(cfg.PresenterOpt, ns, data),
	})
	return nil
}

// PeriodicallyReportNamespaces re-fetches and publishes the namespace list every polling interval until ctx is done.
// Fetch failures do not stop the loop.
func PeriodicallyReportNamespaces(ctx context.Context, cfg *config.Application) error {
	ticker := time.NewTicker(time.Duration(cfg.PollingIntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		if err := ReportNamespaces(ctx, cfg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		log.Infof("Waiting %d seconds for next poll...", cfg.PollingIntervalSeconds)

		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			log.Debugf("Start new gather: %s", t)
		}
	}
}

func SetLogger(logger logger.Logger) {
	log.Log = logger
}

func SetBus(b *partybus.Bus) {
	if b == nil {
		bus.SetPublisher(nil)
		return
	}
	bus.SetPublisher(b)
}
