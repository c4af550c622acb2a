package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/kubeview-client/internal/config"
	"github.com/anchore/kubeview-client/internal/log"
	"github.com/anchore/kubeview-client/pkg/event"
	"github.com/anchore/kubeview-client/pkg/event/parsers"
	"github.com/anchore/kubeview-client/pkg/mode"
)

var output io.Writer = os.Stdout

// LoggerUI prints every retrieved result. It returns on the first worker error, when the worker is finished
// (the error channel is closed), or after the first result unless running periodically.
func LoggerUI(workerErrs <-chan error, subscription *partybus.Subscription, appConfig *config.Application) error {
	events := subscription.Events()
	for {
		select {
		case err, ok := <-workerErrs:
			if err != nil {
				return err
			}
			if !ok {
				// the worker is done, in periodic mode there is nothing left to wait for
				if appConfig.RunMode == mode.PeriodicPolling {
					return nil
				}
				workerErrs = nil
			}
		case e, ok := <-events:
			if !ok {
				// event bus closed...
				events = nil
				continue
			}

			if err := resultsRetrievedHandler(e); err != nil {
				log.Errorf("unable to show %s event: %+v", e.Type, err)
			}

			// this is the last expected event (if we're not running periodically)
			if appConfig.RunMode != mode.PeriodicPolling {
				events = nil
			}
		}
		if events == nil && workerErrs == nil {
			return nil
		}
	}
}

func resultsRetrievedHandler(e partybus.Event) error {
	switch e.Type {
	case event.NamespacesRetrieved, event.NamespaceDataRetrieved:
	default:
		return nil
	}

	pres, err := parsers.ParseResultsRetrieved(e)
	if err != nil {
		return fmt.Errorf("bad kubeview event: %w", err)
	}

	if err := pres.Present(output); err != nil {
		return fmt.Errorf("unable to show kubeview results: %w", err)
	}
	return nil
}
