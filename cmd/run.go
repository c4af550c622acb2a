package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/kubeview-client/internal/ui"
	"github.com/anchore/kubeview-client/pkg"
)

// run executes work in the background and hands its results to the UI until the work is done
func run(work func(ctx context.Context) error, types ...partybus.EventType) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := partybus.NewBus()
	pkg.SetBus(eventBus)
	defer pkg.SetBus(nil)

	subscription := eventBus.Subscribe(types...)

	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		if err := work(ctx); err != nil {
			errs <- err
		}
	}()

	var userInterface ui.UI = ui.LoggerUI
	return userInterface(errs, subscription, appConfig)
}
