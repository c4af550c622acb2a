package ui

import (
	"github.com/wagoodman/go-partybus"

	"github.com/anchore/kubeview-client/internal/config"
)

// UI consumes worker errors and bus events until the work is done
type UI func(<-chan error, *partybus.Subscription, *config.Application) error
