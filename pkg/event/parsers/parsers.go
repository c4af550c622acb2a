package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/anchore/kubeview-client/pkg/event"
	"github.com/anchore/kubeview-client/pkg/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

// ParseResultsRetrieved extracts the presenter carried by either of the result events
func ParseResultsRetrieved(e partybus.Event) (presenter.Presenter, error) {
	switch e.Type {
	case event.NamespacesRetrieved, event.NamespaceDataRetrieved:
	default:
		return nil, newPayloadErr(e.Type, "Type", e.Type)
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok || pres == nil {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return pres, nil
}
