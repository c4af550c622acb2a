/*
Package event defines the event types published on the application bus once kubeview results are retrieved
*/
package event

import "github.com/wagoodman/go-partybus"

const (
	NamespacesRetrieved    partybus.EventType = "kubeview-namespaces-retrieved"
	NamespaceDataRetrieved partybus.EventType = "kubeview-namespace-data-retrieved"
)
