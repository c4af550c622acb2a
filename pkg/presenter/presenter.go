// This package represents the presenters used to print kubeview results to STDOut
package presenter

import (
	"encoding/json"
	"io"

	corev1 "k8s.io/api/core/v1"

	jsonPresenter "github.com/anchore/kubeview-client/pkg/presenter/json"
	"github.com/anchore/kubeview-client/pkg/presenter/table"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetNamespacesPresenter retrieves a Presenter for a (filtered) namespace list that matches a CLI option
func GetNamespacesPresenter(option Option, namespaces []corev1.Namespace) Presenter {
	switch option {
	case JSONPresenter:
		return jsonPresenter.NewNamespacesPresenter(namespaces)
	case TablePresenter:
		return table.NewNamespacesPresenter(namespaces)
	default:
		return nil
	}
}

// GetNamespaceDataPresenter retrieves a Presenter for the scrape data of one namespace that matches a CLI option
func GetNamespaceDataPresenter(option Option, namespace string, data json.RawMessage) Presenter {
	switch option {
	case JSONPresenter:
		return jsonPresenter.NewNamespaceDataPresenter(data)
	case TablePresenter:
		return table.NewNamespaceDataPresenter(namespace, data)
	default:
		return nil
	}
}
