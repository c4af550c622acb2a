package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
)

// NamespacesPresenter writes the namespace records exactly as they were fetched
type NamespacesPresenter struct {
	namespaces []corev1.Namespace
}

// NewNamespacesPresenter is a *NamespacesPresenter constructor
func NewNamespacesPresenter(namespaces []corev1.Namespace) *NamespacesPresenter {
	return &NamespacesPresenter{
		namespaces: namespaces,
	}
}

// Present creates a JSON-based reporting
func (pres *NamespacesPresenter) Present(output io.Writer) error {
	namespaces := pres.namespaces
	if namespaces == nil {
		namespaces = []corev1.Namespace{}
	}

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(namespaces)
}

// NamespaceDataPresenter writes a scrape payload untouched apart from indentation
type NamespaceDataPresenter struct {
	data json.RawMessage
}

// NewNamespaceDataPresenter is a *NamespaceDataPresenter constructor
func NewNamespaceDataPresenter(data json.RawMessage) *NamespaceDataPresenter {
	return &NamespaceDataPresenter{
		data: data,
	}
}

// Present creates a JSON-based reporting
func (pres *NamespaceDataPresenter) Present(output io.Writer) error {
	if len(pres.data) == 0 {
		_, err := io.WriteString(output, "null\n")
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, pres.data, "", " "); err != nil {
		return fmt.Errorf("unable to format scrape data: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(output)
	return err
}
