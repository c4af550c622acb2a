package table

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	corev1 "k8s.io/api/core/v1"

	"github.com/anchore/kubeview-client/pkg/scrape"
)

const unknown = "<unknown>"

// NamespacesPresenter shows one row per namespace
type NamespacesPresenter struct {
	namespaces []corev1.Namespace
	now        func() time.Time
}

// NewNamespacesPresenter is a *NamespacesPresenter constructor
func NewNamespacesPresenter(namespaces []corev1.Namespace) *NamespacesPresenter {
	return &NamespacesPresenter{
		namespaces: namespaces,
		now:        time.Now,
	}
}

// Present creates a table-based reporting
func (pres *NamespacesPresenter) Present(output io.Writer) error {
	if len(pres.namespaces) == 0 {
		_, err := io.WriteString(output, "No namespaces found\n")
		return err
	}

	rows := make([][]string, 0, len(pres.namespaces))
	for _, ns := range pres.namespaces {
		rows = append(rows, []string{ns.Name, phase(ns), pres.age(ns)})
	}

	render(output, []string{"Name", "Status", "Age"}, rows)
	return nil
}

func phase(ns corev1.Namespace) string {
	if ns.Status.Phase == "" {
		return unknown
	}
	return string(ns.Status.Phase)
}

func (pres *NamespacesPresenter) age(ns corev1.Namespace) string {
	if ns.CreationTimestamp.IsZero() {
		return unknown
	}
	return humanize.RelTime(ns.CreationTimestamp.Time, pres.now(), "ago", "from now")
}

// NamespaceDataPresenter shows how many objects of each kind a namespace holds
type NamespaceDataPresenter struct {
	namespace string
	data      json.RawMessage
}

// NewNamespaceDataPresenter is a *NamespaceDataPresenter constructor
func NewNamespaceDataPresenter(namespace string, data json.RawMessage) *NamespaceDataPresenter {
	return &NamespaceDataPresenter{
		namespace: namespace,
		data:      data,
	}
}

// Present creates a table-based reporting
func (pres *NamespaceDataPresenter) Present(output io.Writer) error {
	if len(pres.data) == 0 {
		_, err := fmt.Fprintf(output, "No data for namespace %q\n", pres.namespace)
		return err
	}

	data, err := scrape.Decode(pres.data)
	if err != nil {
		return err
	}

	rows := make([][]string, 0)
	for _, c := range data.Summarize() {
		if c.Count == 0 {
			continue
		}
		rows = append(rows, []string{c.Kind, strconv.Itoa(c.Count)})
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintf(output, "No objects found in namespace %q\n", pres.namespace)
		return err
	}

	render(output, []string{"Kind", "Count"}, rows)
	return nil
}

func render(output io.Writer, columns []string, rows [][]string) {
	table := tablewriter.NewWriter(output)

	table.SetHeader(columns)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()
}
