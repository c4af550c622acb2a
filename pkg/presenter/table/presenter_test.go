package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestNamespacesPresenter(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	namespaces := []corev1.Namespace{
		{
			ObjectMeta: metav1.ObjectMeta{
				Name:              "default",
				CreationTimestamp: metav1.NewTime(now.Add(-72 * time.Hour)),
			},
			Status: corev1.NamespaceStatus{Phase: corev1.NamespaceActive},
		},
		{
			ObjectMeta: metav1.ObjectMeta{Name: "team-a"},
			Status:     corev1.NamespaceStatus{Phase: corev1.NamespaceTerminating},
		},
	}

	pres := NewNamespacesPresenter(namespaces)
	pres.now = func() time.Time { return now }

	var buffer bytes.Buffer
	require.NoError(t, pres.Present(&buffer))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"NAME", "STATUS", "AGE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"default", "Active", "3", "days", "ago"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"team-a", "Terminating", unknown}, strings.Fields(lines[2]))
}

func TestNamespacesPresenter_Empty(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, NewNamespacesPresenter(nil).Present(&buffer))
	assert.Equal(t, "No namespaces found\n", buffer.String())
}

func TestNamespaceDataPresenter(t *testing.T) {
	data := json.RawMessage(`{
		"pods": [{"metadata": {"name": "web-0"}}, {"metadata": {"name": "web-1"}}],
		"deployments": [{"metadata": {"name": "web"}}],
		"services": []
	}`)

	var buffer bytes.Buffer
	require.NoError(t, NewNamespaceDataPresenter("default", data).Present(&buffer))

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"KIND", "COUNT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Pod", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Deployment", "1"}, strings.Fields(lines[2]))
}

func TestNamespaceDataPresenter_NoObjects(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, NewNamespaceDataPresenter("empty", json.RawMessage(`{"pods":[]}`)).Present(&buffer))
	assert.Equal(t, "No objects found in namespace \"empty\"\n", buffer.String())
}

func TestNamespaceDataPresenter_NoData(t *testing.T) {
	var buffer bytes.Buffer
	require.NoError(t, NewNamespaceDataPresenter("gone", nil).Present(&buffer))
	assert.Equal(t, "No data for namespace \"gone\"\n", buffer.String())
}

func TestNamespaceDataPresenter_BadPayload(t *testing.T) {
	var buffer bytes.Buffer
	assert.Error(t, NewNamespaceDataPresenter("default", json.RawMessage(`[1]`)).Present(&buffer))
}
