/*
Package scrape holds a typed view of the per-namespace payload served by the kubeview API. Fetching never depends on
it; the payload is passed through as raw JSON and only presenters decode it.
*/
package scrape

import (
	"encoding/json"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	storagev1 "k8s.io/api/storage/v1"
)

// Data mirrors the objects the kubeview API gathers for a namespace
type Data struct {
	Pods                   []corev1.Pod                   `json:"pods"`
	Services               []corev1.Service               `json:"services"`
	Endpoints              []corev1.Endpoints             `json:"endpoints"`
	PersistentVolumes      []corev1.PersistentVolume      `json:"persistentvolumes"`
	PersistentVolumeClaims []corev1.PersistentVolumeClaim `json:"persistentvolumeclaims"`
	Deployments            []appsv1.Deployment            `json:"deployments"`
	DaemonSets             []appsv1.DaemonSet             `json:"daemonsets"`
	ReplicaSets            []appsv1.ReplicaSet            `json:"replicasets"`
	StatefulSets           []appsv1.StatefulSet           `json:"statefulsets"`
	Ingresses              []networkingv1.Ingress         `json:"ingresses"`
	ConfigMaps             []corev1.ConfigMap             `json:"configmaps"`
	Secrets                []corev1.Secret                `json:"secrets"`
	StorageClasses         []storagev1.StorageClass       `json:"storageclasses"`
	ServiceAccounts        []corev1.ServiceAccount        `json:"serviceaccounts"`
	Nodes                  []corev1.Node                  `json:"nodes"`
}

// KindCount is the number of objects of one kind in a payload
type KindCount struct {
	Kind  string
	Count int
}

// Decode parses a raw payload. Unknown fields are ignored since the server may add kinds over time.
func Decode(raw json.RawMessage) (*Data, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty scrape payload")
	}
	data := &Data{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("failed to parse scrape payload: %w", err)
	}
	return data, nil
}

// Summarize counts the objects of every kind, in a fixed order
func (d *Data) Summarize() []KindCount {
	return []KindCount{
		{Kind: "Pod", Count: len(d.Pods)},
		{Kind: "Service", Count: len(d.Services)},
		{Kind: "Endpoints", Count: len(d.Endpoints)},
		{Kind: "PersistentVolume", Count: len(d.PersistentVolumes)},
		{Kind: "PersistentVolumeClaim", Count: len(d.PersistentVolumeClaims)},
		{Kind: "Deployment", Count: len(d.Deployments)},
		{Kind: "DaemonSet", Count: len(d.DaemonSets)},
		{Kind: "ReplicaSet", Count: len(d.ReplicaSets)},
		{Kind: "StatefulSet", Count: len(d.StatefulSets)},
		{Kind: "Ingress", Count: len(d.Ingresses)},
		{Kind: "ConfigMap", Count: len(d.ConfigMaps)},
		{Kind: "Secret", Count: len(d.Secrets)},
		{Kind: "StorageClass", Count: len(d.StorageClasses)},
		{Kind: "ServiceAccount", Count: len(d.ServiceAccounts)},
		{Kind: "Node", Count: len(d.Nodes)},
	}
}
