/*
Package namespace narrows the namespace list returned by the kubeview API down to the namespaces a user asked to see.
*/
package namespace

import (
	"fmt"
	"regexp"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/anchore/kubeview-client/internal/log"
)

// SystemNamespaces are hidden when Filter.ExcludeSystem is set
var SystemNamespaces = []string{
	"kube-system",
	"kube-public",
	"kube-node-lease",
}

// Filter holds the inclusion and exclusion sets applied to a fetched namespace list. Inclusion is applied first,
// exclusion then narrows the result further. An empty set does not narrow anything.
type Filter struct {
	Include []string
	Exclude []string
	// ExcludeSystem adds SystemNamespaces to Exclude
	ExcludeSystem bool
	// Patterns treats entries that are not valid namespace names as regular expressions
	Patterns bool
}

// matchCheck reports whether a namespace name is matched by a filter entry
type matchCheck func(name string) bool

func matchRegex(re *regexp.Regexp) matchCheck {
	return func(name string) bool {
		return re.MatchString(name)
	}
}

func matchSet(set sets.Set[string]) matchCheck {
	return func(name string) bool {
		return set.Has(name)
	}
}

// isValidName checks whether an entry is a valid namespace name (a DNS-1123 label)
func isValidName(entry string) bool {
	return len(validation.IsDNS1123Label(entry)) == 0
}

// buildChecklist turns filter entries into checks. Without patterns every entry is an exact name. With patterns,
// entries that are valid namespace names go into a set for direct lookup and the rest are compiled as regexes.
func buildChecklist(entries []string, patterns bool) ([]matchCheck, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	if !patterns {
		return []matchCheck{matchSet(sets.New(entries...))}, nil
	}

	var checks []matchCheck
	names := sets.New[string]()
	for _, entry := range entries {
		if isValidName(entry) {
			names.Insert(entry)
			continue
		}
		re, err := regexp.Compile(entry)
		if err != nil {
			return nil, fmt.Errorf("bad namespace pattern %q: %w", entry, err)
		}
		checks = append(checks, matchRegex(re))
	}
	if names.Len() > 0 {
		checks = append(checks, matchSet(names))
	}
	return checks, nil
}

func matchesAny(checks []matchCheck, name string) bool {
	for _, check := range checks {
		if check(name) {
			return true
		}
	}
	return false
}

func (f Filter) excludes() []string {
	if !f.ExcludeSystem {
		return f.Exclude
	}
	return append(append([]string{}, f.Exclude...), SystemNamespaces...)
}

// IsZero returns true when applying the filter would never drop a namespace
func (f Filter) IsZero() bool {
	return len(f.Include) == 0 && len(f.excludes()) == 0
}

// Validate ensures every pattern entry compiles
func (f Filter) Validate() error {
	if _, err := buildChecklist(f.Include, f.Patterns); err != nil {
		return fmt.Errorf("invalid include: %w", err)
	}
	if _, err := buildChecklist(f.excludes(), f.Patterns); err != nil {
		return fmt.Errorf("invalid exclude: %w", err)
	}
	return nil
}

// Apply returns the namespaces that pass the filter, in their original order. The result is always a subset of
// the input. A filter that fails validation is logged and leaves the input untouched.
func (f Filter) Apply(namespaces []corev1.Namespace) []corev1.Namespace {
	if f.IsZero() {
		return namespaces
	}

	includes, err := buildChecklist(f.Include, f.Patterns)
	if err != nil {
		log.Errorf("Ignoring namespace filter: %v", err)
		return namespaces
	}
	excludes, err := buildChecklist(f.excludes(), f.Patterns)
	if err != nil {
		log.Errorf("Ignoring namespace filter: %v", err)
		return namespaces
	}

	filtered := make([]corev1.Namespace, 0, len(namespaces))
	for _, ns := range namespaces {
		if len(includes) > 0 && !matchesAny(includes, ns.Name) {
			continue
		}
		if matchesAny(excludes, ns.Name) {
			log.Debugf("Excluding namespace %q", ns.Name)
			continue
		}
		filtered = append(filtered, ns)
	}
	return filtered
}

// Names returns the name of every namespace, in order
func Names(namespaces []corev1.Namespace) []string {
	names := make([]string, 0, len(namespaces))
	for _, ns := range namespaces {
		names = append(names, ns.Name)
	}
	return names
}
