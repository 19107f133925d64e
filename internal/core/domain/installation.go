package domain

import "slices"

// InstallationOptions are the user toggles that affect generated settings.
type InstallationOptions struct {
	// SetARCCompatibilityFlag adds -fobjc-arc for pods whose specs require ARC.
	SetARCCompatibilityFlag bool `yaml:"set_arc_compatibility_flag"`
	// GenerateDigests records a digest of every written document.
	GenerateDigests bool `yaml:"generate_digests"`
}

// Installation is the input of an installation run.
type Installation struct {
	// Root is the directory holding the user projects.
	Root    string
	Sandbox Sandbox
	Options InstallationOptions
	Graph   *Graph
	// UserProjects maps project paths relative to Root to their native targets.
	UserProjects map[string][]UserTarget
}

// NativeTarget is an opaque handle to a native target of the output project.
type NativeTarget struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	ProductType ProductType  `yaml:"product_type"`
	Platform    PlatformName `yaml:"platform"`
}

// Group is an opaque handle to a group of the output project.
type Group struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// FileReference is an opaque handle to a file reference inside a group.
type FileReference struct {
	ID      string `yaml:"id"`
	GroupID string `yaml:"group"`
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
}

// TargetInstallationResult records the native targets created for one target.
type TargetInstallationResult struct {
	Label string
	// Native is nil when the target builds no product.
	Native                    *NativeTarget
	ResourceBundleTargets     []NativeTarget
	TestNativeTargets         []NativeTarget
	TestResourceBundleTargets map[string][]NativeTarget
	AppHostTargets            []NativeTarget
}

// TestNativeTarget returns the test native target with the given label.
func (r TargetInstallationResult) TestNativeTarget(label string) (NativeTarget, bool) {
	i := slices.IndexFunc(r.TestNativeTargets, func(nt NativeTarget) bool { return nt.Name == label })
	if i < 0 {
		return NativeTarget{}, false
	}
	return r.TestNativeTargets[i], true
}

// InstallationResult maps every target to the native targets created for it.
// It is immutable once built.
type InstallationResult struct {
	pods       map[PodID]TargetInstallationResult
	aggregates map[AggregateID]TargetInstallationResult
}

// InstallationResultBuilder accumulates results before freezing them.
type InstallationResultBuilder struct {
	pods       map[PodID]TargetInstallationResult
	aggregates map[AggregateID]TargetInstallationResult
}

// NewInstallationResultBuilder creates an empty builder.
func NewInstallationResultBuilder() *InstallationResultBuilder {
	return &InstallationResultBuilder{
		pods:       make(map[PodID]TargetInstallationResult),
		aggregates: make(map[AggregateID]TargetInstallationResult),
	}
}

// SetPod records the result of a pod target.
func (b *InstallationResultBuilder) SetPod(id PodID, r TargetInstallationResult) {
	b.pods[id] = r
}

// SetAggregate records the result of an aggregate target.
func (b *InstallationResultBuilder) SetAggregate(id AggregateID, r TargetInstallationResult) {
	b.aggregates[id] = r
}

// Build freezes the accumulated results.
func (b *InstallationResultBuilder) Build() *InstallationResult {
	r := &InstallationResult{
		pods:       make(map[PodID]TargetInstallationResult, len(b.pods)),
		aggregates: make(map[AggregateID]TargetInstallationResult, len(b.aggregates)),
	}
	for id, v := range b.pods {
		r.pods[id] = cloneResult(v)
	}
	for id, v := range b.aggregates {
		r.aggregates[id] = cloneResult(v)
	}
	return r
}

// Pod returns the result of a pod target.
func (r *InstallationResult) Pod(id PodID) (TargetInstallationResult, bool) {
	v, ok := r.pods[id]
	return cloneResult(v), ok
}

// Aggregate returns the result of an aggregate target.
func (r *InstallationResult) Aggregate(id AggregateID) (TargetInstallationResult, bool) {
	v, ok := r.aggregates[id]
	return cloneResult(v), ok
}

// PodIDs returns the pod handles with a result, in ascending order.
func (r *InstallationResult) PodIDs() []PodID {
	ids := make([]PodID, 0, len(r.pods))
	for id := range r.pods {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AggregateIDs returns the aggregate handles with a result, in ascending order.
func (r *InstallationResult) AggregateIDs() []AggregateID {
	ids := make([]AggregateID, 0, len(r.aggregates))
	for id := range r.aggregates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func cloneResult(v TargetInstallationResult) TargetInstallationResult {
	if v.Native != nil {
		n := *v.Native
		v.Native = &n
	}
	v.ResourceBundleTargets = slices.Clone(v.ResourceBundleTargets)
	v.TestNativeTargets = slices.Clone(v.TestNativeTargets)
	v.AppHostTargets = slices.Clone(v.AppHostTargets)
	if v.TestResourceBundleTargets != nil {
		m := make(map[string][]NativeTarget, len(v.TestResourceBundleTargets))
		for k, list := range v.TestResourceBundleTargets {
			m[k] = slices.Clone(list)
		}
		v.TestResourceBundleTargets = m
	}
	return v
}
