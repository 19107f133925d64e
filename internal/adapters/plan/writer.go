// Package plan records the requests of an installation against an in-memory project and
// serializes them as a YAML plan. It never writes a project file.
package plan

import (
	"fmt"
	"io"
	"maps"
	pathpkg "path"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultConfigurations are the build configurations of a new project.
var DefaultConfigurations = []string{"Debug", "Release"}

type target struct {
	native   domain.NativeTarget
	deps     []string
	sources  []string
	settings map[string]map[string]string
}

type group struct {
	handle domain.Group
	refs   []domain.FileReference
}

// Writer implements ports.ProjectWriter in memory.
type Writer struct {
	mu             sync.RWMutex
	configurations []string
	targets        []*target
	byID           map[string]*target
	groups         []*group
	groupsByID     map[string]*group
}

// NewWriter creates a Writer whose native targets get the given build configurations.
// No configurations selects DefaultConfigurations.
func NewWriter(configurations ...string) *Writer {
	if len(configurations) == 0 {
		configurations = DefaultConfigurations
	}
	return &Writer{
		configurations: slices.Sorted(slices.Values(configurations)),
		byID:           make(map[string]*target),
		groupsByID:     make(map[string]*group),
	}
}

// objectID derives a stable identifier from the kind and key of an object.
func objectID(kind, key string) string {
	return fmt.Sprintf("%016X", xxhash.Sum64String(kind+"/"+key))
}

// NewNativeTarget creates a native target with every project build configuration.
func (w *Writer) NewNativeTarget(name string, productType domain.ProductType, platform domain.Platform) (domain.NativeTarget, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := objectID("target", name)
	if _, exists := w.byID[id]; exists {
		return domain.NativeTarget{}, zerr.With(domain.ErrDuplicateTarget, "target", name)
	}
	t := &target{
		native: domain.NativeTarget{
			ID:          id,
			Name:        name,
			ProductType: productType,
			Platform:    platform.Name,
		},
		settings: make(map[string]map[string]string, len(w.configurations)),
	}
	for _, c := range w.configurations {
		t.settings[c] = make(map[string]string)
	}
	w.targets = append(w.targets, t)
	w.byID[id] = t
	return t.native, nil
}

// AddBuildConfiguration adds the project build configuration name to the project and to every
// existing native target. Configurations stay sorted by name and are recorded once.
func (w *Writer) AddBuildConfiguration(name string) error {
	if name == "" {
		return domain.ErrInvalidBuildConfiguration
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	i, found := slices.BinarySearch(w.configurations, name)
	if found {
		return nil
	}
	w.configurations = slices.Insert(w.configurations, i, name)
	for _, t := range w.targets {
		t.settings[name] = make(map[string]string)
	}
	return nil
}

func (w *Writer) lookup(nt domain.NativeTarget) (*target, error) {
	t, ok := w.byID[nt.ID]
	if !ok {
		return nil, zerr.With(domain.ErrNativeTargetNotFound, "target", nt.Name)
	}
	return t, nil
}

// AddDependency adds a dependency edge from nt to dep. Repeated edges are recorded once.
func (w *Writer) AddDependency(nt, dep domain.NativeTarget) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := w.lookup(nt)
	if err != nil {
		return err
	}
	d, err := w.lookup(dep)
	if err != nil {
		return err
	}
	if !slices.Contains(t.deps, d.native.Name) {
		t.deps = append(t.deps, d.native.Name)
	}
	return nil
}

// AddSourceFile adds the file at path to the sources of nt.
func (w *Writer) AddSourceFile(nt domain.NativeTarget, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := w.lookup(nt)
	if err != nil {
		return err
	}
	t.sources = append(t.sources, path)
	return nil
}

// NativeTargets returns every native target in creation order.
func (w *Writer) NativeTargets() []domain.NativeTarget {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.NativeTarget, 0, len(w.targets))
	for _, t := range w.targets {
		out = append(out, t.native)
	}
	return out
}

// BuildConfigurations returns the build configuration names of nt.
func (w *Writer) BuildConfigurations(nt domain.NativeTarget) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if _, err := w.lookup(nt); err != nil {
		return nil, err
	}
	return slices.Clone(w.configurations), nil
}

// BuildSetting returns the override of key for nt in configuration.
func (w *Writer) BuildSetting(nt domain.NativeTarget, configuration, key string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	settings, err := w.configuration(nt, configuration)
	if err != nil {
		return "", err
	}
	return settings[key], nil
}

// SetBuildSetting overrides key for nt in configuration.
func (w *Writer) SetBuildSetting(nt domain.NativeTarget, configuration, key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	settings, err := w.configuration(nt, configuration)
	if err != nil {
		return err
	}
	settings[key] = value
	return nil
}

func (w *Writer) configuration(nt domain.NativeTarget, configuration string) (map[string]string, error) {
	t, err := w.lookup(nt)
	if err != nil {
		return nil, err
	}
	settings, ok := t.settings[configuration]
	if !ok {
		err := zerr.With(domain.ErrBuildConfigurationNotFound, "configuration", configuration)
		return nil, zerr.With(err, "target", nt.Name)
	}
	return settings, nil
}

// EnsureGroup returns the root-level group named name, creating it at path when absent.
func (w *Writer) EnsureGroup(name, path string) (domain.Group, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := objectID("group", name)
	if g, ok := w.groupsByID[id]; ok {
		return g.handle, nil
	}
	g := &group{handle: domain.Group{ID: id, Name: name, Path: path}}
	w.groups = append(w.groups, g)
	w.groupsByID[id] = g
	return g.handle, nil
}

func (w *Writer) group(handle domain.Group) (*group, error) {
	g, ok := w.groupsByID[handle.ID]
	if !ok {
		return nil, zerr.With(domain.ErrGroupNotFound, "group", handle.Name)
	}
	return g, nil
}

// FileReferences returns the file references of g.
func (w *Writer) FileReferences(g domain.Group) ([]domain.FileReference, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rec, err := w.group(g)
	if err != nil {
		return nil, err
	}
	return slices.Clone(rec.refs), nil
}

// SetFileReferencePath repoints ref to path.
func (w *Writer) SetFileReferencePath(ref domain.FileReference, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.group(domain.Group{ID: ref.GroupID})
	if err != nil {
		return err
	}
	i := slices.IndexFunc(rec.refs, func(r domain.FileReference) bool { return r.ID == ref.ID })
	if i < 0 {
		return zerr.With(domain.ErrFileReferenceNotFound, "reference", ref.Name)
	}
	rec.refs[i].Path = path
	return nil
}

// NewFileReference creates a file reference to path inside g. The reference is named after
// the last path element.
func (w *Writer) NewFileReference(g domain.Group, path string) (domain.FileReference, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, err := w.group(g)
	if err != nil {
		return domain.FileReference{}, err
	}
	ref := domain.FileReference{
		ID:      objectID("file", g.ID+"/"+path),
		GroupID: g.ID,
		Name:    pathpkg.Base(path),
		Path:    path,
	}
	rec.refs = append(rec.refs, ref)
	return ref, nil
}

// Plan is the serialized form of a Writer.
type Plan struct {
	Configurations []string     `yaml:"configurations"`
	Targets        []TargetPlan `yaml:"targets"`
	Groups         []GroupPlan  `yaml:"groups,omitempty"`
}

// TargetPlan is one native target of a Plan.
type TargetPlan struct {
	domain.NativeTarget `yaml:",inline"`

	Dependencies  []string                     `yaml:"dependencies,omitempty"`
	Sources       []string                     `yaml:"sources,omitempty"`
	BuildSettings map[string]map[string]string `yaml:"build_settings,omitempty"`
}

// GroupPlan is one group of a Plan.
type GroupPlan struct {
	domain.Group `yaml:",inline"`

	Files []domain.FileReference `yaml:"files,omitempty"`
}

// Snapshot returns the current plan. Configurations without overrides are omitted.
func (w *Writer) Snapshot() Plan {
	w.mu.RLock()
	defer w.mu.RUnlock()

	p := Plan{Configurations: slices.Clone(w.configurations)}
	for _, t := range w.targets {
		tp := TargetPlan{
			NativeTarget: t.native,
			Dependencies: slices.Clone(t.deps),
			Sources:      slices.Clone(t.sources),
		}
		for config, settings := range t.settings {
			if len(settings) == 0 {
				continue
			}
			if tp.BuildSettings == nil {
				tp.BuildSettings = make(map[string]map[string]string)
			}
			tp.BuildSettings[config] = maps.Clone(settings)
		}
		p.Targets = append(p.Targets, tp)
	}
	for _, g := range w.groups {
		p.Groups = append(p.Groups, GroupPlan{Group: g.handle, Files: slices.Clone(g.refs)})
	}
	return p
}

// Encode writes the plan as YAML to out.
func (w *Writer) Encode(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(w.Snapshot()); err != nil {
		return zerr.Wrap(err, "failed to encode plan")
	}
	return enc.Close()
}
