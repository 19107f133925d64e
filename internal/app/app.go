// Package app implements the podgen commands on top of the installation engine.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/podgen/internal/adapters/plan"
	"go.trai.ch/podgen/internal/adapters/telemetry"
	"go.trai.ch/podgen/internal/core/domain"
	"go.trai.ch/podgen/internal/core/ports"
	"go.trai.ch/podgen/internal/engine/buildsettings"
	"go.trai.ch/podgen/internal/engine/inspector"
	"go.trai.ch/podgen/internal/engine/installer"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	writer    ports.DocumentWriter
	finder    ports.ProjectFinder
	artifacts ports.ArtifactResolver
	exporter  ports.GraphExporter
	openStore ports.DigestStoreOpener
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	writer ports.DocumentWriter,
	finder ports.ProjectFinder,
	artifacts ports.ArtifactResolver,
	exporter ports.GraphExporter,
	openStore ports.DigestStoreOpener,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		loader:    loader,
		writer:    writer,
		finder:    finder,
		artifacts: artifacts,
		exporter:  exporter,
		openStore: openStore,
		tracer:    tracer,
		logger:    log,
	}
}

// InstallOptions configures Install.
type InstallOptions struct {
	// OutDir replaces the sandbox root as the output directory.
	OutDir string
	// Verbose reports every installation phase with its duration.
	Verbose bool
}

// InstallSummary describes a finished installation.
type InstallSummary struct {
	OutDir        string
	NativeTargets []domain.NativeTarget
	Documents     int
	// Changed lists the written documents whose content changed, relative to OutDir.
	Changed []string
	// Recorded is the number of digests updated in the digest store.
	Recorded int
}

// Install loads the manifest, runs an installation and writes its documents and plan.
func (a *App) Install(ctx context.Context, manifestPath string, opts InstallOptions) (*InstallSummary, error) {
	inst, err := a.load(manifestPath)
	if err != nil {
		return nil, err
	}

	tracer := a.tracer
	if opts.Verbose {
		tp := setupOTel(telemetry.NewBridge(a.logger))
		defer func() {
			_ = tp.Shutdown(ctx)
		}()
		tracer = telemetry.NewTracer(tp, "podgen")
	}

	project := plan.NewWriter()
	out, err := installer.New(project, tracer, a.logger, inspector.New(a.finder, a.logger), a.artifacts).Install(ctx, inst)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := project.Encode(&buf); err != nil {
		return nil, err
	}
	docs := append(out.Documents, domain.Document{
		Path:    filepath.Join(domain.MetadataDirName, domain.PlanFileName),
		Content: buf.Bytes(),
	})

	root := opts.OutDir
	if root == "" {
		root = inst.Sandbox.Root
	}
	changed, err := a.writer.Write(ctx, root, docs)
	if err != nil {
		return nil, err
	}

	summary := &InstallSummary{
		OutDir:        root,
		NativeTargets: project.NativeTargets(),
		Documents:     len(docs),
		Changed:       changed,
	}
	if inst.Options.GenerateDigests {
		if summary.Recorded, err = a.recordDigests(root, docs); err != nil {
			return nil, err
		}
	}
	a.logger.Info(fmt.Sprintf("Wrote %d of %d documents to %s", len(changed), len(docs), root))
	return summary, nil
}

func (a *App) recordDigests(root string, docs []domain.Document) (int, error) {
	store, err := a.openStore(domain.Sandbox{Root: root}.DigestStorePath())
	if err != nil {
		return 0, err
	}
	recorded := 0
	now := time.Now()
	for _, doc := range docs {
		if store.Matches(doc.Path, doc.Content) {
			continue
		}
		err := store.Put(domain.DocumentDigest{
			Path:      doc.Path,
			Digest:    digest.FromBytes(doc.Content).String(),
			Timestamp: now,
		})
		if err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}

// Xcconfig renders the settings document of the pod, test or aggregate target named label.
// The configuration only applies to aggregate targets.
func (a *App) Xcconfig(manifestPath, label, configuration string) (string, error) {
	if label == "" {
		return "", domain.ErrNoTargetsSpecified
	}
	inst, err := a.load(manifestPath)
	if err != nil {
		return "", err
	}
	c := buildsettings.NewComposer(inst.Graph, inst.Options)

	if pod, ok := inst.Graph.PodByLabel(label); ok {
		return c.PodTargetSettings(pod).Render(), nil
	}
	if agg, ok := inst.Graph.AggregateByLabel(label); ok {
		if _, ok := agg.UserBuildConfigurations[configuration]; !ok {
			err := zerr.With(domain.ErrBuildConfigurationNotFound, "configuration", configuration)
			return "", zerr.With(err, "target", label)
		}
		doc, err := c.AggregateSettings(agg, configuration)
		if err != nil {
			return "", err
		}
		return doc.Render(), nil
	}
	for pod := range inst.Graph.Pods() {
		tests, err := inst.Graph.TestTargets(pod.ID())
		if err != nil {
			return "", err
		}
		for _, t := range tests {
			if t.Label() == label {
				return c.TestTargetSettings(t).Render(), nil
			}
		}
	}
	return "", zerr.With(domain.ErrUnknownTarget, "target", label)
}

// Graph writes the pod dependency graph of the manifest in DOT format to w.
func (a *App) Graph(manifestPath string, w io.Writer) error {
	inst, err := a.load(manifestPath)
	if err != nil {
		return err
	}
	return a.exporter.Export(w, inst.Graph)
}

func (a *App) load(manifestPath string) (*domain.Installation, error) {
	inst, err := a.loader.Load(manifestPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}
	return inst, nil
}

// setupOTel installs a tracer provider reporting finished spans to bridge.
func setupOTel(bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	otel.SetTracerProvider(tp)
	return tp
}
