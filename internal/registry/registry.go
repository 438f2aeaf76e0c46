package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Module is the interface that all format modules must implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// FormatHandler describes one output binary shape the composer can produce.
// The composer treats handlers opaquely; their fields are consumed by the
// toolchain and by the plugin host loading the finished artifact.
type FormatHandler struct {
	// Name is the identifier used in descriptor `formats` lists, e.g. "VST3".
	Name string
	// Kind distinguishes loadable bundles from standalone executables.
	Kind ArtifactKind
	// Extension is the artifact's file extension, including the dot.
	// Standalone executables have no extension.
	Extension string
	// Description is display metadata only.
	Description string
}

// ArtifactKind classifies the on-disk shape of a produced artifact.
type ArtifactKind string

const (
	// KindPluginBundle is a loadable plugin bundle consumed by a host.
	KindPluginBundle ArtifactKind = "plugin-bundle"
	// KindExecutable is a standalone executable.
	KindExecutable ArtifactKind = "executable"
)

// ArtifactName returns the on-disk artifact name for a product built in
// this format.
func (h FormatHandler) ArtifactName(productName string) string {
	return productName + h.Extension
}

// Registry holds the format handlers known to a single application instance.
type Registry struct {
	formats map[string]FormatHandler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		formats: make(map[string]FormatHandler),
	}
}

// RegisterFormat registers a format handler. Registering the same format
// name twice is a programmer error and panics, matching the registration
// discipline for Go-side handlers.
func (r *Registry) RegisterFormat(h FormatHandler) {
	key := normalize(h.Name)
	if _, exists := r.formats[key]; exists {
		panic(fmt.Sprintf("format handler with name '%s' already registered", h.Name))
	}
	slog.Debug("Registering format handler.", "name", h.Name, "kind", h.Kind)
	r.formats[key] = h
}

// Format looks up a handler by name. Lookup is case-insensitive so that
// descriptor authors can write "vst3" or "VST3" interchangeably.
func (r *Registry) Format(name string) (FormatHandler, bool) {
	h, ok := r.formats[normalize(name)]
	return h, ok
}

// Formats returns the names of all registered formats, sorted.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formats))
	for _, h := range r.formats {
		names = append(names, h.Name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
