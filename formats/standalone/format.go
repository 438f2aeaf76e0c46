// Package standalone contributes the standalone-executable output format.
package standalone

import "github.com/vk/plugforge/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Standalone format handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(registry.FormatHandler{
		Name:        "Standalone",
		Kind:        registry.KindExecutable,
		Description: "Standalone executable running the plugin outside a host",
	})
}
