// Package au contributes the Audio Unit output format.
package au

import "github.com/vk/plugforge/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the AU format handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(registry.FormatHandler{
		Name:        "AU",
		Kind:        registry.KindPluginBundle,
		Extension:   ".component",
		Description: "Audio Unit component bundle, loaded by macOS hosts",
	})
}
