// Package vst3 contributes the VST3 output format.
package vst3

import "github.com/vk/plugforge/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the VST3 format handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(registry.FormatHandler{
		Name:        "VST3",
		Kind:        registry.KindPluginBundle,
		Extension:   ".vst3",
		Description: "VST3 plugin bundle, loaded by cross-platform hosts",
	})
}
