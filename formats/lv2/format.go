// Package lv2 contributes the LV2 output format.
package lv2

import "github.com/vk/plugforge/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the LV2 format handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFormat(registry.FormatHandler{
		Name:        "LV2",
		Kind:        registry.KindPluginBundle,
		Extension:   ".lv2",
		Description: "LV2 plugin bundle, loaded by Linux-first hosts",
	})
}
