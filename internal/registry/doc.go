// Package registry holds the format handlers known to an application
// instance. Each requested output format (AU, VST3, Standalone, ...) maps to
// a FormatHandler describing the artifact shape that one build job produces.
//
// Handlers are contributed by the pluggable packages under formats/, which
// register themselves through the Module interface when the application is
// constructed. There is no ambient global registry; every App owns its own.
package registry
