// Package config defines the format-agnostic model of a build description,
// along with the Loader interface for reading one from disk.
//
// The config.Model is the single source of truth for the composer: it is
// what a descriptor file becomes after parsing, and the composer never sees
// the concrete file format. The HCL implementation lives in internal/hcl.
package config
