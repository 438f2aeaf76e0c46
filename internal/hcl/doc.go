// Package hcl provides the concrete HCL implementation for the build
// description loading interface defined in the config package. It is
// responsible for file discovery, parsing, and HCL-to-model translation,
// including the evaluation of feature-flag expressions into rendered
// preprocessor defines.
package hcl
