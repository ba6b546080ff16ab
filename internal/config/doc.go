// Package config defines the format-agnostic configuration model for
// workflow definitions, along with the core interfaces (Loader, Converter)
// for loading and interpreting them from various sources.
//
// The config.Model is the single source of truth for the executor and the
// scheduler. Concrete implementations of the interfaces, such as for HCL and
// YAML, are provided in separate packages.
package config
