// Package hcl implements the config.Loader and config.Converter interfaces
// for workflow definitions written in HCL. It parses workflow files into the
// schema structs, translates them into the format-agnostic config model, and
// provides the expression decoding used by step handlers at execution time.
package hcl
