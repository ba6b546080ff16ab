package hcl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// Converter is the HCL-specific implementation of the config.Converter
// interface. Both the HCL and YAML loaders hand out this converter, since
// the YAML loader synthesizes HCL expressions during translation.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeArgs evaluates the argument expressions against evalCtx and
// populates the target struct using reflection. Fields are matched by their
// `flow` tag; a ",optional" suffix makes the argument optional. Arguments
// that match no field are rejected so typos fail loudly.
func (c *Converter) DecodeArgs(
	ctx context.Context,
	target any,
	args map[string]hcl.Expression,
	evalCtx *hcl.EvalContext,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding step arguments.")

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	known := make(map[string]bool, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("flow")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		name := parts[0]
		optional := len(parts) > 1 && parts[1] == "optional"
		known[name] = true

		expr, provided := args[name]
		if !provided {
			if optional {
				continue
			}
			return fmt.Errorf("missing required argument %q", name)
		}

		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate argument %q: %w", name, diags)
		}

		wantType, err := gocty.ImpliedType(fieldVal.Interface())
		if err != nil {
			return fmt.Errorf("unsupported field type for argument %q: %w", name, err)
		}
		converted, err := convert.Convert(val, wantType)
		if err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
		if err := gocty.FromCtyValue(converted, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
	}

	var unknown []string
	for name := range args {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown arguments: %s", strings.Join(unknown, ", "))
	}

	logger.Debug("Step arguments decoded.")
	return nil
}
