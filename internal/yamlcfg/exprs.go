package yamlcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// synthesizeArgs turns decoded YAML argument values into HCL expressions so
// the executor can evaluate both formats through one code path.
func synthesizeArgs(args map[string]any) (map[string]hcl.Expression, error) {
	out := make(map[string]hcl.Expression, len(args))
	for name, raw := range args {
		expr, err := synthesizeExpr(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out[name] = expr
	}
	return out, nil
}

// synthesizeExpr converts one YAML value. Strings containing `${{ ... }}`
// interpolation are rewritten into HCL template syntax and parsed; anything
// else becomes a static expression.
func synthesizeExpr(raw any) (hcl.Expression, error) {
	switch v := raw.(type) {
	case string:
		if strings.Contains(v, "${{") {
			tmpl := strings.ReplaceAll(v, "${{", "${")
			tmpl = strings.ReplaceAll(tmpl, "}}", "}")
			expr, diags := hclsyntax.ParseTemplate([]byte(tmpl), "<yaml>", hcl.InitialPos)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid interpolation %q: %w", v, diags)
			}
			return expr, nil
		}
		return hcl.StaticExpr(cty.StringVal(v), hcl.Range{}), nil
	default:
		val, err := scalarToCty(raw)
		if err != nil {
			return nil, err
		}
		return hcl.StaticExpr(val, hcl.Range{}), nil
	}
}

func scalarToCty(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case string:
		return cty.StringVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case []any:
		if len(v) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		elems := make([]cty.Value, 0, len(v))
		for _, e := range v {
			elems = append(elems, cty.StringVal(stringifyScalar(e)))
		}
		return cty.TupleVal(elems), nil
	case nil:
		return cty.NullVal(cty.String), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value type %T", raw)
	}
}

// stringifyScalar renders a YAML scalar the way it was written, as far as
// float formatting allows. Matrix values like 3.10 must be quoted in the
// source to survive (same caveat the hosted CI platforms have).
func stringifyScalar(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", raw)
	}
}
