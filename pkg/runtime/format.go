package runtime

import "fmt"

// Format renders a value the way the REPL prints results.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case IntegerValue:
		if val.Val == nil {
			return "0"
		}
		return val.Val.String()
	case BoolValue:
		if val.Val {
			return "True"
		}
		return "False"
	case *FunctionValue:
		if name := val.Name(); name != "" {
			return fmt.Sprintf("<function %s>", name)
		}
		return "<lambda>"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}
