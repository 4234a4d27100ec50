// FILE: src/internal/format/args.go
package format

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"runtime"
	"strings"
	"time"

	"logmux/src/internal/core"
)

// maxSanitizeDepth bounds traversal of nested payloads so cyclic values
// terminate instead of recursing forever.
const maxSanitizeDepth = 32

// Args renders a variadic argument list as one display string, joining the
// per-argument renderings with a single space. Formatting never fails:
// values that cannot be serialized are replaced with placeholders.
func Args(args ...any) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = formatArg(arg)
	}
	return strings.Join(parts, " ")
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case error:
		return v.Error()
	case time.Time:
		return core.Timestamp(v)
	case *big.Int:
		if v == nil {
			return "<nil>"
		}
		return v.String()
	case big.Int:
		return v.String()
	case []byte:
		return fmt.Sprintf("<bytes len=%d>", len(v))
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v)
	}

	rv := reflect.ValueOf(arg)
	if rv.Kind() == reflect.Func {
		return funcPlaceholder(rv)
	}

	data, err := json.Marshal(sanitize(arg, 0))
	if err != nil {
		return fmt.Sprintf("<unserializable: %v>", err)
	}
	return string(data)
}

// sanitize rewrites values the JSON encoder would reject or misrepresent:
// big integers become decimal strings, times become wire timestamps, byte
// buffers and funcs become placeholders. Containers are walked recursively
// up to maxSanitizeDepth.
func sanitize(v any, depth int) any {
	if depth > maxSanitizeDepth {
		return "<max depth exceeded>"
	}

	switch val := v.(type) {
	case nil:
		return nil
	case *big.Int:
		if val == nil {
			return nil
		}
		return val.String()
	case big.Int:
		return val.String()
	case time.Time:
		return core.Timestamp(val)
	case []byte:
		return fmt.Sprintf("<bytes len=%d>", len(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = sanitize(e, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = sanitize(e, depth+1)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return funcPlaceholder(rv)
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return sanitize(rv.Elem().Interface(), depth+1)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitize(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = sanitize(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Struct:
		out := make(map[string]any)
		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			out[fieldName(field)] = sanitize(rv.Field(i).Interface(), depth+1)
		}
		return out
	default:
		return v
	}
}

func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

func funcPlaceholder(rv reflect.Value) string {
	name := "anonymous"
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil && fn.Name() != "" {
		name = fn.Name()
	}
	return fmt.Sprintf("<func %s>", name)
}
