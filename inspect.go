package mayan

/*
Compact value inspector, used to render tracing call arguments. This is
best-effort debug output with hard budgets: it must stay short and must
never panic, whatever the value shape.
*/

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const (
	DEFAULT_INSPECT_BUDGET = 500 // cumulative budget while rendering a sequence
	DEFAULT_INSPECT_CUTOFF = 250 // single string cutoff
	_INSPECT_MAX_DEPTH     = 4
)

// Identifying field and key names picked out of structured values, in
// preference order.
var inspectIdentifiers = [...]string{"id", "name", "title", "key", "index"}

// inspectCompact renders an arbitrary value as a short single-line
// string. Recovered panics degrade to a type-name placeholder.
func inspectCompact(value any) (out string) {
	defer func() {
		if recover() != nil {
			out = fmt.Sprintf("{%T}", value)
		}
	}()
	return inspectValue(value, _INSPECT_MAX_DEPTH)
}

func inspectValue(value any, depth int) string {
	if value == nil {
		return "nil"
	}
	switch v := value.(type) {
	case error:
		return "[Error: " + truncate(v.Error(), DEFAULT_INSPECT_CUTOFF) + "]"
	case time.Time:
		return v.Format(DEFAULT_TIME_FORMAT)
	case *time.Time:
		if v == nil {
			return "nil"
		}
		return v.Format(DEFAULT_TIME_FORMAT)
	case *regexp.Regexp:
		if v == nil {
			return "nil"
		}
		return "/" + v.String() + "/"
	case string:
		return strconv.Quote(truncate(v, DEFAULT_INSPECT_CUTOFF))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func:
		return funcName(value) + "()"
	case reflect.Pointer:
		if rv.IsNil() {
			return "nil"
		}
		if depth <= 0 {
			return "..."
		}
		return inspectValue(rv.Elem().Interface(), depth-1)
	case reflect.Slice, reflect.Array:
		return inspectSequence(rv, depth)
	case reflect.Map:
		return inspectMap(rv, depth)
	case reflect.Struct:
		return inspectStruct(rv, depth)
	}
	return fmt.Sprint(value)
}

// inspectSequence renders elements until the cumulative budget runs out,
// then summarizes the rest as "... (N more)".
func inspectSequence(rv reflect.Value, depth int) string {
	if depth <= 0 {
		return "[...]"
	}
	n := rv.Len()
	var sb strings.Builder
	sb.WriteString("[")
	used := 1
	for i := 0; i < n; i++ {
		piece := inspectValue(rv.Index(i).Interface(), depth-1)
		sep := ""
		if i > 0 {
			sep = ", "
		}
		if used+len(sep)+len(piece) > DEFAULT_INSPECT_BUDGET {
			sb.WriteString(sep + "... (" + strconv.Itoa(n-i) + " more)")
			break
		}
		sb.WriteString(sep + piece)
		used += len(sep) + len(piece)
	}
	sb.WriteString("]")
	return sb.String()
}

// inspectStruct renders "{TypeName: id=.. name=..}" using whichever
// identifying fields the struct exposes, "{TypeName}" when none.
func inspectStruct(rv reflect.Value, depth int) string {
	name := rv.Type().Name()
	if name == "" {
		name = "struct"
	}
	if depth <= 0 {
		return "{" + name + "}"
	}
	var parts []string
	for _, ident := range inspectIdentifiers {
		field := rv.FieldByNameFunc(func(f string) bool { return strings.EqualFold(f, ident) })
		if field.IsValid() && field.CanInterface() {
			parts = append(parts, ident+"="+inspectValue(field.Interface(), depth-1))
		}
	}
	if len(parts) == 0 {
		return "{" + name + "}"
	}
	return "{" + name + ": " + strings.Join(parts, " ") + "}"
}

// inspectMap treats string-keyed maps like structs, picking out the
// identifying keys. Everything else collapses to a placeholder.
func inspectMap(rv reflect.Value, depth int) string {
	if depth <= 0 || rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
		return "{map}"
	}
	keyType := rv.Type().Key()
	var parts []string
	for _, ident := range inspectIdentifiers {
		item := rv.MapIndex(reflect.ValueOf(ident).Convert(keyType))
		if item.IsValid() {
			parts = append(parts, ident+"="+inspectValue(item.Interface(), depth-1))
		}
	}
	if len(parts) == 0 {
		return "{map}"
	}
	return "{map: " + strings.Join(parts, " ") + "}"
}

// funcName resolves the declared name of a function value, "function"
// for anonymous or unresolvable ones.
func funcName(fn any) string {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return "function"
	}
	rf := runtime.FuncForPC(rv.Pointer())
	if rf == nil {
		return "function"
	}
	// Qualified names look like "pkg/path.(*Type).Method-fm" or
	// "pkg/path.name"; keep the last path segment.
	name := rf.Name()
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || isAnonymousFuncName(name) {
		return "function"
	}
	return name
}

// Anonymous functions get runtime names like "func1" (or a bare ordinal
// for nested ones).
func isAnonymousFuncName(name string) bool {
	if _, err := strconv.Atoi(name); err == nil {
		return true
	}
	rest := strings.TrimPrefix(name, "func")
	if rest == name {
		return false
	}
	_, err := strconv.Atoi(rest)
	return err == nil
}

// truncate shortens s to at most max runes, appending an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
