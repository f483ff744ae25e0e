package script

import (
	"encoding/json"
	"strings"

	"github.com/Shopify/go-lua"
)

// setupSandbox creates a safe Lua environment: base, string, table, and
// math libraries only, plus a handful of registered utilities. Anything
// that can touch the filesystem, environment, or loader is stripped.
func setupSandbox(l *lua.State) {
	lua.Require(l, "_G", lua.BaseOpen, true)
	l.Pop(1)
	lua.Require(l, "string", lua.StringOpen, true)
	l.Pop(1)
	lua.Require(l, "table", lua.TableOpen, true)
	l.Pop(1)
	lua.Require(l, "math", lua.MathOpen, true)
	l.Pop(1)

	l.PushNil()
	l.SetGlobal("dofile")
	l.PushNil()
	l.SetGlobal("loadfile")
	l.PushNil()
	l.SetGlobal("load")
	l.PushNil()
	l.SetGlobal("loadstring")
	l.PushNil()
	l.SetGlobal("require")

	l.Register("json_encode", jsonEncode)
	l.Register("json_decode", jsonDecode)
	l.Register("str_trim", strTrim)
	l.Register("str_contains", strContains)
	l.Register("type_of", typeOf)
}

// pushValue converts a Go value to Lua.
func pushValue(l *lua.State, v any) {
	switch val := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(val)
	case int:
		l.PushInteger(val)
	case int64:
		l.PushInteger(int(val))
	case float64:
		l.PushNumber(val)
	case string:
		l.PushString(val)
	case []any:
		l.NewTable()
		for i, item := range val {
			l.PushInteger(i + 1)
			pushValue(l, item)
			l.SetTable(-3)
		}
	case map[string]any:
		l.NewTable()
		for k, item := range val {
			l.PushString(k)
			pushValue(l, item)
			l.SetTable(-3)
		}
	default:
		// JSON round trip as a fallback for everything else.
		if data, err := json.Marshal(val); err == nil {
			l.PushString(string(data))
		} else {
			l.PushNil()
		}
	}
}

// pullValue converts a Lua value to Go.
func pullValue(l *lua.State, idx int) any {
	switch l.TypeOf(idx) {
	case lua.TypeNil:
		return nil
	case lua.TypeBoolean:
		return l.ToBoolean(idx)
	case lua.TypeNumber:
		n, _ := l.ToNumber(idx)
		return n
	case lua.TypeString:
		s, _ := l.ToString(idx)
		return s
	case lua.TypeTable:
		return pullTable(l, idx)
	default:
		return nil
	}
}

// pullTable converts a Lua table into a Go slice when its keys are a dense
// integer sequence, a map otherwise.
func pullTable(l *lua.State, idx int) any {
	l.PushValue(idx)

	isArray := true
	maxIndex := 0

	l.PushNil()
	for l.Next(-2) {
		if l.TypeOf(-2) != lua.TypeNumber {
			isArray = false
			l.Pop(2)
			break
		}
		n, _ := l.ToNumber(-2)
		if i := int(n); i > maxIndex {
			maxIndex = i
		}
		l.Pop(1)
	}

	if isArray && maxIndex > 0 {
		arr := make([]any, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			l.PushInteger(i)
			l.Table(-2)
			arr[i-1] = pullValue(l, -1)
			l.Pop(1)
		}
		l.Pop(1)
		return arr
	}

	obj := make(map[string]any)
	l.PushNil()
	for l.Next(-2) {
		key, _ := l.ToString(-2)
		obj[key] = pullValue(l, -1)
		l.Pop(1)
	}
	l.Pop(1)
	return obj
}

// Lua utility functions.

func jsonEncode(l *lua.State) int {
	value := pullValue(l, 1)
	data, err := json.Marshal(value)
	if err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	l.PushString(string(data))
	return 1
}

func jsonDecode(l *lua.State) int {
	str := lua.CheckString(l, 1)
	var value any
	if err := json.Unmarshal([]byte(str), &value); err != nil {
		l.PushNil()
		l.PushString(err.Error())
		return 2
	}
	pushValue(l, value)
	return 1
}

func strTrim(l *lua.State) int {
	str := lua.CheckString(l, 1)
	l.PushString(strings.TrimSpace(str))
	return 1
}

func strContains(l *lua.State) int {
	str := lua.CheckString(l, 1)
	substr := lua.CheckString(l, 2)
	l.PushBoolean(strings.Contains(str, substr))
	return 1
}

func typeOf(l *lua.State) int {
	switch l.TypeOf(1) {
	case lua.TypeNil:
		l.PushString("nil")
	case lua.TypeBoolean:
		l.PushString("boolean")
	case lua.TypeNumber:
		l.PushString("number")
	case lua.TypeString:
		l.PushString("string")
	case lua.TypeTable:
		l.PushString("table")
	case lua.TypeFunction:
		l.PushString("function")
	default:
		l.PushString("unknown")
	}
	return 1
}
