package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/framekit/internal/input"
	"github.com/dshills/framekit/internal/input/key"
	"github.com/dshills/framekit/internal/input/mouse"
)

// inputModule exposes the input query functions. Keys and buttons are
// looked up by name; an unknown name raises a Lua error.
func inputModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"window_size": func(L *lua.LState) int {
			size := input.WindowSize()
			L.Push(lua.LNumber(size.X))
			L.Push(lua.LNumber(size.Y))
			return 2
		},
		"mouse_position": func(L *lua.LState) int {
			pos := input.MousePosition()
			L.Push(lua.LNumber(pos.X))
			L.Push(lua.LNumber(pos.Y))
			return 2
		},
		"is_key_down":              keyQuery(input.IsKeyDown),
		"is_key_pressed":           keyQuery(input.IsKeyPressed),
		"is_key_released":          keyQuery(input.IsKeyReleased),
		"is_mouse_button_down":     buttonQuery(input.IsMouseButtonDown),
		"is_mouse_button_pressed":  buttonQuery(input.IsMouseButtonPressed),
		"is_mouse_button_released": buttonQuery(input.IsMouseButtonReleased),
		"key_state": func(L *lua.LState) int {
			pushState(L, input.KeyState(checkKey(L, 1)))
			return 1
		},
		"mouse_button_state": func(L *lua.LState) int {
			pushState(L, input.MouseButtonState(checkButton(L, 1)))
			return 1
		},
	}
}

func keyQuery(query func(key.Key) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(query(checkKey(L, 1))))
		return 1
	}
}

func buttonQuery(query func(mouse.Button) bool) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(query(checkButton(L, 1))))
		return 1
	}
}

func checkKey(L *lua.LState, n int) key.Key {
	name := L.CheckString(n)
	k := key.FromName(name)
	if k == key.KeyUnknown {
		L.ArgError(n, "unknown key "+name)
	}
	return k
}

func checkButton(L *lua.LState, n int) mouse.Button {
	name := L.CheckString(n)
	b, ok := mouse.FromName(name)
	if !ok {
		L.ArgError(n, "unknown mouse button "+name)
	}
	return b
}

func pushState(L *lua.LState, s input.ButtonState) {
	t := L.NewTable()
	t.RawSetString("down", lua.LBool(s.Down))
	t.RawSetString("pressed", lua.LBool(s.Pressed))
	t.RawSetString("released", lua.LBool(s.Released))
	L.Push(t)
}

// screenModule draws through h's surface.
func (h *Handler) screenModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"text": func(L *lua.LState) int {
			x := L.CheckInt(1)
			y := L.CheckInt(2)
			h.surface.SetText(x, y, L.CheckString(3))
			return 0
		},
	}
}

// print writes its arguments to the handler's logger instead of stdout.
func (h *Handler) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	h.logger.Info("%s", strings.Join(parts, "\t"))
	return 0
}

// keyName is the name passed to Lua callbacks. It round-trips through
// key.FromName.
func keyName(k key.Key) string {
	return strings.ToLower(k.String())
}
