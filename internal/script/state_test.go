package script

import (
	"errors"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func TestNewStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "loadstring"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("global %q = %v, want nil", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", "tostring"} {
		if v := s.GetGlobal(name); v == lua.LNil {
			t.Errorf("global %q missing", name)
		}
	}
}

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`x = string.upper("ab") .. math.floor(2.5)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := s.GetGlobal("x").String(); got != "AB2" {
		t.Errorf("x = %q, want %q", got, "AB2")
	}

	if err := s.DoString(`this is not lua`); err == nil {
		t.Error("DoString() with syntax error should fail")
	}
}

func TestStateCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`
		function add(a, b) return a + b end
		function nothing() end
		function boom() error("bad") end
		notfunc = 5
	`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	results, err := s.Call("add", lua.LNumber(2), lua.LNumber(3))
	if err != nil {
		t.Fatalf("Call(add) error = %v", err)
	}
	if len(results) != 1 || results[0] != lua.LNumber(5) {
		t.Errorf("Call(add) = %v, want [5]", results)
	}

	results, err = s.Call("nothing")
	if err != nil {
		t.Fatalf("Call(nothing) error = %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("Call(nothing) = %#v, want empty slice", results)
	}

	if _, err := s.Call("missing"); !errors.Is(err, ErrUndefined) {
		t.Errorf("Call(missing) error = %v, want ErrUndefined", err)
	}
	if _, err := s.Call("notfunc"); err == nil || errors.Is(err, ErrUndefined) {
		t.Errorf("Call(notfunc) error = %v, want type error", err)
	}

	top := s.L.GetTop()
	if _, err := s.Call("boom"); err == nil {
		t.Error("Call(boom) should fail")
	}
	if got := s.L.GetTop(); got != top {
		t.Errorf("stack top after failed call = %d, want %d", got, top)
	}
}

func TestStateDefined(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function f() end; g = 1`); err != nil {
		t.Fatal(err)
	}
	if !s.Defined("f") {
		t.Error("Defined(f) = false")
	}
	if s.Defined("g") || s.Defined("h") {
		t.Error("Defined should be false for non-functions")
	}
}

func TestStateRegisterModule(t *testing.T) {
	s := NewState()
	defer s.Close()

	s.RegisterModule("mod", map[string]lua.LGFunction{
		"twice": func(L *lua.LState) int {
			L.Push(lua.LNumber(L.CheckNumber(1) * 2))
			return 1
		},
	})
	if err := s.DoString(`y = mod.twice(21)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := s.GetGlobal("y"); got != lua.LNumber(42) {
		t.Errorf("y = %v, want 42", got)
	}
}

func TestStateClose(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrStateClosed", err)
	}
	if _, err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() after Close error = %v, want ErrStateClosed", err)
	}
	if s.Defined("print") {
		t.Error("Defined() after Close should be false")
	}
}
