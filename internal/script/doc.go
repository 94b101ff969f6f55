// Package script runs frame loop callbacks written in Lua.
//
// A script defines any of the global functions below; the ones it leaves
// out are no-ops.
//
//	function update(dt) end
//	function draw() end
//	function keyboard(key, scancode, transition, repeat) end
//	function mouse_button(button, transition) end
//	function mouse_relative(dx, dy) end
//	function mouse_absolute(x, y) end
//	function window_resized(w, h) end
//	function close_requested() return true end
//
// Keys and buttons are passed by name ("w", "escape", "left") and the
// transition is "pressed" or "released". The input module answers the
// same queries as the Go input package:
//
//	if input.is_key_pressed("space") then ... end
//	local x, y = input.mouse_position()
//
// When the handler has a surface, the screen module draws on it:
//
//	screen.text(0, 0, "hello")
//
// Scripts run in a sandbox with only the base, table, string and math
// libraries. Errors raised by a callback are logged and counted; they never
// stop the frame loop.
package script
