// Package key identifies keyboard keys for the input state model.
//
// A Key names a physical key. The host's raw scan code travels alongside it
// in input events so that keys the host cannot name (KeyUnknown) remain
// distinguishable to callbacks.
//
// Names are case-insensitive and accept common aliases:
//
//	key.FromName("esc")   // KeyEscape
//	key.FromName("w")     // KeyW
//	key.FromName("F5")    // KeyF5
package key
