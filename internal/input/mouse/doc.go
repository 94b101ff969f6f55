// Package mouse identifies mouse buttons for the input state model.
package mouse
