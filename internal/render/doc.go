// Package render provides the deferred-object queue that decouples code
// producing render work from the stage that will eventually consume it.
//
// Producers tag each object with a RenderID naming the call site that made
// it. Pushing never blocks and is safe from any goroutine:
//
//	render.Push(render.Here(), obj)
//
// Calls from the same call site always yield the same RenderID, so a
// consumer can treat repeated pushes from one site as updates to one logical
// slot rather than unbounded growth.
//
// No concrete Object variants are defined yet; the Object interface is
// sealed so the variant set stays under this package's control.
package render
