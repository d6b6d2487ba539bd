// Package starexpr evaluates carbon property expressions written in
// Starlark.
//
// Each expression is a single Starlark expression. Scope bindings visible to
// the node (index, datum, component props) are predeclared names, alongside
// frames_elapsed and a few constructors for carbon types:
//
//	px(n)                 pixel size
//	percent(p)            percent size
//	translate(x, y)       transform
//	rotate(degrees)       transform
//	scale(sx, sy=sx)      transform
//	rgba(r, g, b, a=255)  color
//	hex("#rrggbb")        color
//
// Transforms compose with *, applied right to left.
package starexpr
