// Package manifest loads a carbon render tree from YAML.
//
// A manifest is the serialized form of a compiled node graph: one entry per
// node with its kind, its properties and its children. Any property may be a
// literal or a Starlark expression:
//
//	root:
//	  kind: frame
//	  width: 100%
//	  height: 100%
//	  children:
//	    - kind: repeat
//	      source: {expr: "range(3)"}
//	      children:
//	        - kind: text
//	          width: 200px
//	          height: 20px
//	          content: {expr: "'row %d' % index"}
//	          transform: {expr: "translate(0, 20 * index)"}
package manifest
