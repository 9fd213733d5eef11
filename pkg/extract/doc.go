// Package extract discovers placeholder occurrences inside a document tree
// and attributes each one to its owning node.
//
// The walk is depth-first pre-order: an element's content, then its attribute
// values (sorted by attribute name), then its children. A node without its
// own identifier inherits the nearest ancestor's. Keys are reported in a
// stable discovery order so repeated extractions of the same tree agree.
package extract
