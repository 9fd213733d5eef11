// Package export turns a stored template plus one or many value sets into a
// deliverable document.
//
// A Pipeline validates the request before doing any work (reference, format,
// template lookup, delimiters, values, page options), renders every value
// set with the placeholder renderer and hands the rendered documents to the
// Handler registered for the requested format:
//
//	html         rendered documents plus the stylesheet, untouched
//	inline-html  every document inlined with the stylesheet (all or nothing)
//	email        alias of inline-html
//	pdf          one PDF; batches become one page per value set
//
// A single value set is a batch of one. Result.Batch remembers which form
// the caller used so Result.Body can reproduce the response shape clients
// expect.
package export
