// Package store holds stored document templates and resolves them by id or
// slug. Memory is the built-in implementation; LoadFS fills one from a
// directory of JSON or YAML files.
package store
