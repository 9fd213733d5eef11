// Package placeholder turns a delimiter pair into reusable matchers for
// `<open>key<close>` tokens. Delimiters are always treated as literal text:
// every regular-expression metacharacter is escaped before the pattern is
// built, so pairs such as "[[" / "]]" or "${" / "}" are safe to use.
//
// The same pattern family backs field extraction and rendering, which keeps
// the keys reported at design time substitutable at render time.
package placeholder
