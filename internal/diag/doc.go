// Package diag defines diagnostics produced by the lexer, the parser, the
// classifier, and the notify-pattern analyzer, plus the fix descriptions the
// fix engine consumes. Diagnostics are plain values; a Bag collects them per
// pass with a hard cap and deterministic ordering.
package diag
