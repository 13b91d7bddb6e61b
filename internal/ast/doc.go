// Package ast holds the declaration tree produced by the parser. Nodes are
// plain immutable-by-convention structs; every node keeps the byte span of
// its source text so the analyzer and the fix engine can address it.
//
// Accessor, fn and initializer bodies are not parsed into expression trees.
// They are captured as raw spans plus the list of identifier uses inside
// them, which is exactly what pattern detection and reference counting need.
package ast
