// Package content defines the structured journal body and the pure
// encode/decode pair between that structure and the text blob the
// store persists. Decode failure recovers to an empty structure.
package content
