// Package jsonval provides a tagged-variant representation of JSON values.
//
// A Value holds exactly one of the six JSON kinds (null, bool, number,
// string, array, object). Numbers are kept in their textual json.Number
// form, so integer-ness can be decided exactly instead of through float64
// round-tripping.
//
// Values are immutable through the public API and safe to share between
// goroutines once constructed.
package jsonval
