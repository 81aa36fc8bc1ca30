// Package utils provides loose type conversions for decoded JSON values.
//
// Destination records arrive as untyped field maps, so numbers may be float64,
// lists may be []any and missing fields are nil. The helpers here turn those
// into the concrete values a card needs without failing on odd input.
package utils
