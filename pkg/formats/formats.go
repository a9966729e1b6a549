// Package formats decodes the scenario files of a 1990s hex-based
// wargame family into normalized in-memory values.
//
// Three incompatible on-disk layouts share a magic-number-plus-fixed-
// offset philosophy; the magic at offset 0 selects the layout, after
// which every offset interpretation is fixed. All decoders take an
// immutable byte slice and return a new value or an error; nothing is
// ever guessed, and nothing is mutated.
package formats
