// Package model defines the placeholder entities served by the stub client.
//
// A Record owns an ordered list of Details. Both entities carry an opaque
// identifier minted when they are created, and identity is defined by that
// identifier alone: two values with the same ID are the same entity even if
// their mutable fields differ.
//
// # Ownership
//
// A Record stores its Details by value. Details() returns a copy, so a Detail
// obtained from one Record can never be shared with, or mutated through,
// another Record.
//
// # Generation
//
// Generator produces the data a "fetch" returns:
//
//	gen := model.NewGenerator(nil) // seeded from the runtime
//	records := gen.Records()       // "Record 1" .. "Record 4"
//
// Each record receives between MinDetails and MaxDetails details, each with a
// count in [0, MaxDetailCount] and the description "Detail number {k}".
package model
