// Package catalog defines the metadata properties slicermeta translates.
//
// A catalog is an ordered list of properties. A property is either a
// constant, emitted unconditionally, or a field, which maps a PrusaSlicer
// source key to an AnkerMake target key and optionally transforms the value.
//
// # Profiles
//
//   - default: FLAVOR, TIME and Filament used
//   - extended: default plus print mode, compile mode, filament name,
//     nozzle size and maximum speed
//
// # Validation
//
// Target keys must be unique across a catalog. Validation runs once at
// startup; a failure is a programming error in the catalog definition and
// is treated as fatal.
package catalog
