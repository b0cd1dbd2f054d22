// Package translate rewrites a G-code program so that its PrusaSlicer
// metadata is readable by the AnkerMake M5.
//
// The pipeline makes one pass over the lines of a program, matches each line
// against the catalog's source keys, converts matched values and renders them
// as header lines. The output is the header (constants first, then matched
// fields in the order they were found) followed by every original line,
// unchanged and in order.
//
// # Tolerances
//
// Lines that are not valid UTF-8 are dropped while reading and counted in
// Result.DroppedLines; no error is raised for them.
//
// # Idempotence
//
// Processing is not idempotent. Running the pipeline on its own output
// matches the metadata lines again and prepends a second header.
package translate
