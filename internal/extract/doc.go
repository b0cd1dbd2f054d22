// Package extract parses the values of slicer metadata comment lines.
//
// Each extractor receives the text that follows a recognised source key,
// for example " = 1h 30m 0s" for "; estimated printing time = 1h 30m 0s",
// and either returns a typed Value or a *ParsingError.
//
// # Extractors
//
//   - Duration: "<n>h <n>m <n>s" composites to whole seconds
//   - Length: fixed-point millimeters ("2500.00") to ten-micrometer units
//   - Text: the trimmed value, unchanged
//
// All three are exposed as Transformer values so the catalog can attach them
// to field descriptors without special cases.
//
// # Errors
//
// Extractors never panic on malformed input. Every failure is a *ParsingError
// matching either ErrMissingValue or ErrStringParsing via errors.Is.
package extract
