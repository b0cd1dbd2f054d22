package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slicermeta/slicermeta/internal/extract"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// Profile names accepted by ForProfile.
const (
	ProfileDefault  = "default"
	ProfileExtended = "extended"
)

// Catalog is an ordered, read-only list of properties.
// Safe for concurrent use: nothing mutates it after construction.
type Catalog struct {
	properties []Property
}

// New builds a catalog from properties in the given order.
// The slice is copied; New does not validate.
func New(properties ...Property) *Catalog {
	return &Catalog{properties: append([]Property(nil), properties...)}
}

var defaultProperties = []Property{
	Constant(slicermeta.AnkerFlavor, slicermeta.DefaultFlavor),
	Field(slicermeta.PrusaEstimatedPrintingTime, slicermeta.AnkerPrintingTime, extract.DurationTransformer),
	Field(slicermeta.PrusaFilamentUsedMM, slicermeta.AnkerFilamentUsed, extract.LengthTransformer),
}

// The M5 reads these but their effect on the printer is unconfirmed.
var extendedProperties = []Property{
	Constant("Print Mode", "fast"),
	Constant("CompileMode", "Executable File"),
	Field("filament_settings_id", "Filament Name", nil),
	Field("nozzle_diameter", "Machine Nozzle Size", nil),
	Field("max_print_speed", "MAXSPEED", nil),
}

// Default returns the catalog of time, filament and flavour.
func Default() *Catalog {
	return New(defaultProperties...)
}

// Extended returns Default plus the additional AnkerMake header properties.
func Extended() *Catalog {
	return New(append(append([]Property(nil), defaultProperties...), extendedProperties...)...)
}

// Profiles lists the profile names accepted by ForProfile.
func Profiles() []string {
	return []string{ProfileDefault, ProfileExtended}
}

// ForProfile resolves a profile name. An empty name selects the default profile.
func ForProfile(name string) (*Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileDefault:
		return Default(), nil
	case ProfileExtended:
		return Extended(), nil
	default:
		return nil, fmt.Errorf("unknown catalog profile %q (available: %s): %w",
			name, strings.Join(Profiles(), ", "), slicermeta.ErrInvalidConfig)
	}
}

// Properties returns a copy of the catalog entries in order.
func (c *Catalog) Properties() []Property {
	return append([]Property(nil), c.properties...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.properties)
}

// Constants returns the constant entries in catalog order.
func (c *Catalog) Constants() []Property {
	return c.filter(KindConstant)
}

// Fields returns the field entries in catalog order.
func (c *Catalog) Fields() []Property {
	return c.filter(KindField)
}

func (c *Catalog) filter(kind Kind) []Property {
	var out []Property
	for _, p := range c.properties {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// Lookup matches a raw input line against the catalog's source keys.
//
// The first CommentPrefixLength characters of the line are skipped, and the
// remainder is tested for a literal source-key prefix in catalog order. On a
// match Lookup returns the field and the remainder, which is what the field's
// transformer receives.
func (c *Catalog) Lookup(line string) (Property, string, bool) {
	if len(line) <= slicermeta.CommentPrefixLength {
		return Property{}, "", false
	}
	content := line[slicermeta.CommentPrefixLength:]

	for _, p := range c.properties {
		if p.Kind != KindField || p.SourceKey == "" {
			continue
		}
		if strings.HasPrefix(content, p.SourceKey) {
			return p, content, true
		}
	}
	return Property{}, "", false
}

// Validate checks that every output key is emitted by exactly one entry
// and that entries are well formed.
func (c *Catalog) Validate() ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	positions := make(map[string][]int)
	for i, p := range c.properties {
		key := p.OutputKey()
		if strings.TrimSpace(key) == "" {
			result.AddError("entry %d (%s) has an empty output key", i, p.Kind)
			continue
		}
		if p.Kind == KindField && strings.TrimSpace(p.SourceKey) == "" {
			result.AddError("field %q has an empty source key", key)
		}
		positions[key] = append(positions[key], i)
	}

	keys := make([]string, 0, len(positions))
	for key := range positions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if idx := positions[key]; len(idx) > 1 {
			result.AddError("output key %q is defined %d times (entries %v)", key, len(idx), idx)
		}
	}

	return result
}

// Check runs Validate and converts failures into an error wrapping
// slicermeta.ErrCatalogInvalid.
func (c *Catalog) Check() error {
	result := c.Validate()
	if result.Valid {
		return nil
	}
	return fmt.Errorf("%s: %w", result.ErrorString(), slicermeta.ErrCatalogInvalid)
}
