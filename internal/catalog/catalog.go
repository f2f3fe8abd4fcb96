package catalog

import (
	"fmt"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wirebind/mcp-bridge-go/internal/errors"
)

// Descriptor describes a single tool advertised by the server.
type Descriptor struct {
	// Name is the tool's unique identifier within the server.
	Name string

	// Description is the server-provided human-readable description.
	Description string

	// InputSchema is the JSON Schema for the tool's arguments.
	InputSchema *jsonschema.Schema
}

// Filter selects a subset of the advertised tools by name.
//
// Include and Exclude may be set independently. A name present in both is
// excluded: exclude wins, so a misconfigured overlap fails safe.
type Filter struct {
	Include []string
	Exclude []string
}

// IsZero reports whether the filter selects everything.
func (f Filter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Validate checks that every filtered name is actually advertised.
//
// A filter naming a tool the server does not provide is treated as a
// configuration mistake rather than silently ignored.
func (f Filter) Validate(available []Descriptor) error {
	names := make(map[string]struct{}, len(available))
	for _, d := range available {
		names[d.Name] = struct{}{}
	}

	for _, n := range f.Include {
		if _, ok := names[n]; !ok {
			return &errors.ConfigurationError{
				Field:   "include_tools",
				Message: fmt.Sprintf("tool %q not present in the server catalog", n),
			}
		}
	}

	for _, n := range f.Exclude {
		if _, ok := names[n]; !ok {
			return &errors.ConfigurationError{
				Field:   "exclude_tools",
				Message: fmt.Sprintf("tool %q not present in the server catalog", n),
			}
		}
	}

	return nil
}

// Apply returns the descriptors that survive the filter, preserving the
// server's advertised order.
func (f Filter) Apply(available []Descriptor) []Descriptor {
	if f.IsZero() {
		return slices.Clone(available)
	}

	include := make(map[string]struct{}, len(f.Include))
	for _, n := range f.Include {
		include[n] = struct{}{}
	}

	exclude := make(map[string]struct{}, len(f.Exclude))
	for _, n := range f.Exclude {
		exclude[n] = struct{}{}
	}

	result := make([]Descriptor, 0, len(available))

	for _, d := range available {
		if _, excluded := exclude[d.Name]; excluded {
			continue
		}

		if len(include) > 0 {
			if _, included := include[d.Name]; !included {
				continue
			}
		}

		result = append(result, d)
	}

	return result
}

// Catalog is the read-only, filtered tool catalog cached for a session.
type Catalog struct {
	descriptors []Descriptor
	byName      map[string]Descriptor
}

// New builds a catalog from the filtered descriptors.
func New(descriptors []Descriptor) *Catalog {
	byName := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}

	return &Catalog{
		descriptors: descriptors,
		byName:      byName,
	}
}

// Descriptors returns a copy of the cached descriptors.
func (c *Catalog) Descriptors() []Descriptor {
	return slices.Clone(c.descriptors)
}

// Lookup returns the descriptor for name, if cached.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	d, ok := c.byName[name]

	return d, ok
}

// Names returns the sorted tool names, used in UnknownToolError messages.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.descriptors))
	for _, d := range c.descriptors {
		names = append(names, d.Name)
	}

	slices.Sort(names)

	return names
}
