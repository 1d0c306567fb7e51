package attr

import "fmt"

// EnumType describes the variants of an enumeration. Enum values travel as
// their variant name, so the ordinal of a variant may change between versions
// without breaking the format.
type EnumType struct {
	name     string
	variants []string
	ordinals map[string]int
}

// NewEnumType creates an enumeration with the given variant names.
// The position of a name in variants is its ordinal. It panics on empty or duplicate names.
func NewEnumType(name string, variants ...string) *EnumType {
	et := &EnumType{
		name:     name,
		variants: variants,
		ordinals: make(map[string]int, len(variants)),
	}
	for i, v := range variants {
		if v == "" {
			panic(fmt.Sprintf("enum %s: empty variant name at ordinal %d", name, i))
		}
		if _, dup := et.ordinals[v]; dup {
			panic(fmt.Sprintf("enum %s: duplicate variant %s", name, v))
		}
		et.ordinals[v] = i
	}
	return et
}

// TypeName returns the name of the enumeration
func (et *EnumType) TypeName() string {
	return et.name
}

// Variants returns the variant names in ordinal order
func (et *EnumType) Variants() []string {
	return append([]string(nil), et.variants...)
}

// Name returns the variant name of an ordinal
func (et *EnumType) Name(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(et.variants) {
		return "", false
	}
	return et.variants[ordinal], true
}

// Ordinal returns the ordinal of a variant name
func (et *EnumType) Ordinal(name string) (int, bool) {
	o, ok := et.ordinals[name]
	return o, ok
}
