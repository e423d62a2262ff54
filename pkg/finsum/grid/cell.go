// Package grid defines the Grid Accessor contract the ledger engine reads and writes through,
// plus the cell, style and range types shared by every backend.
package grid

import (
	"strconv"
	"strings"
)

// ValueKind is the underlying type of a cell value.
type ValueKind int

const (
	// ValueEmpty is a cell with no value.
	ValueEmpty ValueKind = iota
	// ValueText is a textual value.
	ValueText
	// ValueNumber is a numeric value.
	ValueNumber
	// ValueBool is a boolean value (checkbox state).
	ValueBool
	// ValuePending is a formula whose result is not cached in the grid.
	ValuePending
)

func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "bool"
	case ValuePending:
		return "pending"
	default:
		return "empty"
	}
}

// Value is a cell value together with its underlying type.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
}

// Text returns a textual value.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: ValueText, Text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{Kind: ValueNumber, Number: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// IsEmpty reports whether the value is absent.
func (v Value) IsEmpty() bool {
	return v.Kind == ValueEmpty
}

// String renders the value as it would be displayed without number formatting.
func (v Value) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

// ValidationKind is the kind of data-validation rule attached to a cell.
type ValidationKind string

const (
	ValidationCheckbox ValidationKind = "checkbox"
	ValidationList     ValidationKind = "list"
	ValidationOther    ValidationKind = "other"
)

// Validation is a data-validation rule attached to a cell.
type Validation struct {
	Kind ValidationKind
	// Values holds the allowed values of a list rule.
	Values []string
}

// Cell is one grid cell with its value, formula, presentation and annotations.
type Cell struct {
	Row        int
	Col        int
	Value      Value
	Formula    string
	Style      Style
	Note       string
	Validation *Validation
	Hyperlink  string
}

// Address returns the cell's A1 address.
func (c *Cell) Address() string {
	return CellName(c.Col, c.Row)
}

// HasContent reports whether the cell holds a value or a formula.
func (c *Cell) HasContent() bool {
	return !c.Value.IsEmpty() || c.Formula != ""
}

// HasHyperlink reports whether the cell links somewhere, either directly or through a
// HYPERLINK formula.
func (c *Cell) HasHyperlink() bool {
	return c.Hyperlink != "" || strings.Contains(strings.ToLower(c.Formula), "hyperlink(")
}

// Anchor is a drawing object (picture, shape, chart) anchored at a cell.
type Anchor struct {
	Row  int
	Col  int
	Name string
	Kind string
}
