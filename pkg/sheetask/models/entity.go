package models

import (
	"encoding/json"
	"fmt"
)

// EntityType is the namespace a mention resolved into.
type EntityType int

const (
	// EntitySheet is a whole sheet tab.
	EntitySheet EntityType = iota + 1
	// EntityNamedRange is a spreadsheet named range.
	EntityNamedRange
	// EntityTable is a spreadsheet table.
	EntityTable
)

// EntityTypes lists every entity type in default resolution precedence.
var EntityTypes = []EntityType{EntityNamedRange, EntityTable, EntitySheet}

// String returns the wire name of the type.
func (t EntityType) String() string {
	switch t {
	case EntitySheet:
		return "sheet"
	case EntityNamedRange:
		return "namedRange"
	case EntityTable:
		return "table"
	default:
		return fmt.Sprintf("EntityType(%d)", int(t))
	}
}

// Label returns the short human label used for context chips.
func (t EntityType) Label() string {
	switch t {
	case EntitySheet:
		return "Sheet"
	case EntityNamedRange:
		return "Range"
	case EntityTable:
		return "Table"
	default:
		return t.String()
	}
}

// ParseEntityType converts a wire name into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	switch s {
	case "sheet":
		return EntitySheet, nil
	case "namedRange":
		return EntityNamedRange, nil
	case "table":
		return EntityTable, nil
	}
	return 0, fmt.Errorf("unknown entity type %q", s)
}

// MarshalJSON encodes the type as its wire name.
func (t EntityType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire name.
func (t *EntityType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseEntityType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ContextEntity is a mention resolved against the spreadsheet metadata.
type ContextEntity struct {
	// Raw is the literal matched token, quotes included (e.g., @"Sheet 1").
	Raw string `json:"raw"`
	// Name is the canonical name of the resolved entity.
	Name string `json:"name"`
	// Type is the namespace the mention resolved into.
	Type EntityType `json:"type"`
	// Range is the A1 address to fetch for this entity.
	Range string `json:"range"`
}

// ResolvedContext is a ContextEntity with its fetched cell values attached.
type ResolvedContext struct {
	ContextEntity
	// Data holds the cell values row-major; row 0 is the header row.
	Data [][]string `json:"data"`
}
