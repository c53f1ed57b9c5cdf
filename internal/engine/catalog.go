// Package engine implements a headless falling-block puzzle simulation.
// It tracks the board, the active piece, the next-queue and hold slot,
// scoring and levels, and reports every state change through named events.
// It has no rendering, input or persistence of its own.
package engine

import (
	"fmt"
	"sort"
)

// Cell is a label stored in board and shape cells: a piece identifier or Empty.
type Cell string

// Empty is the label of an unoccupied cell.
const Empty Cell = ""

// Shape is a rectangular grid of cells, row-major with row 0 on top.
type Shape [][]Cell

// Catalog maps piece identifiers to their spawn orientation.
type Catalog map[Cell]Shape

// DefaultCatalog returns the seven standard tetrominoes.
func DefaultCatalog() Catalog {
	return Catalog{
		"I": {
			{"", "", "", ""},
			{"I", "I", "I", "I"},
			{"", "", "", ""},
			{"", "", "", ""},
		},
		"J": {
			{"J", "", ""},
			{"J", "J", "J"},
			{"", "", ""},
		},
		"L": {
			{"", "", "L"},
			{"L", "L", "L"},
			{"", "", ""},
		},
		"O": {
			{"O", "O"},
			{"O", "O"},
		},
		"S": {
			{"", "S", "S"},
			{"S", "S", ""},
			{"", "", ""},
		},
		"T": {
			{"", "T", ""},
			{"T", "T", "T"},
			{"", "", ""},
		},
		"Z": {
			{"Z", "Z", ""},
			{"", "Z", "Z"},
			{"", "", ""},
		},
	}
}

// Types returns the catalog identifiers in sorted order.
// A stable order keeps seeded piece sequences reproducible.
func (c Catalog) Types() []Cell {
	types := make([]Cell, 0, len(c))
	for t := range c {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Piece returns a fresh instance of the given type.
// The shape is a deep copy, so rotating it never touches the catalog.
func (c Catalog) Piece(t Cell) (Piece, bool) {
	shape, ok := c[t]
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: t, Shape: shape.Clone()}, true
}

// Validate checks that every shape is non-empty and rectangular and that
// every non-empty cell carries its own piece identifier.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	for _, t := range c.Types() {
		if t == Empty {
			return fmt.Errorf("catalog: piece identifier must not be empty")
		}
		shape := c[t]
		if len(shape) == 0 || len(shape[0]) == 0 {
			return fmt.Errorf("catalog: piece %q has an empty shape", t)
		}
		filled := 0
		for y, row := range shape {
			if len(row) != len(shape[0]) {
				return fmt.Errorf("catalog: piece %q row %d has %d cells, want %d", t, y, len(row), len(shape[0]))
			}
			for x, cell := range row {
				if cell == Empty {
					continue
				}
				if cell != t {
					return fmt.Errorf("catalog: piece %q has foreign label %q at (%d, %d)", t, cell, x, y)
				}
				filled++
			}
		}
		if filled == 0 {
			return fmt.Errorf("catalog: piece %q has no filled cells", t)
		}
	}
	return nil
}
