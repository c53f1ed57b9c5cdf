package engine

// Direction selects a horizontal move or a rotation sense.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return -d
}

// Piece is a piece instance: its type and its current orientation.
type Piece struct {
	Type  Cell
	Shape Shape
}

// IsZero reports whether p is the empty placeholder piece.
func (p Piece) IsZero() bool {
	return p.Type == Empty && len(p.Shape) == 0
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Width returns the number of columns in the shape.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Equal reports whether two shapes hold the same cells.
func (s Shape) Equal(other Shape) bool {
	return Board(s).Equal(Board(other))
}

// Rotate returns shape turned by 90 degrees. The matrix is transposed, then
// each row is reversed for Right (clockwise) or the row order is reversed for
// Left (counter-clockwise). The input is never modified.
func Rotate(shape Shape, dir Direction) Shape {
	if len(shape) == 0 {
		return Shape{}
	}
	rows, cols := len(shape), len(shape[0])

	out := make(Shape, cols)
	for i := range out {
		out[i] = make([]Cell, rows)
		for j := range out[i] {
			out[i][j] = shape[j][i]
		}
	}

	if dir == Right {
		for _, row := range out {
			for l, r := 0, len(row)-1; l < r; l, r = l+1, r-1 {
				row[l], row[r] = row[r], row[l]
			}
		}
		return out
	}

	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}
