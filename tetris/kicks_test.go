package tetris

import (
	"errors"
	"reflect"
	"testing"
)

func TestKicks(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		from      Rotation
		direction RotateDirection
		want      []Offset
	}{
		{
			name:      "J 0>R uses the table as is",
			kind:      J,
			from:      North,
			direction: Clockwise,
			want:      []Offset{{-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
		},
		{
			name:      "J R>0 is 0>R with the opposite sign",
			kind:      J,
			from:      East,
			direction: CounterClockwise,
			want:      []Offset{{1, 0}, {1, -1}, {0, 2}, {1, 2}},
		},
		{
			name:      "T 0>L is L>0 with the opposite sign",
			kind:      T,
			from:      North,
			direction: CounterClockwise,
			want:      []Offset{{1, 0}, {1, 1}, {0, -2}, {1, -2}},
		},
		{
			name:      "I 0>R",
			kind:      I,
			from:      North,
			direction: Clockwise,
			want:      []Offset{{-2, 0}, {1, 0}, {1, 2}, {-2, -1}},
		},
		{
			name:      "I L>2",
			kind:      I,
			from:      West,
			direction: CounterClockwise,
			want:      []Offset{{1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
		},
		{
			name:      "O never kicks",
			kind:      O,
			from:      South,
			direction: CounterClockwise,
			want:      []Offset{{0, 0}},
		},
	}
	table := SRSPlus()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Kicks(tt.kind, tt.from, tt.direction); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("kicks can't modify the table", func(t *testing.T) {
		table.Kicks(I, North, Clockwise)[0] = Offset{9, 9}
		table.Kicks(T, North, Clockwise)[0] = Offset{9, 9}
		if got := table.Kicks(I, North, Clockwise)[0]; got != (Offset{-2, 0}) {
			t.Errorf("I table was modified: %v", got)
		}
		if got := table.Kicks(T, North, Clockwise)[0]; got != (Offset{-1, 0}) {
			t.Errorf("standard table was modified: %v", got)
		}
	})

	t.Run("every kind, rotation and direction has four kicks except O", func(t *testing.T) {
		for _, k := range Kinds {
			for r := North; r <= West; r++ {
				for _, d := range []RotateDirection{Clockwise, CounterClockwise} {
					want := kickCount
					if k == O {
						want = 1
					}
					if got := len(table.Kicks(k, r, d)); got != want {
						t.Errorf("%s %s %s: wanted %d kicks, got %d", k, r, d, want, got)
					}
				}
			}
		}
	})
}

func TestWallKick(t *testing.T) {
	// for this test we set the cursor in the middle of the stack to
	// allow for setting up multiple blocks in order to test all the cases.
	tests := []struct {
		name       string
		piece      Piece
		direction  RotateDirection
		blockStack []Coordinate
		want       Piece
		wantErr    error
	}{
		{
			name: "T 0>R, no kick",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . . O . . . . .
			// 10	. . . O 0 O . . . .
			piece:     Piece{Kind: T, Position: Offset{4, 10}},
			direction: Clockwise,
			want:      Piece{Kind: T, Position: Offset{4, 10}, Rotation: East},
		},
		{
			name: "T 0>R, test 2 (-1, 0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . . O . . . . .
			// 10	. . . O 0 O . . . .
			// 9	. . . . X . . . . .
			piece:      Piece{Kind: T, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{4, 9}},
			want:       Piece{Kind: T, Position: Offset{3, 10}, Rotation: East},
		},
		{
			name: "T 0>R, test 3 (-1, 1)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . . O . . . . .
			// 10	. . . O 0 O . . . .
			// 9	. . . X X . . . . .
			piece:      Piece{Kind: T, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{4, 9}, {3, 9}},
			want:       Piece{Kind: T, Position: Offset{3, 11}, Rotation: East},
		},
		{
			name: "T 0>R, test 5 (-1, -2)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . X O . . . . .
			// 10	. . . O 0 O . . . .
			// 9	. . . . X . . . . .
			piece:      Piece{Kind: T, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{4, 9}, {3, 11}},
			want:       Piece{Kind: T, Position: Offset{3, 8}, Rotation: East},
		},
		{
			name: "T 0>R, every test fails",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . X O . . . . .
			// 10	. . . O 0 O . . . .
			// 9	. . . . X . . . . .
			// 8	. . . X . . . . . .
			piece:      Piece{Kind: T, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{4, 9}, {3, 11}, {3, 8}},
			want:       Piece{Kind: T, Position: Offset{4, 10}},
			wantErr:    ErrBlocked,
		},
		{
			name: "T R>0, test 2 (1, 0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . . O . . . . .
			// 10	. . . X 0 O . . . .
			// 9	. . . . O . . . . .
			piece:      Piece{Kind: T, Position: Offset{4, 10}, Rotation: East},
			direction:  CounterClockwise,
			blockStack: []Coordinate{{3, 10}},
			want:       Piece{Kind: T, Position: Offset{5, 10}},
		},
		{
			name: "I 0>R, test 2 (-2, 0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . O 0 O O . . .
			// 8	. . . . . X . . . .
			piece:      Piece{Kind: I, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{5, 8}},
			want:       Piece{Kind: I, Position: Offset{2, 10}, Rotation: East},
		},
		{
			name: "I 0>R, test 5 (-2, -1)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 12	. . . . . . X . . .
			// 11	. . . X . . . . . .
			// 10	. . . O 0 O O . . .
			// 8	. . . . . X X . . .
			piece:      Piece{Kind: I, Position: Offset{4, 10}},
			direction:  Clockwise,
			blockStack: []Coordinate{{5, 8}, {3, 11}, {6, 8}, {6, 12}},
			want:       Piece{Kind: I, Position: Offset{2, 9}, Rotation: East},
		},
		{
			name: "I 0>L, test 2 (2, 0)",
			// .	0 1 2 3 4 5 6 7 8 9
			// 10	. . . O 0 O O . . .
			// 8	. . . . X . . . . .
			piece:      Piece{Kind: I, Position: Offset{4, 10}},
			direction:  CounterClockwise,
			blockStack: []Coordinate{{4, 8}},
			want:       Piece{Kind: I, Position: Offset{6, 10}, Rotation: West},
		},
		{
			name: "I R>0 against the left wall",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	O . . . . . . . . .
			// 10	O . . . . . . . . .
			// 9	O . . . . . . . . .
			// 8	O . . . . . . . . .
			piece:     Piece{Kind: I, Position: Offset{-1, 10}, Rotation: East},
			direction: CounterClockwise,
			want:      Piece{Kind: I, Position: Offset{1, 10}},
		},
		{
			name:      "O at the wall rotates in place",
			piece:     Piece{Kind: O, Position: Offset{8, 0}},
			direction: Clockwise,
			want:      Piece{Kind: O, Position: Offset{8, 0}, Rotation: East},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := NewEngine(NewTestRand())
			e.cursor = cursor{piece: tt.piece, ok: true}
			e.Fill(J, tt.blockStack...)

			err := e.RotateCursor(tt.direction)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("wanted error %v, got %v", tt.wantErr, err)
			}
			if got, _ := e.Cursor(); got != tt.want {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}
}

type stubKicker struct {
	kicks []Offset
	calls []string
}

func (s *stubKicker) Kicks(k Kind, from Rotation, d RotateDirection) []Offset {
	s.calls = append(s.calls, k.String()+" "+from.String()+" "+d.String())
	return s.kicks
}

func TestCustomKicker(t *testing.T) {
	tests := []struct {
		name       string
		kicks      []Offset
		blockStack []Coordinate
		want       Piece
		wantErr    error
	}{
		{
			name:  "fits without kicks",
			kicks: []Offset{{1, 0}},
			want:  Piece{Kind: T, Position: Offset{4, 10}, Rotation: East},
		},
		{
			name: "kicks are tried in order",
			// .	0 1 2 3 4 5 6 7 8 9
			// 11	. . . . O . . . . .
			// 10	. . . O 0 O . . . .
			// 9	. . . . X . . . . .
			kicks:      []Offset{{-9, 0}, {1, 0}, {-1, 0}},
			blockStack: []Coordinate{{4, 9}},
			want:       Piece{Kind: T, Position: Offset{5, 10}, Rotation: East},
		},
		{
			name:       "no kicks",
			blockStack: []Coordinate{{4, 9}},
			want:       Piece{Kind: T, Position: Offset{4, 10}},
			wantErr:    ErrBlocked,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kicker := &stubKicker{kicks: tt.kicks}
			e := NewConfigurableEngine(NewTestRand(), kicker)
			e.cursor = cursor{piece: Piece{Kind: T, Position: Offset{4, 10}}, ok: true}
			e.Fill(J, tt.blockStack...)

			err := e.RotateCursor(Clockwise)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("wanted error %v, got %v", tt.wantErr, err)
			}
			if got, _ := e.Cursor(); got != tt.want {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
			if want := []string{"T N cw"}; !reflect.DeepEqual(kicker.calls, want) {
				t.Errorf("wanted kicker calls %v, got %v", want, kicker.calls)
			}
		})
	}
}
