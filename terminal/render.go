package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"tetris/tetris"
	"text/template"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos    = "\033[H"        // Reset cursor position to 0,0
	clearScreen = "\033[2J\033[H" // Clears the screen and resets the cursor position

	emptyCell = "  "
	ghostCell = "[]"
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Color]string{
	tetris.Cyan:   Cyan,
	tetris.Blue:   Blue,
	tetris.Orange: Orange,
	tetris.Yellow: Yellow,
	tetris.Green:  Green,
	tetris.Red:    Red,
	tetris.Purple: Magenta,
}

func cell(c tetris.Color) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", colorMap[c])
}

type templateData struct {
	Engine  *tetris.Engine
	NoGhost bool
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData
}

func newRender(w io.Writer, l *slog.Logger, noGhost bool) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:       w,
		logger:       l,
		template:     tmp,
		templateData: &templateData{NoGhost: noGhost},
	}, nil
}

type message []string

func defaultLobby() message {
	return message{
		"|      Welcome to Terminal Tetris      |",
		"|                                      |",
		"|           (p)lay   (q)uit            |",
	}
}

func gameOver(lines int) message {
	return message{
		"|             Game Over :)             |",
		fmt.Sprintf("|%s|", center(fmt.Sprintf("%d lines", lines), 38)),
		"|           (p)lay   (q)uit            |",
	}
}

func center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// lobby draws a message box on top of the last rendered game.
func (r *render) lobby(m message) {
	fmt.Fprint(r.writer, "\033[10;2H+--------------------------------------+")
	for i, line := range m {
		fmt.Fprintf(r.writer, "\033[%d;2H%s", 11+i, line)
	}
	fmt.Fprintf(r.writer, "\033[%d;2H+--------------------------------------+", 11+len(m))
}

func (r *render) game(e *tetris.Engine) {
	r.templateData.Engine = e
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template in game()", slog.String("error", err.Error()))
	}
}

func (r *render) reset() {
	fmt.Fprint(r.writer, clearScreen)
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack": stack,
		"panel": panel,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Terminal Tetris", "\033[1mTerminal Tetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

// stack renders the matrix, the ghost and the cursor, top row first.
func stack(t *templateData) [tetris.Height][tetris.Width]string {
	rendered := [tetris.Height][tetris.Width]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = emptyCell
		}
	}
	if t == nil || t.Engine == nil {
		return rendered
	}

	// the range over function in the template can only range from 0 upwards
	// so the rows are flipped here: row 0 of the matrix is the last one.
	for c, v := range t.Engine.Cells() {
		if v != tetris.Empty {
			rendered[tetris.Height-1-c.Y][c.X] = cell(v)
		}
	}

	draw := func(p tetris.Piece, out string) {
		cells, ok := p.Cells()
		if !ok {
			return
		}
		for _, c := range cells {
			if tetris.OnMatrix(c) {
				rendered[tetris.Height-1-c.Y][c.X] = out
			}
		}
	}
	if ghost, ok := t.Engine.Ghost(); ok && !t.NoGhost {
		draw(ghost, ghostCell)
	}
	if cur, ok := t.Engine.Cursor(); ok {
		draw(cur, cell(cur.Color()))
	}
	return rendered
}

// preview renders a kind in a 4x2 box.
func preview(k tetris.Kind) [2]string {
	var box [2][4]string
	for y := range box {
		for x := range box[y] {
			box[y][x] = emptyCell
		}
	}
	for _, o := range k.Shape() {
		box[1-o.Y][o.X+1] = cell(k.Color())
	}
	return [2]string{strings.Join(box[0][:], ""), strings.Join(box[1][:], "")}
}

// panel is the column at the right of the stack, one entry per stack row.
func panel(t *templateData) [tetris.Height]string {
	var rendered [tetris.Height]string
	if t == nil || t.Engine == nil {
		return rendered
	}
	e := t.Engine
	next := preview(e.Next())
	rendered[0] = "  Next"
	rendered[1] = "  " + next[0]
	rendered[2] = "  " + next[1]
	rendered[4] = "  Hold"
	if k, ok := e.Held(); ok {
		held := preview(k)
		rendered[5] = "  " + held[0]
		rendered[6] = "  " + held[1]
	}
	rendered[8] = fmt.Sprintf("  Level: %d", e.Level())
	rendered[9] = fmt.Sprintf("  Lines: %d", e.Lines())
	return rendered
}
