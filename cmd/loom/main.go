// Package main is the entry point for the loom demo editor: a minimal
// terminal front-end over the text engine. It opens one file (or an
// empty document), supports typing, deleting, cursor movement, undo and
// redo, and saving. Everything interesting happens in internal/engine;
// this binary is presentation glue.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/loomtext/loom/internal/engine"
)

func main() {
	os.Exit(run())
}

func run() int {
	tabWidth := flag.Int("tabwidth", 4, "Tab width for tab/space conversions")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Loom - minimal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: loom [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S  save    Ctrl+Z  undo    Ctrl+Y  redo    Ctrl+Q  quit\n")
	}
	flag.Parse()

	var path string
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	eng := engine.New(engine.WithTabWidth(*tabWidth))
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: open %s: %v\n", path, err)
			return 1
		}
		eng.LoadText(string(data))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	ed := &editor{
		screen: screen,
		eng:    eng,
		path:   path,
	}

	// The status bar shows what kind of change happened last.
	eng.Subscribe(func(ev engine.Event) {
		ed.lastChange = ev.Kind.String()
	})

	ed.loop()
	return 0
}

type editor struct {
	screen tcell.Screen
	eng    *engine.Engine
	path   string

	topLine    int // first visible line, 0-indexed
	status     string
	lastChange string
}

func (ed *editor) loop() {
	ed.render()
	for {
		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
		case *tcell.EventKey:
			if !ed.handleKey(ev) {
				return
			}
		}
		ed.render()
	}
}

// handleKey dispatches one keypress. Returns false on quit.
func (ed *editor) handleKey(ev *tcell.EventKey) bool {
	ed.status = ""

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyEscape:
		return false
	case tcell.KeyCtrlS:
		ed.save()
	case tcell.KeyCtrlZ:
		if !ed.eng.Undo() {
			ed.status = "Nothing to undo"
		}
	case tcell.KeyCtrlY:
		if !ed.eng.Redo() {
			ed.status = "Nothing to redo"
		}
	case tcell.KeyCtrlU:
		ed.eng.TransformToUppercase()
	case tcell.KeyCtrlL:
		ed.eng.TransformToLowercase()
	case tcell.KeyLeft:
		ed.eng.SetCursorPosition(ed.eng.CursorPosition() - 1)
	case tcell.KeyRight:
		ed.eng.SetCursorPosition(ed.eng.CursorPosition() + 1)
	case tcell.KeyUp:
		ed.moveVertical(-1)
	case tcell.KeyDown:
		ed.moveVertical(1)
	case tcell.KeyHome:
		ed.eng.SetCursorPosition(ed.lineStartOffset(ed.eng.CurrentLine() - 1))
	case tcell.KeyEnd:
		line := ed.eng.CurrentLine() - 1
		ed.eng.SetCursorPosition(ed.lineStartOffset(line) + uniseg.GraphemeClusterCount(ed.lines()[line]))
	case tcell.KeyEnter:
		ed.eng.Insert(ed.eng.LineEnding().Sequence())
	case tcell.KeyTab:
		ed.eng.Insert("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ed.eng.DeleteBackward()
	case tcell.KeyDelete:
		ed.eng.DeleteForward()
	case tcell.KeyRune:
		ed.eng.Insert(string(ev.Rune()))
	}
	return true
}

func (ed *editor) save() {
	if ed.path == "" {
		ed.status = "No file name"
		return
	}
	if err := os.WriteFile(ed.path, []byte(ed.eng.Text()), 0o644); err != nil {
		ed.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	ed.eng.MarkSaved()
	ed.status = fmt.Sprintf("Saved %s", ed.path)
}

// lines splits the document for display. Any line break style splits.
func (ed *editor) lines() []string {
	text := ed.eng.Text()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// lineStartOffset returns the grapheme offset of the start of the given
// 0-indexed line. Every line break is one grapheme cluster, CRLF
// included.
func (ed *editor) lineStartOffset(line int) int {
	offset := 0
	for i, l := range ed.lines() {
		if i == line {
			break
		}
		offset += uniseg.GraphemeClusterCount(l) + 1
	}
	return offset
}

func (ed *editor) moveVertical(delta int) {
	lines := ed.lines()
	line := ed.eng.CurrentLine() - 1 + delta
	if line < 0 || line >= len(lines) {
		return
	}

	col := ed.eng.CurrentColumn() - 1
	if n := uniseg.GraphemeClusterCount(lines[line]); col > n {
		col = n
	}
	ed.eng.SetCursorPosition(ed.lineStartOffset(line) + col)
}

func (ed *editor) render() {
	ed.screen.Clear()
	width, height := ed.screen.Size()
	if height < 2 {
		ed.screen.Show()
		return
	}
	textHeight := height - 1

	// Keep the cursor in view.
	curLine := ed.eng.CurrentLine() - 1
	if curLine < ed.topLine {
		ed.topLine = curLine
	}
	if curLine >= ed.topLine+textHeight {
		ed.topLine = curLine - textHeight + 1
	}

	lines := ed.lines()
	style := tcell.StyleDefault
	for row := 0; row < textHeight; row++ {
		idx := ed.topLine + row
		if idx >= len(lines) {
			break
		}
		drawString(ed.screen, 0, row, width, lines[idx], style)
	}

	ed.drawStatusBar(width, height-1)
	ed.screen.ShowCursor(ed.cursorScreenX(lines, curLine), curLine-ed.topLine)
	ed.screen.Show()
}

// cursorScreenX converts the cursor column to a display column,
// accounting for wide clusters.
func (ed *editor) cursorScreenX(lines []string, line int) int {
	if line < 0 || line >= len(lines) {
		return 0
	}
	col := ed.eng.CurrentColumn() - 1
	x := 0
	rest := lines[line]
	state := -1
	var cluster string
	var w int
	for i := 0; i < col && len(rest) > 0; i++ {
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if cluster == "\t" {
			x += 4 - x%4
		} else {
			x += w
		}
	}
	return x
}

func (ed *editor) drawStatusBar(width, y int) {
	style := tcell.StyleDefault.Reverse(true)

	name := ed.path
	if name == "" {
		name = "[No Name]"
	}
	modified := ""
	if ed.eng.IsModified() {
		modified = " [+]"
	}
	left := fmt.Sprintf(" %s%s", name, modified)
	if ed.status != "" {
		left += "  " + ed.status
	}
	right := fmt.Sprintf("%s  %d:%d ", ed.eng.LineEnding(), ed.eng.CurrentLine(), ed.eng.CurrentColumn())
	if ed.lastChange != "" {
		right = ed.lastChange + "  " + right
	}

	pad := width - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	if pad < 1 {
		pad = 1
	}
	drawString(ed.screen, 0, y, width, left+strings.Repeat(" ", pad)+right, style)
}

// drawString renders s starting at (x, y), one grapheme cluster per
// call to SetContent so combining marks stay attached.
func drawString(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) {
	state := -1
	var cluster string
	var w int
	for len(text) > 0 && x < maxX {
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		if cluster == "\t" {
			x += 4 - x%4
			continue
		}
		runes := []rune(cluster)
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}
