// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/inkpager/pkg/types"
)

const pagerHelp = "arrows page  [/] chapter  g/G first/last  q quit"

// Pager shows one framed page at a time on a terminal screen.
type Pager struct {
	screen   tcell.Screen
	renderer *Renderer
	pages    []types.Page
	title    string
	current  int
}

// NewPager returns a Pager drawing pages on an initialized screen.
func NewPager(screen tcell.Screen, layout types.Layout, pages []types.Page, title string) *Pager {
	return &Pager{
		screen:   screen,
		renderer: NewRenderer(layout),
		pages:    pages,
		title:    title,
	}
}

// Current returns the index of the page on screen.
func (p *Pager) Current() int {
	return p.current
}

// Goto moves to page index i, clamped to the document.
func (p *Pager) Goto(i int) {
	p.current = max(0, min(i, len(p.pages)-1))
}

// findChapter returns the first chapter page index from start in direction
// step, or the current index when there is none.
func (p *Pager) findChapter(start, step int) int {
	for i := start; i >= 0 && i < len(p.pages); i += step {
		if p.pages[i].Kind == types.PageChapter {
			return i
		}
	}
	return p.current
}

// HandleKey applies one key press and reports whether the pager keeps running.
func (p *Pager) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyPgDn, tcell.KeyEnter:
		p.Goto(p.current + 1)
	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyPgUp, tcell.KeyBackspace, tcell.KeyBackspace2:
		p.Goto(p.current - 1)
	case tcell.KeyHome:
		p.Goto(0)
	case tcell.KeyEnd:
		p.Goto(len(p.pages) - 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ', 'n', 'l', 'j':
			p.Goto(p.current + 1)
		case 'p', 'h', 'k':
			p.Goto(p.current - 1)
		case 'g':
			p.Goto(0)
		case 'G':
			p.Goto(len(p.pages) - 1)
		case ']':
			p.Goto(p.findChapter(p.current+1, 1))
		case '[':
			p.Goto(p.findChapter(p.current-1, -1))
		}
	}
	return true
}

// Draw paints the current page and a status line below it.
func (p *Pager) Draw() {
	p.screen.Clear()

	if len(p.pages) == 0 {
		p.drawString(0, 0, "no pages", tcell.StyleDefault)
		p.screen.Show()
		return
	}

	frame := p.renderer.Frame(p.pages[p.current], p.current+1, len(p.pages))
	for y, row := range frame {
		style := tcell.StyleDefault
		if y == 0 || y == len(frame)-1 {
			style = style.Dim(true)
		}
		p.drawString(0, y, row, style)
	}

	status := fmt.Sprintf(" %s  %s ", p.title, pagerHelp)
	p.drawString(0, len(frame)+1, status, tcell.StyleDefault.Reverse(true))
	p.screen.Show()
}

func (p *Pager) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

// Run draws and handles events until the user quits or the screen closes.
func (p *Pager) Run() error {
	p.Draw()
	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if !p.HandleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
		p.Draw()
	}
}

// Interactive opens the terminal and pages through pages until the user
// quits.
func Interactive(layout types.Layout, pages []types.Page, title string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()

	return NewPager(screen, layout, pages, title).Run()
}
