package backend

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	mu       sync.Mutex
	penRow   int
	penCol   int
	penStyle tcell.Style
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.penStyle = tcell.StyleDefault
	t.events = make(chan tcell.Event, 16)
	t.quit = make(chan struct{})
	go t.screen.ChannelEvents(t.events, t.quit)
	return nil
}

func (t *Terminal) Shutdown() {
	close(t.quit)
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) MoveTo(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.penRow = row
	t.penCol = col
}

func (t *Terminal) Write(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, _ := t.screen.Size()
	for i := 0; i < len(text); i++ {
		ch := rune(text[i])
		if ch < 32 || ch == 127 {
			ch = ' '
		}
		if t.penCol < width {
			t.screen.SetContent(t.penCol, t.penRow, ch, nil, t.penStyle)
		}
		t.penCol++
	}
}

func (t *Terminal) SetStyle(style Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.penStyle = convertStyle(style)
}

func (t *Terminal) ResetStyle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.penStyle = tcell.StyleDefault
}

func (t *Terminal) ShowCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(t.penCol, t.penRow)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent(timeout time.Duration) (Event, bool) {
	var timeoutC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}
	select {
	case ev, ok := <-t.events:
		if !ok {
			return Event{}, false
		}
		return convertEvent(ev), true
	case <-timeoutC:
		return Event{}, false
	}
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s Style) tcell.Style {
	style := tcell.StyleDefault
	switch {
	case s.Fg.IsPalette():
		style = style.Foreground(tcell.PaletteColor(int(s.Fg.Index())))
	case !s.Fg.IsDefault():
		r, g, b := s.Fg.RGB()
		style = style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	if s.Reverse {
		style = style.Reverse(true)
	}
	return style
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey converts tcell key to our Key type.
func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyPgUp:
		return KeyPageUp
	case tcell.KeyPgDn:
		return KeyPageDown
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	default:
		return KeyNone
	}
}
