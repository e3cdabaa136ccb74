package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/xonecas/sheet/internal/viewport"
)

// keyMap lists every grid-mode binding. The help text feeds the keys modal.
type keyMap struct {
	Quit   key.Binding
	Save   key.Binding
	Insert key.Binding
	Stats  key.Binding
	Copy   key.Binding
	Cut    key.Binding
	Paste  key.Binding
	Delete key.Binding
	Undo   key.Binding
	Help   key.Binding
	Recent key.Binding
	Find   key.Binding
	Diff   key.Binding

	Move       map[viewport.Move]key.Binding
	Ray        map[viewport.Move]key.Binding
	Complement map[viewport.Move]key.Binding
}

var arrows = []viewport.Move{viewport.Up, viewport.Down, viewport.Left, viewport.Right}

func defaultKeyMap() keyMap {
	km := keyMap{
		Quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit (twice with unsaved changes)")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Insert: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit focused cell")),
		Stats:  key.NewBinding(key.WithKeys("="), key.WithHelp("=", "statistics of selection")),
		Copy:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy selection")),
		Cut:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut selection")),
		Paste:  key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste at focus")),
		Delete: key.NewBinding(key.WithKeys("delete"), key.WithHelp("delete", "clear selection")),
		Undo:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo last change")),
		Help:   key.NewBinding(key.WithKeys("ctrl+h", "f1"), key.WithHelp("ctrl+h", "keybinds")),
		Recent: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "recent files")),
		Find:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find sheet files")),
		Diff:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "unsaved changes")),

		Move: map[viewport.Move]key.Binding{
			viewport.PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdown", "page up/down")),
			viewport.PageDown: key.NewBinding(key.WithKeys("pgdown")),
			viewport.Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home/end", "first/last column")),
			viewport.End:      key.NewBinding(key.WithKeys("end")),
		},
		Ray:        map[viewport.Move]key.Binding{},
		Complement: map[viewport.Move]key.Binding{},
	}
	for i, dir := range arrows {
		name := dir.String()
		move := key.NewBinding(key.WithKeys(name))
		ray := key.NewBinding(key.WithKeys("ctrl+" + name))
		comp := key.NewBinding(key.WithKeys("shift+" + name))
		if i == 0 {
			move.SetHelp("arrows", "move focus")
			ray.SetHelp("ctrl+arrows", "extend selection one cell")
			comp.SetHelp("shift+arrows", "select to sheet edge")
		}
		km.Move[dir] = move
		km.Ray[dir] = ray
		km.Complement[dir] = comp
	}
	return km
}

// help returns the bindings shown in the keys modal, in display order.
func (k keyMap) help() []key.Binding {
	return []key.Binding{
		k.Help, k.Quit, k.Save, k.Insert, k.Stats,
		k.Copy, k.Cut, k.Paste, k.Delete, k.Undo,
		k.Recent, k.Find, k.Diff,
		k.Move[viewport.Up], k.Move[viewport.PageUp], k.Move[viewport.Home],
		k.Ray[viewport.Up], k.Complement[viewport.Up],
	}
}

// isRay reports whether keystroke continues a ray selection.
func (k keyMap) isRay(keystroke string) bool {
	for _, b := range k.Ray {
		for _, s := range b.Keys() {
			if s == keystroke {
				return true
			}
		}
	}
	return false
}
