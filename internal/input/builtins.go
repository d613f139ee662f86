package input

import (
	"github.com/cleichner/rotide/internal/dispatcher/handlers/command"
	"github.com/cleichner/rotide/internal/dispatcher/handlers/cursor"
	hmode "github.com/cleichner/rotide/internal/dispatcher/handlers/mode"
	"github.com/cleichner/rotide/internal/input/keymap"
)

// installBuiltins registers the built-in actions, the default keymap and
// the built-in commands through the same API scripts use.
func (h *Handler) installBuiltins() {
	h.RegisterActions(hmode.NewHandler().Actions())
	h.RegisterActions(cursor.NewHandler().Actions())

	if err := h.ApplyKeymap(keymap.Default()); err != nil && h.logger != nil {
		h.logger.Warn("default keymap: %v", err)
	}
	for _, cmd := range command.NewHandler(h.registry).Commands() {
		_, _ = h.OnCommand(cmd)
	}
}
