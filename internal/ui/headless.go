package ui

import (
	"fmt"
	"io"

	"github.com/jose-valero/vry/internal/domain"
	"github.com/jose-valero/vry/internal/infra/config"
)

// secuencia ANSI: cursor al inicio y borrar pantalla
const clearScreen = "\033[H\033[2J"

// PrintSnapshot escribe estado y tabla en modo --headless.
// Con flags.pre_cls limpia la terminal antes de cada tabla.
func PrintSnapshot(w io.Writer, snap domain.Snapshot, cfg config.Config) {
	if cfg.FeatureFlag("pre_cls") {
		fmt.Fprint(w, clearScreen)
	}
	fmt.Fprintln(w, statusLine(snap, cfg))
	if len(snap.Rows) == 0 {
		return
	}
	st := NewStyles(ThemeFor(cfg.Theme, cfg.CustomTheme))
	fmt.Fprintln(w, RenderTable(snap, cfg, st, Options(cfg, false)))
}
