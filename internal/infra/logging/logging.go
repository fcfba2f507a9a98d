package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Verbosity 0 desactiva, 1 errores, 2 info, 3 debug.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.Disabled
	case verbosity == 1:
		return zerolog.ErrorLevel
	case verbosity == 2:
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// Setup deja el logger global escribiendo en out con ConsoleWriter.
func Setup(out io.Writer, verbosity int, color bool) {
	zerolog.SetGlobalLevel(Level(verbosity))
	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: "15:04:05",
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

// SetupStderr es el modo headless.
func SetupStderr(verbosity int) {
	Setup(os.Stderr, verbosity, true)
}

func SetVerbosity(verbosity int) {
	zerolog.SetGlobalLevel(Level(verbosity))
}

// Ring guarda las últimas líneas para el panel de consola.
type Ring struct {
	mu    sync.Mutex
	lines []string
	next  int
	full  bool
	part  strings.Builder
}

func NewRing(size int) *Ring {
	if size <= 0 {
		size = 200
	}
	return &Ring{lines: make([]string, size)}
}

func (r *Ring) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.part.Write(p)
	buf := r.part.String()
	for {
		i := strings.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		r.push(buf[:i])
		buf = buf[i+1:]
	}
	r.part.Reset()
	r.part.WriteString(buf)
	return len(p), nil
}

func (r *Ring) push(line string) {
	r.lines[r.next] = line
	r.next = (r.next + 1) % len(r.lines)
	if r.next == 0 {
		r.full = true
	}
}

// Lines devuelve las líneas en orden, la más vieja primero.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]string(nil), r.lines[:r.next]...)
	}
	out := make([]string, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	return append(out, r.lines[:r.next]...)
}

// Tail devuelve hasta n líneas finales.
func (r *Ring) Tail(n int) []string {
	all := r.Lines()
	if n >= len(all) {
		return all
	}
	return all[len(all)-n:]
}
