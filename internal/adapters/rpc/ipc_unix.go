//go:build !windows

package rpc

import (
	"context"
	"net"
	"os"
	"path/filepath"
)

func socketDir() string {
	for _, k := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "/tmp"
}

func dialIPC(ctx context.Context) (net.Conn, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", filepath.Join(socketDir(), pipeName))
}
