//go:build windows

package rpc

import (
	"context"
	"net"

	winio "github.com/Microsoft/go-winio"
)

func dialIPC(ctx context.Context) (net.Conn, error) {
	return winio.DialPipeContext(ctx, `\\.\pipe\`+pipeName)
}
