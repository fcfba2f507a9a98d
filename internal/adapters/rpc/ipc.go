package rpc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

const (
	opHandshake = 0
	opFrame     = 1
	opClose     = 2

	pipeName = "discord-ipc-0"
)

// writeFrame: header little-endian (op, len) y luego el JSON.
func writeFrame(w io.Writer, op int32, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	buf := make([]byte, 8+len(b))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(op))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(b)))
	copy(buf[8:], b)
	_, err = w.Write(buf)
	return err
}

func readFrame(r io.Reader) (int32, []byte, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	op := int32(binary.LittleEndian.Uint32(hdr[0:4]))
	n := binary.LittleEndian.Uint32(hdr[4:8])
	if n > 1<<20 {
		return 0, nil, fmt.Errorf("rpc frame too large: %d", n)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, nil, err
	}
	return op, body, nil
}
