package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var fixtureUUID = uuid.MustParse("0b7e2c4d-1a2b-4c3d-8e9f-a0b1c2d3e4f5")

// fixture returns a 4 KiB little-endian x86_64 executable with one __TEXT
// segment holding __text, and an LC_UUID.
func fixture() []byte {
	le := binary.LittleEndian
	name := func(s string) []byte {
		b := make([]byte, 16)
		copy(b, s)
		return b
	}

	b := le.AppendUint32(nil, 0xfeedfacf)
	b = le.AppendUint32(b, 0x01000007)
	b = le.AppendUint32(b, 3)
	b = le.AppendUint32(b, 2)
	b = le.AppendUint32(b, 2)
	b = le.AppendUint32(b, 72+80+24)
	b = le.AppendUint32(b, 0x200085)
	b = le.AppendUint32(b, 0)

	b = le.AppendUint32(b, 0x19)
	b = le.AppendUint32(b, 72+80)
	b = append(b, name("__TEXT")...)
	b = le.AppendUint64(b, 0x100000000)
	b = le.AppendUint64(b, 0x1000)
	b = le.AppendUint64(b, 0)
	b = le.AppendUint64(b, 0x1000)
	b = le.AppendUint32(b, 5)
	b = le.AppendUint32(b, 5)
	b = le.AppendUint32(b, 1)
	b = le.AppendUint32(b, 0)

	b = append(b, name("__text")...)
	b = append(b, name("__TEXT")...)
	b = le.AppendUint64(b, 0x100000400)
	b = le.AppendUint64(b, 0x20)
	b = le.AppendUint32(b, 0x400)
	b = le.AppendUint32(b, 4)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, 0x80000400)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, 0)
	b = le.AppendUint32(b, 0)

	b = le.AppendUint32(b, 0x1b)
	b = le.AppendUint32(b, 24)
	b = append(b, fixtureUUID[:]...)

	return append(b, make([]byte, 0x1000-len(b))...)
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.out")
	require.NoError(t, os.WriteFile(path, fixture(), 0o644))
	return path
}
