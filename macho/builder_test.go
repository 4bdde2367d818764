package macho

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/wippyai/machokit/byteorder"
)

// imageBuilder assembles a synthetic Mach-O image for tests.
type imageBuilder struct {
	order   binary.AppendByteOrder
	wide    bool
	cpu     CPU
	ftype   FileType
	flags   uint32
	cmds    [][]byte
	patches map[int][]byte
	ncmds   int // overrides the real count when non-zero
}

type testSection struct {
	name   string
	seg    string
	addr   uint64
	size   uint64
	offset uint32
	align  uint32
	flags  uint32
}

func newBuilder(order binary.AppendByteOrder, wide bool) *imageBuilder {
	cpu := CPUX86
	if wide {
		cpu = CPUX86_64
	}
	return &imageBuilder{
		order:   order,
		wide:    wide,
		cpu:     cpu,
		ftype:   TypeExecute,
		patches: map[int][]byte{},
	}
}

func name16(s string) []byte {
	b := make([]byte, 16)
	copy(b, s)
	return b
}

func (b *imageBuilder) word(buf []byte, v uint64) []byte {
	if b.wide {
		return b.order.AppendUint64(buf, v)
	}
	return b.order.AppendUint32(buf, uint32(v))
}

func (b *imageBuilder) headerSize() int {
	if b.wide {
		return headerSize64
	}
	return headerSize32
}

func (b *imageBuilder) sizeOfCmds() int {
	n := 0
	for _, c := range b.cmds {
		n += len(c)
	}
	return n
}

// raw appends a command with an explicit cmdsize and a body padded or
// truncated to fit it.
func (b *imageBuilder) raw(cmd LoadCmd, size uint32, body []byte) *imageBuilder {
	buf := b.order.AppendUint32(nil, uint32(cmd))
	buf = b.order.AppendUint32(buf, size)
	buf = append(buf, body...)
	if int(size) > len(buf) {
		buf = append(buf, make([]byte, int(size)-len(buf))...)
	}
	if int(size) >= loadCommandMinSize && int(size) < len(buf) {
		buf = buf[:size]
	}
	b.cmds = append(b.cmds, buf)
	return b
}

func (b *imageBuilder) segment(name string, vmaddr, vmsize, fileoff, filesize uint64, sects ...testSection) *imageBuilder {
	cmd, hdr, sec := LoadCmdSegment, segmentSize32, sectionSize32
	if b.wide {
		cmd, hdr, sec = LoadCmdSegment64, segmentSize64, sectionSize64
	}
	size := uint32(hdr + sec*len(sects))

	body := name16(name)
	body = b.word(body, vmaddr)
	body = b.word(body, vmsize)
	body = b.word(body, fileoff)
	body = b.word(body, filesize)
	body = b.order.AppendUint32(body, uint32(ProtRead|ProtExecute))
	body = b.order.AppendUint32(body, uint32(ProtRead|ProtExecute))
	body = b.order.AppendUint32(body, uint32(len(sects)))
	body = b.order.AppendUint32(body, 0)
	for _, s := range sects {
		body = append(body, name16(s.name)...)
		body = append(body, name16(s.seg)...)
		body = b.word(body, s.addr)
		body = b.word(body, s.size)
		body = b.order.AppendUint32(body, s.offset)
		body = b.order.AppendUint32(body, s.align)
		body = b.order.AppendUint32(body, 0)
		body = b.order.AppendUint32(body, 0)
		body = b.order.AppendUint32(body, s.flags)
		body = b.order.AppendUint32(body, 0)
		body = b.order.AppendUint32(body, 0)
		if b.wide {
			body = b.order.AppendUint32(body, 0)
		}
	}
	return b.raw(cmd, size, body)
}

func (b *imageBuilder) uuid(id uuid.UUID) *imageBuilder {
	return b.raw(LoadCmdUUID, uuidCommandSize, id[:])
}

func (b *imageBuilder) symtab(symoff, nsyms, stroff, strsize uint32) *imageBuilder {
	body := b.order.AppendUint32(nil, symoff)
	body = b.order.AppendUint32(body, nsyms)
	body = b.order.AppendUint32(body, stroff)
	body = b.order.AppendUint32(body, strsize)
	return b.raw(LoadCmdSymtab, symtabCommandSize, body)
}

// at places data at a file offset when the image is built.
func (b *imageBuilder) at(off int, data []byte) *imageBuilder {
	b.patches[off] = data
	return b
}

// build lays out header, commands and patches in an image of at least size
// bytes.
func (b *imageBuilder) build(size int) []byte {
	magic := byteorder.MagicThin32
	if b.wide {
		magic = byteorder.MagicThin64
	}
	ncmds := len(b.cmds)
	if b.ncmds != 0 {
		ncmds = b.ncmds
	}

	out := b.order.AppendUint32(nil, magic)
	out = b.order.AppendUint32(out, uint32(b.cpu))
	out = b.order.AppendUint32(out, 3)
	out = b.order.AppendUint32(out, uint32(b.ftype))
	out = b.order.AppendUint32(out, uint32(ncmds))
	out = b.order.AppendUint32(out, uint32(b.sizeOfCmds()))
	out = b.order.AppendUint32(out, b.flags)
	if b.wide {
		out = b.order.AppendUint32(out, 0)
	}
	for _, c := range b.cmds {
		out = append(out, c...)
	}

	for off, data := range b.patches {
		if end := off + len(data); end > size {
			size = end
		}
	}
	if len(out) < size {
		out = append(out, make([]byte, size-len(out))...)
	}
	for off, data := range b.patches {
		copy(out[off:], data)
	}
	return out
}

// fatImage wraps thin slices in a big-endian fat_header.
func fatImage(slices map[CPU][]byte, order []CPU, align int) []byte {
	be := binary.BigEndian
	out := be.AppendUint32(nil, byteorder.MagicFat32)
	out = be.AppendUint32(out, uint32(len(order)))

	offset := fatHeaderSize + fatArchSize32*len(order)
	offset = (offset + align - 1) / align * align
	var body []byte
	for _, cpu := range order {
		data := slices[cpu]
		out = be.AppendUint32(out, uint32(cpu))
		out = be.AppendUint32(out, 0)
		out = be.AppendUint32(out, uint32(offset+len(body)))
		out = be.AppendUint32(out, uint32(len(data)))
		out = be.AppendUint32(out, 0)
		body = append(body, data...)
		if pad := len(body) % align; pad != 0 {
			body = append(body, make([]byte, align-pad)...)
		}
	}
	out = append(out, make([]byte, offset-len(out))...)
	return append(out, body...)
}
