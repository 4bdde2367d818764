package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/wippyai/machokit/byteorder"
	"github.com/wippyai/machokit/macho"
	"github.com/wippyai/machokit/typeinfo"
)

// writeReport prints a summary of img followed by one row per load command.
func writeReport(w io.Writer, name string, img *macho.Image, showSections bool) error {
	hdr := img.Header
	ctx := img.Context()

	bits := 32
	if hdr.Is64() {
		bits = 64
	}
	fmt.Fprintf(w, "%s: %s %s (%d-bit, %s byte order)\n", name, hdr.CPU, hdr.Type, bits, byteorder.Name(ctx.ByteOrder()))
	if img.Arch != nil {
		fmt.Fprintf(w, "  slice     %s at %#x, %s\n", img.Arch.CPU, img.Arch.Offset, humanize.IBytes(img.Arch.Size))
	}
	fmt.Fprintf(w, "  image     %s, %s\n", img.Object.Range(), humanize.IBytes(uint64(img.Object.Len())))
	fmt.Fprintf(w, "  flags     %#x\n", hdr.Flags)
	fmt.Fprintf(w, "  commands  %d (%s)\n", hdr.NCmds, humanize.IBytes(uint64(hdr.SizeOfCmds)))
	if id, ok := img.UUID(); ok {
		fmt.Fprintf(w, "  uuid      %s\n", strings.ToUpper(id.String()))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range img.Commands {
		lc := cmd.Command()
		fmt.Fprintf(tw, "[%d]\t%s\t%s\t%s\n", lc.Index, lc.Cmd, humanize.IBytes(uint64(lc.Size)), commandSummary(cmd))

		seg, ok := cmd.(*macho.Segment)
		if !ok || !showSections {
			continue
		}
		secs, err := seg.Sections()
		if err != nil {
			return fmt.Errorf("sections of %s: %w", seg.Name, err)
		}
		for _, s := range secs {
			note := ""
			if s.Partial {
				note = " (partial)"
			}
			fmt.Fprintf(tw, "\t\t\t  %s,%s %s %s%s\n", s.SegName, s.Name, s.Range(), humanize.IBytes(s.Size), note)
		}
	}
	return tw.Flush()
}

func commandSummary(cmd macho.Command) string {
	switch c := cmd.(type) {
	case *macho.Segment:
		return fmt.Sprintf("%-16s vm %s %s  file %s  %s/%s",
			c.Name, c.VMRange(), humanize.IBytes(c.VMSize), humanize.IBytes(c.FileSize), c.InitProt, c.MaxProt)
	case *macho.UUIDCommand:
		return strings.ToUpper(c.UUID.String())
	case *macho.SymtabCommand:
		return fmt.Sprintf("%s symbols, strings %s", humanize.Comma(int64(c.NSyms)), humanize.IBytes(uint64(c.StrSize)))
	default:
		return typeinfo.String(cmd)
	}
}
