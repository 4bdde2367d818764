package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/machokit/macho"
	"github.com/wippyai/machokit/typeinfo"
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Print every record of a Mach-O file with its type chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := openImage(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		return writeDescriptions(cmd.OutOrStdout(), f.Image)
	},
}

// writeDescriptions prints one line per record: its type chain and its
// description.
func writeDescriptions(w io.Writer, img *macho.Image) error {
	line := func(h typeinfo.Handle, indent int) {
		fmt.Fprintf(w, "%s%s %s\n", strings.Repeat("  ", indent), typeChain(h.Descriptor()), typeinfo.String(h))
	}

	line(img.Header, 0)
	for _, cmd := range img.Commands {
		line(cmd, 1)
		seg, ok := cmd.(*macho.Segment)
		if !ok {
			continue
		}
		secs, err := seg.Sections()
		if err != nil {
			return fmt.Errorf("sections of %s: %w", seg.Name, err)
		}
		for _, s := range secs {
			line(s, 2)
		}
	}
	return nil
}

// typeChain renders a descriptor and its named ancestors, most derived
// first. Unnamed descriptors show their ID.
func typeChain(d *typeinfo.Descriptor) string {
	var parts []string
	for ; d != nil && d.ID() != typeinfo.RootID; d = d.Parent() {
		if d.Parent() != nil && d.Name() == d.Parent().Name() {
			parts = append(parts, fmt.Sprintf("#%d", d.ID()))
			continue
		}
		parts = append(parts, d.Name())
	}
	return strings.Join(parts, " < ")
}
