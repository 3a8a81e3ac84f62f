package actor

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v2"

	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/vfs"
)

// Format selects Printer's output encoding.
type Format uint8

const (
	// FormatText renders a human-readable report.
	FormatText Format = iota
	// FormatYAML renders a machine-readable report via gopkg.in/yaml.v2.
	FormatYAML
)

// printedGroup is the YAML-serializable shape of one duplicate group.
type printedGroup struct {
	Keeper   string   `yaml:"keeper"`
	Size     uint64   `yaml:"size_bytes"`
	Removed  []string `yaml:"would_remove"`
}

// Printer reports each group's keeper and would-be-removed paths to an
// io.Writer without touching the filesystem. The filesystem is guaranteed
// byte-identical before and after a Printer run. Color is gated by the
// package-level color.NoColor flag, the same switch logging and cmdsupport
// honor, rather than a field of its own.
type Printer struct {
	Selector Selector
	Writer   io.Writer
	Format   Format
}

// NewPrinter constructs a Printer writing in the given format to w.
func NewPrinter(selector Selector, w io.Writer, format Format) *Printer {
	return &Printer{Selector: selector, Writer: w, Format: format}
}

// Act implements Actor.Act.
func (p *Printer) Act(fs vfs.VFS, groups [][]*catalog.Duplicates) Report {
	if p.Format == FormatYAML {
		return p.actYAML(fs, groups)
	}
	return p.actText(fs, groups)
}

func (p *Printer) actText(fs vfs.VFS, groups [][]*catalog.Duplicates) Report {
	var report Report
	for _, group := range groups {
		report.merge(p.actTextGroup(fs, group))
	}
	return report
}

// actTextGroup renders one duplicate group and returns its own Report so the
// caller can fold it into the run-wide total with Report.merge.
func (p *Printer) actTextGroup(fs vfs.VFS, group []*catalog.Duplicates) Report {
	keeper := p.Selector.Select(fs, group)
	removed := nonKeeperPaths(group, keeper)
	size := groupSize(fs, keeper)

	keeperLine := color.GreenString(fmt.Sprintf("keeping %s (%s)", keeper.Paths[0], humanize.Bytes(size)))
	fmt.Fprintln(p.Writer, keeperLine)
	for _, path := range removed {
		fmt.Fprintln(p.Writer, color.YellowString("  would remove %s", path))
	}

	return Report{GroupsProcessed: 1, PathsRemoved: len(removed)}
}

func (p *Printer) actYAML(fs vfs.VFS, groups [][]*catalog.Duplicates) Report {
	var report Report
	printed := make([]printedGroup, 0, len(groups))
	for _, group := range groups {
		keeper := p.Selector.Select(fs, group)
		removed := nonKeeperPaths(group, keeper)
		printed = append(printed, printedGroup{
			Keeper:  keeper.Paths[0],
			Size:    groupSize(fs, keeper),
			Removed: removed,
		})
		report.merge(Report{GroupsProcessed: 1, PathsRemoved: len(removed)})
	}
	encoded, err := yaml.Marshal(printed)
	if err != nil {
		report.merge(Report{Errors: []error{err}})
		return report
	}
	p.Writer.Write(encoded)
	return report
}

func groupSize(fs vfs.VFS, keeper *catalog.Duplicates) uint64 {
	meta, err := fs.Metadata(keeper.Paths[0])
	if err != nil {
		return 0
	}
	return meta.Length
}
