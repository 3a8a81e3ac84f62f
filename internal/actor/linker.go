package actor

import (
	"fmt"

	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs"
)

// Linker replaces every non-keeper path in each duplicate group with a
// hardlink to the keeper, leaving the path count in the group unchanged but
// collapsing its inode count to one.
type Linker struct {
	Selector Selector
	Logger   *logging.Logger
}

// NewLinker constructs a Linker.
func NewLinker(selector Selector, logger *logging.Logger) *Linker {
	return &Linker{Selector: selector, Logger: logger}
}

// Act implements Actor.Act. For each non-keeper path, the path is removed
// and then replaced with a hardlink to the keeper's first path, in that
// order (not link-then-remove), so a crash mid-group never leaves two paths
// pointing at different inodes under the same name. As with Deleter, the
// whole group is skipped if the keeper cannot be confirmed present first.
func (l *Linker) Act(fs vfs.VFS, groups [][]*catalog.Duplicates) Report {
	var report Report
	for _, group := range groups {
		report.merge(l.actGroup(fs, group))
	}
	return report
}

// actGroup processes one duplicate group, returning its own Report so the
// caller can fold it into the run-wide total with Report.merge.
func (l *Linker) actGroup(fs vfs.VFS, group []*catalog.Duplicates) Report {
	var report Report
	keeper := l.Selector.Select(fs, group)
	if _, err := fs.Metadata(keeper.Paths[0]); err != nil {
		l.Logger.Warn(fmt.Errorf("skipping group: keeper %s not confirmed present: %w", keeper.Paths[0], err))
		report.GroupsSkipped++
		return report
	}
	keeperPath := keeper.Paths[0]

	for _, path := range nonKeeperPaths(group, keeper) {
		if err := fs.Remove(path); err != nil {
			l.Logger.Warn(fmt.Errorf("unable to remove %s before relinking: %w", path, err))
			report.Errors = append(report.Errors, err)
			continue
		}
		report.PathsRemoved++

		if err := fs.Link(keeperPath, path); err != nil {
			if isCrossDeviceError(err) {
				l.Logger.Warn(fmt.Errorf("cannot hardlink %s to %s: different device: %w", path, keeperPath, err))
			} else {
				l.Logger.Warn(fmt.Errorf("unable to link %s to %s: %w", path, keeperPath, err))
			}
			report.Errors = append(report.Errors, err)
			continue
		}
		report.PathsLinked++
	}
	report.GroupsProcessed++
	return report
}
