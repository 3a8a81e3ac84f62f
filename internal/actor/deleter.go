package actor

import (
	"fmt"

	"github.com/zwimer/smllr/internal/catalog"
	"github.com/zwimer/smllr/internal/logging"
	"github.com/zwimer/smllr/internal/vfs"
)

// Deleter removes every non-keeper path in each duplicate group, collapsing
// the group down to the keeper's own hardlink count. It never touches the
// keeper's paths.
type Deleter struct {
	Selector Selector
	Logger   *logging.Logger
}

// NewDeleter constructs a Deleter.
func NewDeleter(selector Selector, logger *logging.Logger) *Deleter {
	return &Deleter{Selector: selector, Logger: logger}
}

// Act implements Actor.Act. Per the error handling design, the tool never
// silently succeeds after a destructive error on a keeper path: if the
// keeper cannot be confirmed present before deletion starts, the whole group
// is skipped and no non-keeper in it is removed. Individual non-keeper
// removal failures are logged and do not halt the rest of the group.
func (d *Deleter) Act(fs vfs.VFS, groups [][]*catalog.Duplicates) Report {
	var report Report
	for _, group := range groups {
		report.merge(d.actGroup(fs, group))
	}
	return report
}

// actGroup processes one duplicate group, returning its own Report so the
// caller can fold it into the run-wide total with Report.merge.
func (d *Deleter) actGroup(fs vfs.VFS, group []*catalog.Duplicates) Report {
	var report Report
	keeper := d.Selector.Select(fs, group)
	if _, err := fs.Metadata(keeper.Paths[0]); err != nil {
		d.Logger.Warn(fmt.Errorf("skipping group: keeper %s not confirmed present: %w", keeper.Paths[0], err))
		report.GroupsSkipped++
		return report
	}

	for _, path := range nonKeeperPaths(group, keeper) {
		if err := fs.Remove(path); err != nil {
			d.Logger.Warn(fmt.Errorf("unable to remove %s: %w", path, err))
			report.Errors = append(report.Errors, err)
			continue
		}
		report.PathsRemoved++
	}
	report.GroupsProcessed++
	return report
}
