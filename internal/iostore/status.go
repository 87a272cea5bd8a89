package iostore

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/sprintburn/sprintburn/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Sprints: %d\n", status.TotalSprints)
	if status.TotalSprints > 0 {
		_, _ = fmt.Fprintf(w, "Latest Sprint: %d\n", status.LatestSprintID)
	}
	_, _ = fmt.Fprintf(w, "Total Snapshots: %d\n", status.TotalSnapshots)
	if !status.LastSnapshotDate.IsZero() {
		_, _ = fmt.Fprintf(w, "Last Snapshot: %s\n", schema.FormatDate(status.LastSnapshotDate))
	}
	_, _ = fmt.Fprintf(w, "Database Size: %s\n", humanize.Bytes(uint64(max(status.DatabaseBytes, 0))))

	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %s rows\n", table, humanize.Comma(status.TableSizes[table]))
	}
}
