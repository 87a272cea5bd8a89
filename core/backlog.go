package core

import (
	"regexp"

	"github.com/sprintburn/sprintburn/schema"
)

// CountRemainingPoints sums the estimates of unresolved backlog items.
// Items whose status matches exclude are resolved. Items without an estimate are skipped.
// A nil exclude pattern counts every estimated item.
func CountRemainingPoints(sprintID int, items []schema.BacklogItem, exclude *regexp.Regexp) schema.RemainingPoints {
	out := schema.RemainingPoints{SprintID: sprintID, Items: len(items)}
	for _, item := range items {
		if exclude != nil && exclude.MatchString(item.Status) {
			out.Excluded++
			continue
		}
		if item.Estimate == nil {
			out.Unestimated++
			continue
		}
		out.Points += *item.Estimate
		out.Counted++
	}
	return out
}
