package board

import (
	"regexp"
	"strconv"
	"time"

	"card-sync/core/reconcile"
)

// deadlinePattern matches the deadline marker, e.g. "deadline:3/4/2020" (month/day/year).
var deadlinePattern = regexp.MustCompile(`deadline:(\d{1,2})/(\d{1,2})/(\d{4})`)

// ExtractDeadline scans the candidate texts in order and returns the first
// marker that names a real calendar date. It stops at the first hit even if
// a later candidate carries a different date. Nil means no deadline.
func ExtractDeadline(candidates ...string) *reconcile.Date {
	for _, text := range candidates {
		if d, ok := matchDeadline(text); ok {
			return &d
		}
	}
	return nil
}

// deadlineCandidates lists the texts searched for a deadline, highest priority first.
func deadlineCandidates(card ProjectCard, issue *Issue) []string {
	candidates := []string{card.Note}
	if issue != nil {
		candidates = append(candidates, issue.Title, issue.Body)
	}
	return candidates
}

func matchDeadline(text string) (reconcile.Date, bool) {
	if text == "" {
		return reconcile.Date{}, false
	}
	m := deadlinePattern.FindStringSubmatch(text)
	if m == nil {
		return reconcile.Date{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d, err := reconcile.NewDate(year, time.Month(month), day)
	if err != nil {
		return reconcile.Date{}, false
	}
	return d, true
}
