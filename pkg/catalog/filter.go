package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/easeltools/easel/pkg/models"
)

// Recency buckets for the last-used filter.
const (
	RecencyAll   = "all"
	RecencyNever = "never"
	RecencyToday = "today"
	RecencyWeek  = "week"
	RecencyMonth = "month"
)

// Update-availability filter states.
const (
	UpdateAll       = "all"
	UpdateAvailable = "available"
	UpdateNone      = "none"
)

// Filters describes the filter and sort state of a panel. Sort carries the
// base key with an optional "-desc" suffix (e.g. "name-desc").
type Filters struct {
	Search  string
	Bucket  string // "" or "all" disables the bucket predicate
	Recency string // "", "all", "never", "today", "week", "month"
	Update  string // "", "all", "available", "none"
	Sort    string // "name", "lastused", "size", "type", each with optional -desc
}

// descSuffix is the direction convention: "<key>-desc" instead of a
// separate field.
const descSuffix = "-desc"

// ParseSort splits a sort spec into its base key and descending flag.
func ParseSort(spec string) (key string, descending bool) {
	if strings.HasSuffix(spec, descSuffix) {
		return strings.TrimSuffix(spec, descSuffix), true
	}
	return spec, false
}

// collator is shared by all name comparisons. Locale-aware so the sort order
// matches the rendered labels.
var collator = collate.New(language.Und, collate.IgnoreCase)

// Apply runs the filter predicates (AND-composed) and then the sort over a
// copy of items. The input is never mutated. Ties are broken by item id
// ascending so equal-key items keep a stable order between renders.
func Apply(items []models.Item, f Filters) []models.Item {
	out := make([]models.Item, 0, len(items))
	now := time.Now()
	for _, item := range items {
		if matches(item, f, now) {
			out = append(out, item)
		}
	}

	cmp := comparatorFor(f.Sort)
	sort.SliceStable(out, func(i, j int) bool {
		if c := cmp(out[i], out[j]); c != 0 {
			return c < 0
		}
		return out[i].Id < out[j].Id
	})
	return out
}

func matches(item models.Item, f Filters, now time.Time) bool {
	info, _ := item.DecodeInfo()

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.ToLower(item.DisplayName() + " " + info.VersionName + " " + item.Path)
		if !strings.Contains(hay, q) {
			return false
		}
	}

	if f.Bucket != "" && f.Bucket != "all" {
		if Classify(item.Path).Bucket != f.Bucket {
			return false
		}
	}

	if !matchesRecency(info.LastUsed(), f.Recency, now) {
		return false
	}

	switch f.Update {
	case UpdateAvailable:
		if !info.HasUpdate {
			return false
		}
	case UpdateNone:
		if info.HasUpdate {
			return false
		}
	}

	return true
}

func matchesRecency(lastUsed time.Time, recency string, now time.Time) bool {
	switch recency {
	case "", RecencyAll:
		return true
	case RecencyNever:
		return lastUsed.IsZero()
	case RecencyToday:
		return !lastUsed.IsZero() && now.Sub(lastUsed) <= 24*time.Hour
	case RecencyWeek:
		return !lastUsed.IsZero() && now.Sub(lastUsed) <= 7*24*time.Hour
	case RecencyMonth:
		return !lastUsed.IsZero() && now.Sub(lastUsed) <= 30*24*time.Hour
	default:
		return true
	}
}

// comparatorFor returns a three-way comparator for the sort spec. The -desc
// suffix negates the base comparator.
func comparatorFor(spec string) func(a, b models.Item) int {
	key, descending := ParseSort(spec)

	var base func(a, b models.Item) int
	switch key {
	case "lastused":
		base = func(a, b models.Item) int {
			ia, _ := a.DecodeInfo()
			ib, _ := b.DecodeInfo()
			ta, tb := ia.LastUsed(), ib.LastUsed()
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	case "size":
		base = func(a, b models.Item) int {
			ia, _ := a.DecodeInfo()
			ib, _ := b.DecodeInfo()
			switch {
			case ia.Size < ib.Size:
				return -1
			case ia.Size > ib.Size:
				return 1
			default:
				return 0
			}
		}
	case "type":
		base = func(a, b models.Item) int {
			ia, _ := a.DecodeInfo()
			ib, _ := b.DecodeInfo()
			return strings.Compare(ia.Type, ib.Type)
		}
	default: // "name" and anything unrecognized
		base = func(a, b models.Item) int {
			return collator.CompareString(a.DisplayName(), b.DisplayName())
		}
	}

	if descending {
		return func(a, b models.Item) int { return -base(a, b) }
	}
	return base
}
