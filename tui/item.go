package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/tevify/tevify/catalog"
	"github.com/tevify/tevify/icon"
)

// listItem implements the list.Item interface for a catalog video.
type listItem struct {
	video catalog.Video
}

func (t *listItem) Title() string {
	return t.video.Title
}

func (t *listItem) Description() string {
	subtitles := t.video.Subtitles()
	if t.video.AutoPlay.OrElse(false) {
		subtitles = append(subtitles, icon.Get(icon.Play)+"autoplay")
	}
	return strings.Join(subtitles, " • ")
}

func (t *listItem) FilterValue() string {
	return t.video.FilterValue()
}

func newItems(videos []catalog.Video) []list.Item {
	return lo.Map(videos, func(v catalog.Video, _ int) list.Item {
		return &listItem{video: v}
	})
}

// fuzzyFilter ranks feed entries the same way `catalog show --filter` does.
func fuzzyFilter(term string, targets []string) []list.Rank {
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) list.Rank {
		return list.Rank{
			Index:          r.OriginalIndex,
			MatchedIndexes: matchedIndexes(strings.ToLower(term), strings.ToLower(r.Target)),
		}
	})
}

// matchedIndexes returns the rune positions of target consumed by a greedy subsequence match of term.
func matchedIndexes(term, target string) []int {
	var (
		indexes []int
		needle  = []rune(term)
		n       int
	)

	for i, r := range []rune(target) {
		if n < len(needle) && r == needle[n] {
			indexes = append(indexes, i)
			n++
		}
	}

	return indexes
}
