package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// IDSet is a set of tag or source identifiers.
// The zero value is an empty set ready to use.
type IDSet map[int64]struct{}

func NewIDSet(ids ...int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Toggled returns a copy of s with the membership of id flipped.
func (s IDSet) Toggled(id int64) IDSet {
	out := s.Clone()
	if out.Has(id) {
		delete(out, id)
	} else {
		out[id] = struct{}{}
	}
	return out
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}

type SortCriterion string

// SortSourceOrder keeps the order the articles were received in.
const SortSourceOrder SortCriterion = ""
const SortByDate SortCriterion = "date"
const SortByLikes SortCriterion = "likes"

var ValidSortCriteria = []SortCriterion{
	SortSourceOrder,
	SortByDate,
	SortByLikes,
}

func (c SortCriterion) Valid() bool {
	return slices.Contains(ValidSortCriteria, c)
}

// SelectionState is the user's current filter and sort choice.
type SelectionState struct {
	Tags    IDSet         `json:"tags"`
	Sources IDSet         `json:"sources"`
	Sort    SortCriterion `json:"sort"`
}

func (s SelectionState) Clone() SelectionState {
	return SelectionState{
		Tags:    s.Tags.Clone(),
		Sources: s.Sources.Clone(),
		Sort:    s.Sort,
	}
}

// SelectionStateFromQuery parses tags, sources and sort from a query string,
// e.g. "tags=1,2&sources=10&sort=likes".
func SelectionStateFromQuery(q url.Values) (SelectionState, error) {
	state := SelectionState{Tags: IDSet{}, Sources: IDSet{}}

	var err error
	if state.Tags, err = idSetFromQuery(q, "tags"); err != nil {
		return SelectionState{}, err
	}
	if state.Sources, err = idSetFromQuery(q, "sources"); err != nil {
		return SelectionState{}, err
	}

	if q.Has("sort") {
		sort := SortCriterion(q.Get("sort"))
		if !sort.Valid() {
			return SelectionState{}, fmt.Errorf("unrecognised sort criterion: %s", sort)
		}
		state.Sort = sort
	}

	return state, nil
}

// idSetFromQuery merges every occurrence of key, so both "tags=1,2" and
// "tags=1&tags=2" select tags 1 and 2. Blank values select nothing.
func idSetFromQuery(q url.Values, key string) (IDSet, error) {
	set := IDSet{}
	for _, value := range q[key] {
		if value == "" {
			continue
		}

		for _, part := range strings.Split(value, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("unable to parse %s from query: %w", key, err)
			}
			set[id] = struct{}{}
		}
	}
	return set, nil
}

// Select derives the filtered view: filter first, then order by the sort criterion.
// The input slice is never modified.
func Select(articles []Article, state SelectionState) []Article {
	return SortArticles(FilterArticles(articles, state.Tags, state.Sources), state.Sort)
}

// FilterArticles keeps articles whose source is in sources (or sources is empty)
// and which carry at least one tag in tags (or tags is empty).
func FilterArticles(articles []Article, tags, sources IDSet) []Article {
	if len(tags) == 0 && len(sources) == 0 {
		return append(make([]Article, 0, len(articles)), articles...)
	}

	filtered := make([]Article, 0, len(articles))
	for _, a := range articles {
		if len(sources) > 0 && !sources.Has(a.Source.ID) {
			continue
		}
		if len(tags) > 0 && !a.HasTagIn(tags) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

// SortArticles returns a copy of articles stably ordered by criterion, newest or
// most liked first. Equal keys keep their relative order.
func SortArticles(articles []Article, criterion SortCriterion) []Article {
	sorted := append(make([]Article, 0, len(articles)), articles...)

	switch criterion {
	case SortByDate:
		slices.SortStableFunc(sorted, func(a, b Article) int {
			return b.PublishedAt.Compare(a.PublishedAt)
		})
	case SortByLikes:
		slices.SortStableFunc(sorted, func(a, b Article) int {
			switch {
			case a.Likes > b.Likes:
				return -1
			case a.Likes < b.Likes:
				return 1
			default:
				return 0
			}
		})
	}

	return sorted
}
