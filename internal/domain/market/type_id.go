package market

import (
	"fmt"
	"sort"
	"strconv"
)

// TypeID identifies an item type. Its decimal string form is used verbatim as
// the request parameter and as the response key, so parsing is strict: the
// only accepted form is the canonical one ("34", never "034" or "+34").
type TypeID int64

// ParseTypeID parses the canonical decimal form of a type id
func ParseTypeID(s string) (TypeID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTypeID, s)
	}
	if n <= 0 || strconv.FormatInt(n, 10) != s {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTypeID, s)
	}
	return TypeID(n), nil
}

// String returns the canonical decimal form
func (t TypeID) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// UniqueTypeIDs drops duplicates while keeping first-seen order
func UniqueTypeIDs(ids []TypeID) []TypeID {
	seen := make(map[TypeID]struct{}, len(ids))
	unique := make([]TypeID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// SortTypeIDs sorts ids ascending in place and returns them
func SortTypeIDs(ids []TypeID) []TypeID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
