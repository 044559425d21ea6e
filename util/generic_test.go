// util/generic_test.go
// Copyright(c) 2025-2026 pixooradar contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"slices"
	"strconv"
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, "a", "b") != "a" {
		t.Errorf("Select(true) returned second argument")
	}
	if Select(false, 1, 2) != 2 {
		t.Errorf("Select(false) returned first argument")
	}
}

func TestMapSlice(t *testing.T) {
	got := MapSlice([]int{7, 8, 9}, strconv.Itoa)
	if !slices.Equal(got, []string{"7", "8", "9"}) {
		t.Errorf("got %v", got)
	}
	if MapSlice(nil, strconv.Itoa) != nil {
		t.Errorf("mapping nil should return nil")
	}
}

func TestFilterSlice(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }
	got := FilterSlice([]int{1, 2, 3, 4, 5, 6}, even)
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Errorf("got %v", got)
	}
	if FilterSlice([]int{1, 3}, even) != nil {
		t.Errorf("all-rejected filter should return nil")
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"c": 0, "a": 1, "b": 2}
	if got := SortedMapKeys(m); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v", got)
	}
}
