package summarize

import (
	"strings"
	"testing"

	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

func pageOfSize(number, chars int) thread.PageData {
	return thread.PageData{
		PageNumber: number,
		Posts: []thread.Post{
			{Number: 1, Author: "a", Content: strings.Repeat("x", chars), CharCount: chars},
		},
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		sizes      []int
		budget     int
		wantGroups [][]int // page numbers per batch
	}{
		{
			name:       "all pages fit one batch",
			sizes:      []int{100, 100, 100},
			budget:     1000,
			wantGroups: [][]int{{1, 2, 3}},
		},
		{
			name:       "budget splits contiguously",
			sizes:      []int{400, 400, 400, 400},
			budget:     900,
			wantGroups: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:       "oversized page gets its own batch",
			sizes:      []int{100, 5000, 100},
			budget:     1000,
			wantGroups: [][]int{{1}, {2}, {3}},
		},
		{
			name:       "empty input",
			sizes:      nil,
			budget:     1000,
			wantGroups: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pages []thread.PageData
			for i, size := range tt.sizes {
				pages = append(pages, pageOfSize(i+1, size))
			}

			batches := Partition(pages, tt.budget)
			if len(batches) != len(tt.wantGroups) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantGroups))
			}

			for i, want := range tt.wantGroups {
				if len(batches[i]) != len(want) {
					t.Fatalf("batch %d has %d pages, want %d", i, len(batches[i]), len(want))
				}
				for j, num := range want {
					if batches[i][j].PageNumber != num {
						t.Errorf("batch %d page %d = %d, want %d", i, j, batches[i][j].PageNumber, num)
					}
				}
			}
		})
	}
}

func TestPartition_NeverSplitsAPage(t *testing.T) {
	pages := []thread.PageData{pageOfSize(1, 300), pageOfSize(2, 300), pageOfSize(3, 300)}
	batches := Partition(pages, 500)

	total := 0
	for _, batch := range batches {
		total += len(batch)
		for _, page := range batch {
			if page.PostCount() != 1 {
				t.Error("page content was split across batches")
			}
		}
	}
	if total != len(pages) {
		t.Errorf("partition lost pages: %d of %d", total, len(pages))
	}
}
