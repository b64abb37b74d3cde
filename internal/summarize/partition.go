package summarize

import "github.com/albrtbc/mv-thread-digest/internal/thread"

// Partition splits pages into contiguous batches whose combined post content
// stays under the character budget. Batch boundaries never split a page; a
// single page larger than the budget gets a batch of its own.
func Partition(pages []thread.PageData, budget int) [][]thread.PageData {
	if len(pages) == 0 {
		return nil
	}

	var batches [][]thread.PageData
	var current []thread.PageData
	size := 0

	for _, page := range pages {
		length := page.ContentLength()
		if len(current) > 0 && size+length > budget {
			batches = append(batches, current)
			current = nil
			size = 0
		}
		current = append(current, page)
		size += length
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}
