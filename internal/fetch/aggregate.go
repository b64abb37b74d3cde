package fetch

import "github.com/albrtbc/mv-thread-digest/internal/thread"

// Aggregate folds per-page results into thread-level statistics: the total
// post count and the size of the case-insensitive union of author names.
// Pure and deterministic.
func Aggregate(pages []thread.PageData) (totalPosts, totalUniqueAuthors int) {
	authors := make(map[string]struct{})
	for i := range pages {
		totalPosts += pages[i].PostCount()
		for name := range pages[i].UniqueAuthors() {
			authors[name] = struct{}{}
		}
	}
	return totalPosts, len(authors)
}
