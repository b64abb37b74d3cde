package thread

// Phase identifies which stage of the pipeline a progress event belongs to.
type Phase string

const (
	PhaseFetching    Phase = "fetching"
	PhaseSummarizing Phase = "summarizing"
)

// Progress describes pipeline advancement for a caller-supplied sink.
// Batch and TotalBatches are only set during the summarizing phase.
type Progress struct {
	Phase        Phase `json:"phase"`
	Current      int   `json:"current"`
	Total        int   `json:"total"`
	Batch        int   `json:"batch,omitempty"`
	TotalBatches int   `json:"total_batches,omitempty"`
}

// ProgressFunc receives progress events. Callers may pass nil.
type ProgressFunc func(Progress)

// Emit invokes the callback if one is set.
func (f ProgressFunc) Emit(p Progress) {
	if f != nil {
		f(p)
	}
}
