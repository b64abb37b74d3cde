// Package prompt derives output-size limits from thread size and builds
// provider-specific instruction text for summarization requests.
package prompt

// Limits bounds how much output a summarization request may ask for.
type Limits struct {
	MaxKeyPoints    int
	MaxParticipants int
}

// Ceilings for scaled limits. No request ever asks for unbounded output.
const (
	KeyPointsCeiling    = 15
	ParticipantsCeiling = 16
)

// ScaledLimits maps a total page count to output limits. The limits are
// non-decreasing in page count and bounded above by the ceilings: small
// threads get short summaries, large threads saturate at the upper tier.
func ScaledLimits(pageCount int) Limits {
	return Limits{
		MaxKeyPoints:    scaleKeyPoints(pageCount),
		MaxParticipants: scaleParticipants(pageCount),
	}
}

func scaleKeyPoints(pages int) int {
	switch {
	case pages <= 3:
		return 5
	case pages <= 9:
		return 7
	case pages <= 19:
		return 9
	case pages <= 24:
		return 12
	default:
		return KeyPointsCeiling
	}
}

func scaleParticipants(pages int) int {
	switch {
	case pages <= 3:
		return 5
	case pages <= 6:
		return 8
	case pages <= 9:
		return 10
	case pages <= 14:
		return 12
	case pages <= 19:
		return 14
	case pages <= 29:
		return 15
	default:
		return ParticipantsCeiling
	}
}
