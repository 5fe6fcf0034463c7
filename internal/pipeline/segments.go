package pipeline

// Segment is one [StartMS, EndMS) window of the source audio. Ordinals are
// 1-based and sequential with no gaps.
type Segment struct {
	Ordinal int
	StartMS int64
	EndMS   int64
}

// ComputeSegments tiles [0, totalMS) with windows of segmentSeconds,
// working directly in millisecond space. The final window is clamped to
// the total duration, so a trailing partial window (or a clip shorter than
// one segment length) is always emitted rather than dropped.
func ComputeSegments(totalMS int64, segmentSeconds int) []Segment {
	if totalMS <= 0 || segmentSeconds <= 0 {
		return nil
	}

	step := int64(segmentSeconds) * 1000
	var segments []Segment
	for start := int64(0); start < totalMS; start += step {
		end := start + step
		if end > totalMS {
			end = totalMS
		}
		segments = append(segments, Segment{
			Ordinal: len(segments) + 1,
			StartMS: start,
			EndMS:   end,
		})
	}
	return segments
}
