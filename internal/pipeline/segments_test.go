package pipeline

import "testing"

func TestComputeSegments(t *testing.T) {
	tests := []struct {
		name    string
		totalMS int64
		seconds int
		want    []Segment
	}{
		{
			name:    "25s clip with 10s segments clamps the tail",
			totalMS: 25000,
			seconds: 10,
			want: []Segment{
				{Ordinal: 1, StartMS: 0, EndMS: 10000},
				{Ordinal: 2, StartMS: 10000, EndMS: 20000},
				{Ordinal: 3, StartMS: 20000, EndMS: 25000},
			},
		},
		{
			name:    "exact multiple has no partial tail",
			totalMS: 30000,
			seconds: 10,
			want: []Segment{
				{Ordinal: 1, StartMS: 0, EndMS: 10000},
				{Ordinal: 2, StartMS: 10000, EndMS: 20000},
				{Ordinal: 3, StartMS: 20000, EndMS: 30000},
			},
		},
		{
			name:    "clip shorter than one segment yields one clamped segment",
			totalMS: 4200,
			seconds: 10,
			want: []Segment{
				{Ordinal: 1, StartMS: 0, EndMS: 4200},
			},
		},
		{
			name:    "zero duration yields nothing",
			totalMS: 0,
			seconds: 10,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSegments(tt.totalMS, tt.seconds)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Windows must tile [0, total) in order with no gaps, full width except
// possibly the last, and the last end equal to the total duration.
func TestComputeSegmentsTiling(t *testing.T) {
	durations := []int64{1, 999, 1000, 1001, 9999, 10000, 25000, 59500, 3_600_000}
	lengths := []int{1, 5, 10, 60}

	for _, total := range durations {
		for _, sec := range lengths {
			segs := ComputeSegments(total, sec)
			if len(segs) == 0 {
				t.Fatalf("D=%d S=%d: no segments", total, sec)
			}
			step := int64(sec) * 1000
			var prevEnd int64
			for i, s := range segs {
				if s.Ordinal != i+1 {
					t.Errorf("D=%d S=%d: ordinal %d at index %d", total, sec, s.Ordinal, i)
				}
				if s.StartMS != prevEnd {
					t.Errorf("D=%d S=%d: gap before segment %d", total, sec, s.Ordinal)
				}
				if i < len(segs)-1 && s.EndMS-s.StartMS != step {
					t.Errorf("D=%d S=%d: segment %d width %d, want %d",
						total, sec, s.Ordinal, s.EndMS-s.StartMS, step)
				}
				if s.StartMS >= s.EndMS {
					t.Errorf("D=%d S=%d: segment %d empty", total, sec, s.Ordinal)
				}
				prevEnd = s.EndMS
			}
			if prevEnd != total {
				t.Errorf("D=%d S=%d: last end %d, want %d", total, sec, prevEnd, total)
			}
		}
	}
}
