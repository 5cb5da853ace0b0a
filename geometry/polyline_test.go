package geometry

import (
	"reflect"
	"testing"
)

func TestNormalizePolyline(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want []Point
	}{
		{
			name: "already clean",
			pts:  []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
			want: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)},
		},
		{
			name: "consecutive duplicates collapsed",
			pts:  []Point{Pt(0, 0), Pt(0, 0.3), Pt(10, 0)},
			want: []Point{Pt(0, 0), Pt(10, 0)},
		},
		{
			name: "colinear interior dropped",
			pts:  []Point{Pt(0, 0), Pt(5, 0), Pt(10, 0)},
			want: []Point{Pt(0, 0), Pt(10, 0)},
		},
		{
			name: "bend preserved",
			pts:  []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(20, 10)},
			want: []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(20, 10)},
		},
		{
			name: "duplicate then colinear",
			pts:  []Point{Pt(0, 0), Pt(0, 0), Pt(4, 0), Pt(8, 0), Pt(8, 6)},
			want: []Point{Pt(0, 0), Pt(8, 0), Pt(8, 6)},
		},
		{
			name: "degenerate single point",
			pts:  []Point{Pt(3, 3)},
			want: nil,
		},
		{
			name: "degenerate all duplicates",
			pts:  []Point{Pt(3, 3), Pt(3.2, 3), Pt(3, 3.4)},
			want: nil,
		},
		{
			name: "empty",
			pts:  nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePolyline(tt.pts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizePolyline(%v) = %v, want %v", tt.pts, got, tt.want)
			}
		})
	}
}

func TestNormalizePolylineDoesNotMutateInput(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(5, 0), Pt(10, 0)}
	orig := append([]Point(nil), pts...)
	NormalizePolyline(pts)
	if !reflect.DeepEqual(pts, orig) {
		t.Errorf("input mutated: %v, want %v", pts, orig)
	}
}

func TestPolylineLength(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 5)}
	if got := PolylineLength(pts); got != 15 {
		t.Errorf("PolylineLength = %v, want 15", got)
	}
}
