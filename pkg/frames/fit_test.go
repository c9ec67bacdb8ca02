package frames

import (
	"image"
	"testing"
)

func TestFitRects(t *testing.T) {
	tests := []struct {
		name     string
		fit      Fit
		src, box image.Point
		wantSrc  image.Rectangle
		wantDst  image.Rectangle
	}{
		{
			name: "fill stretches",
			fit:  FitFill,
			src:  image.Pt(100, 50), box: image.Pt(50, 50),
			wantSrc: image.Rect(0, 0, 100, 50),
			wantDst: image.Rect(0, 0, 50, 50),
		},
		{
			name: "contain letterboxes",
			fit:  FitContain,
			src:  image.Pt(100, 50), box: image.Pt(50, 50),
			wantSrc: image.Rect(0, 0, 100, 50),
			wantDst: image.Rect(0, 12, 50, 37),
		},
		{
			name: "cover crops in source space",
			fit:  FitCover,
			src:  image.Pt(100, 50), box: image.Pt(50, 50),
			wantSrc: image.Rect(25, 0, 75, 50),
			wantDst: image.Rect(0, 0, 50, 50),
		},
		{
			name: "none centers intrinsic",
			fit:  FitNone,
			src:  image.Pt(10, 10), box: image.Pt(50, 50),
			wantSrc: image.Rect(0, 0, 10, 10),
			wantDst: image.Rect(20, 20, 30, 30),
		},
		{
			name: "scale down never upscales",
			fit:  FitScaleDown,
			src:  image.Pt(10, 10), box: image.Pt(50, 50),
			wantSrc: image.Rect(0, 0, 10, 10),
			wantDst: image.Rect(20, 20, 30, 30),
		},
		{
			name: "scale down shrinks oversized",
			fit:  FitScaleDown,
			src:  image.Pt(100, 100), box: image.Pt(50, 50),
			wantSrc: image.Rect(0, 0, 100, 100),
			wantDst: image.Rect(0, 0, 50, 50),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr, dr := FitRects(tt.fit, tt.src, tt.box)
			if sr != tt.wantSrc {
				t.Errorf("source rect = %v, want %v", sr, tt.wantSrc)
			}
			if dr != tt.wantDst {
				t.Errorf("dest rect = %v, want %v", dr, tt.wantDst)
			}
		})
	}
}

func TestFitString(t *testing.T) {
	tests := []struct {
		fit  Fit
		want string
	}{
		{FitContain, "contain"},
		{FitFill, "fill"},
		{FitCover, "cover"},
		{FitNone, "none"},
		{FitScaleDown, "scale_down"},
	}
	for _, tt := range tests {
		if got := tt.fit.String(); got != tt.want {
			t.Errorf("Fit(%d).String() = %q, want %q", tt.fit, got, tt.want)
		}
	}
}
