// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fdr

import (
	"image"
	"image/color"
	"sort"
)

// RowsWithColor returns, in ascending order, the y coordinate of every row
// of img (relative to its top edge) holding at least one pixel exactly
// equal to c.
func RowsWithColor(img image.Image, c color.RGBA) []int {
	b := img.Bounds()
	var rows []int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y) == c {
				rows = append(rows, y-b.Min.Y)
				break
			}
		}
	}
	return rows
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba.RGBAAt(x, y)
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// ClusterByGap reduces a set of marker rows to anchors: the first row, plus
// every row that follows its predecessor by more than minGap pixels.
// Input is deduplicated and sorted first.
func ClusterByGap(ys []int, minGap int) []int {
	if len(ys) == 0 {
		return nil
	}
	sorted := append([]int(nil), ys...)
	sort.Ints(sorted)

	anchors := []int{sorted[0]}
	prev := sorted[0]
	for _, y := range sorted[1:] {
		if y == prev {
			continue
		}
		if prev+minGap < y {
			anchors = append(anchors, y)
		}
		prev = y
	}
	return anchors
}

// EndAnchors pairs each anchor with the start of the next one. The last
// anchor ends at height+offset so its variable-height crop reaches the
// bottom edge.
func EndAnchors(anchors []int, height, offset int) []int {
	if len(anchors) == 0 {
		return nil
	}
	ends := make([]int, len(anchors))
	copy(ends, anchors[1:])
	ends[len(ends)-1] = height + offset
	return ends
}

// SegmentRects returns one crop rectangle per anchor for an image of the
// given width. A segment starts offset pixels above its anchor. It spans
// the fixed rowHeight when anchor+rowHeight falls strictly before the end
// anchor; otherwise it stops offset pixels above the end anchor so it
// never overlaps the next group.
func SegmentRects(anchors, ends []int, width, rowHeight, offset int) []image.Rectangle {
	rects := make([]image.Rectangle, len(anchors))
	for i, a := range anchors {
		bottom := ends[i] - offset
		if a+rowHeight < ends[i] {
			bottom = a + rowHeight
		}
		rects[i] = image.Rect(0, a-offset, width, bottom)
	}
	return rects
}
