// Package conv holds the checked integer conversions used when flat
// category positions are stored in 32-bit bitmaps.
package conv
