// Package export writes and reads the flat dumps of an encoded clip.
//
// Both formats walk channels in canonical order (depth first, a joint's own
// channels before its children's) and frames in order within a channel.
//
// The CSV dump has one "index;value" line per frame, where index restarts at
// 0 for every channel and value is a sample, a quantized code or a residual.
// The raw dump holds residuals only. [Width8], the default, stores each as one
// byte modulo 2^8, which is exact for delta streams of codes up to 8 bits;
// [WidthInt8] stores int8 residuals as is and [Width16] uses two little-endian
// bytes. Nothing else is stored, so [ReadRaw] needs the channel and frame
// counts.
package export
