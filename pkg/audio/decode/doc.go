// ABOUTME: PCM buffer decoding package
// ABOUTME: Provides the Decode function and a reusable Decoder for raw buffers
// Package decode turns raw PCM bytes into numeric samples.
//
// Supported: f32, f64, s8, s16, s32, u8, u16, u32 (little-endian, interleaved).
//
// Output samples keep their native scale: an s16 buffer decodes to values in
// [-32768, 32767], a u8 buffer to [0, 255]. Normalization is left to callers.
//
// Errors are ErrUnsupportedFormat for descriptors outside the matrix and
// ErrTruncatedBuffer when the data does not hold a whole number of frames.
//
// Example:
//
//	var dec decode.Decoder
//	samples, err := dec.Decode(buf.Data, buf.Format)
//	if errors.Is(err, decode.ErrTruncatedBuffer) {
//	    // drop the buffer
//	}
package decode
