// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines FormatDescriptor, RawBuffer and sample conversion helpers
// Package audio provides the PCM types shared by decoders, the metering
// engine and the playback pipeline.
//
//   - FormatDescriptor: sample kind, bit width and channel count of a buffer
//   - RawBuffer: undecoded little-endian interleaved bytes plus their descriptor
//
// Supported formats are f32, f64, s8, s16, s32, u8, u16 and u32. Anything else
// fails Validate with ErrUnsupportedFormat.
//
// Example:
//
//	buf := audio.RawBuffer{
//	    Data:   pcm,
//	    Format: audio.FormatDescriptor{Kind: audio.SignedInt, BitsPerSample: 16, Channels: 2},
//	}
//	if !buf.WellFormed() {
//	    // drop it
//	}
package audio
