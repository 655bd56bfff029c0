// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides Output interface and the oto implementation
// Package output provides audio playback interfaces.
//
// Oto is the cross-platform backend. Only one oto context may exist per
// process, so an Oto output is opened once and reused for every sound.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Open(48000, 2)
//	out.SetVolume(25)
//	err = out.Write(samples)
package output
