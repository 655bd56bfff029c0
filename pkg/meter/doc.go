// ABOUTME: Audio level metering package
// ABOUTME: Provides peak extraction, level state, peak hold and the metering engine
// Package meter converts raw PCM buffers into stereo peak levels with a
// peak-hold-and-decay display model.
//
// The pipeline for each buffer is decode → Extract → LevelState.Set →
// PeakHold.Observe. Peak-hold time only moves when the caller invokes
// Engine.Tick with a timestamp, so behavior is fully replayable in tests.
//
// Example:
//
//	eng := meter.NewEngine(meter.Config{})
//	eng.SetActive(true)
//	eng.PushBuffer(buf)
//	eng.Tick(time.Now())
//	snap := eng.Snapshot()
package meter
