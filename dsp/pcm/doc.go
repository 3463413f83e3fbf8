// Package pcm bridges decoded go-audio buffers and the per-channel float
// sample buffers the processing packages operate on.
//
// Capture and file layers hand over interleaved [goaudio.FloatBuffer] or
// [goaudio.IntBuffer] values. This package splits them into channels,
// converts integer PCM to normalized [-1, 1] samples, runs the processing
// pipeline on every channel concurrently and interleaves the result again.
package pcm
