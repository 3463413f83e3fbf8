// Package pipeline composes the equalizer, noise reducer and compressors
// into one processing chain driven by an immutable [Settings] value.
//
// Stages run in the order Equalizer → Noise reduction → Compression. Each
// stage is optional. [Process] treats every call independently; [Stream]
// carries compressor state between consecutive chunks of one stream.
package pipeline
