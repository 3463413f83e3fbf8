// Package dynamics provides dynamic-range compressors.
//
// Included processors:
//   - Compress: static threshold/ratio compressor applied sample by sample.
//   - CompressEnvelope: envelope-following compressor with explicit state
//     so chunked streams can keep their envelope between calls.
//   - MultiBandCompress: splits a buffer into low, mid and high bands,
//     compresses each band with its own envelope parameters and sums them.
//   - MultibandCompressor: the streaming, configurable form of
//     MultiBandCompress, built on a crossover.Splitter.
//
// Levels and thresholds are linear sample magnitudes in [0, 1], not dB.
package dynamics
