package pcm

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/pipeline"
	goaudio "github.com/go-audio/audio"
	"golang.org/x/sync/errgroup"
)

// ProcessChannels runs every channel through [pipeline.Process] with s,
// one goroutine per channel. Channels are independent: each gets fresh
// compressor state. The first failure cancels the remaining channels.
func ProcessChannels(ctx context.Context, channels [][]float64, s pipeline.Settings) ([][]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	out := make([][]float64, len(channels))
	g, ctx := errgroup.WithContext(ctx)

	for c, ch := range channels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := pipeline.Process(ch, s)
			if err != nil {
				return fmt.Errorf("pcm: channel %d: %w", c, err)
			}

			out[c] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// ProcessFloatBuffer deinterleaves buf, processes its channels concurrently
// and returns a new interleaved buffer. A positive buffer sample rate
// overrides s.SampleRate.
func ProcessFloatBuffer(ctx context.Context, buf *goaudio.FloatBuffer, s pipeline.Settings) (*goaudio.FloatBuffer, error) {
	channels, err := FromFloatBuffer(buf)
	if err != nil {
		return nil, err
	}

	if buf.Format.SampleRate > 0 {
		s.SampleRate = buf.Format.SampleRate
	}

	processed, err := ProcessChannels(ctx, channels, s)
	if err != nil {
		return nil, err
	}

	return ToFloatBuffer(processed, buf.Format.SampleRate)
}

// ProcessIntBuffer is [ProcessFloatBuffer] for integer PCM. The output
// keeps the input bit depth.
func ProcessIntBuffer(ctx context.Context, buf *goaudio.IntBuffer, s pipeline.Settings) (*goaudio.IntBuffer, error) {
	channels, err := FromIntBuffer(buf)
	if err != nil {
		return nil, err
	}

	if buf.Format.SampleRate > 0 {
		s.SampleRate = buf.Format.SampleRate
	}

	processed, err := ProcessChannels(ctx, channels, s)
	if err != nil {
		return nil, err
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = defaultBitDepth
	}

	return ToIntBuffer(processed, buf.Format.SampleRate, depth)
}
