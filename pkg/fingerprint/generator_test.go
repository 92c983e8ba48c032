package fingerprint_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/devicekit/pkg/fingerprint"
	"github.com/dmitrymomot/devicekit/pkg/signals"
)

type countingSource struct {
	reads atomic.Int32
	live  *signals.Live
}

func (c *countingSource) Snapshot() signals.Environment {
	c.reads.Add(1)
	return c.live.Snapshot()
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	t.Run("computes once", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{live: signals.NewLive(signals.Environment{
			UserAgent: signals.Some("Mozilla/5.0"),
		})}
		gen := fingerprint.NewGenerator(src)

		first := gen.Fingerprint()
		second := gen.Fingerprint()

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), src.reads.Load())
	})

	t.Run("later source changes do not affect the value", func(t *testing.T) {
		t.Parallel()
		live := signals.NewLive(signals.Environment{ScreenWidth: signals.Some(800)})
		gen := fingerprint.NewGenerator(live)

		before := gen.Fingerprint()
		live.Update(func(env *signals.Environment) { env.ScreenWidth = signals.Some(1024) })

		assert.Equal(t, before, gen.Fingerprint())
		assert.NotEqual(t, before, fingerprint.Generate(signals.Read(live)))
	})

	t.Run("concurrent callers see one value", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{live: signals.NewLive(signals.Environment{})}
		gen := fingerprint.NewGenerator(src)

		var wg sync.WaitGroup
		values := make([]string, 16)
		for i := range values {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				values[i] = gen.Fingerprint()
			}(i)
		}
		wg.Wait()

		for _, v := range values {
			assert.Equal(t, values[0], v)
		}
		assert.Equal(t, int32(1), src.reads.Load())
	})

	t.Run("nil source uses defaults", func(t *testing.T) {
		t.Parallel()
		gen := fingerprint.NewGenerator(nil)
		assert.Equal(t, fingerprint.Generate(signals.Defaults()), gen.Fingerprint())
	})
}
