package fingerprint

import (
	"sync"

	"github.com/dmitrymomot/devicekit/pkg/signals"
)

// Generator memoizes one fingerprint. The source is read on the first call
// to Fingerprint only; later changes to it do not affect the value.
type Generator struct {
	src   signals.Source
	once  sync.Once
	value string
}

// NewGenerator creates a generator over src.
func NewGenerator(src signals.Source) *Generator {
	return &Generator{src: src}
}

// Fingerprint computes the value on first use and returns the cached value
// afterwards. Safe for concurrent use.
func (g *Generator) Fingerprint() string {
	g.once.Do(func() {
		g.value = Generate(signals.Read(g.src))
	})
	return g.value
}
