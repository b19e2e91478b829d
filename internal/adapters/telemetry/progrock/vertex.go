package progrock

import (
	"io"

	"github.com/vito/progrock"
	"go.trai.ch/baker/internal/core/ports"
)

// Vertex implements ports.Job wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

var _ ports.Job = (*Vertex)(nil)

// Stdout returns a writer capturing the tool's standard output.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer capturing the tool's error output.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// Done marks the vertex as finished, successfully or with an error.
func (v *Vertex) Done(err error) {
	v.vertex.Done(err)
}
