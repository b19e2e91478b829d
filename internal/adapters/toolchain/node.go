package toolchain

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/baker/internal/core/ports"
)

const RunnerNodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.Runner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Runner, error) {
			return NewExecRunner(), nil
		},
	})
}
