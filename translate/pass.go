package translate

import (
	"sync"

	"github.com/cgrenz/revamb/ir"
)

type Pass[T any] interface {
	Process(T)
}

func Process[T any](
	node T,
	passes [][]Pass[T], // sequence of parallelizable passes
	shouldEarlyExit func() bool, // optional
) {
	for _, parallelPasses := range passes {
		wg := sync.WaitGroup{}
		wg.Add(len(parallelPasses))
		for _, pass := range parallelPasses {
			go func(pass Pass[T]) {
				pass.Process(node)
				wg.Done()
			}(pass)
		}

		wg.Wait()

		if shouldEarlyExit != nil && shouldEarlyExit() {
			return
		}
	}
}

// ParallelProcessBlocks fans out one worker per basic block and reports
// whether any worker changed its block.  Safe only for block-local
// mutation; module-scope mutation must go through a serialized phase.
func ParallelProcessBlocks(
	module *ir.Module,
	process func(*ir.Block) bool,
) bool {
	blocks := []*ir.Block{}
	for _, fn := range module.Functions {
		blocks = append(blocks, fn.Blocks...)
	}

	changed := make([]bool, len(blocks))

	wg := sync.WaitGroup{}
	wg.Add(len(blocks))
	for idx, block := range blocks {
		go func(idx int, block *ir.Block) {
			changed[idx] = process(block)
			wg.Done()
		}(idx, block)
	}
	wg.Wait()

	for _, blockChanged := range changed {
		if blockChanged {
			return true
		}
	}
	return false
}
