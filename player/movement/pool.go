package movement

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &movementContext{}
	},
}

func newCtx(m *Move, opts *Options) *movementContext {
	ctx := ctxPool.Get().(*movementContext)
	ctx.m = m
	ctx.phys = opts.Physics
	ctx.debug = opts.Debugf
	return ctx
}

func putCtx(ctx *movementContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *movementContext) reset() {
	ctx.m = nil
	ctx.phys = Physics{}
	ctx.debug = nil
	ctx.origin = mgl32.Vec3{}
	ctx.velocity = mgl32.Vec3{}
	ctx.dt = 0
	ctx.forward = mgl32.Vec3{}
	ctx.right = mgl32.Vec3{}
	ctx.up = mgl32.Vec3{}
}
