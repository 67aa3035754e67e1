// Package scene assembles the per-stream render parameters for one time step.
//
// A [Builder] is created once from a validated configuration and then called
// once per render. Each call partitions the streams into active and
// background sets, maps every stream's sampled value into the color domain,
// asks the resize policy for one multiplier per role, and returns a fresh
// [Scene]:
//
//	b, err := scene.NewBuilder(cfg)
//	st := resize.NewState()
//	for i, frame := range frames {
//	    sc, err := b.Build(frame, i, st)
//	    ...
//	}
//
// The builder holds no per-render state; the resize counters live in the
// [resize.State] threaded through the calls.
package scene
