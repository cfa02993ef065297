package render

// EffectPass is one post-processing pass of a host pipeline.
type EffectPass interface {
	// Name identifies the pass within its chain.
	Name() string

	// Apply runs the pass on the host's device, reading src and writing
	// dst. Implementations that run entirely on bound framebuffers may
	// ignore the textures.
	Apply(device DeviceHandle, src, dst Texture) error
}

// ApplyEffects runs every pass of a chain in order, reading src and
// writing dst, and stops at the first failing pass.
func ApplyEffects(device DeviceHandle, chain EffectChain, src, dst Texture) error {
	for _, p := range chain.Passes() {
		if err := p.Apply(device, src, dst); err != nil {
			return err
		}
	}
	return nil
}

// EffectChain is the narrow capability a host post-processing pipeline
// exposes so external code can inject rendering targets into it. It is
// a pass-through interface: fontatlas never implements the pipeline
// itself, it only hands targets to whichever host object provides this.
type EffectChain interface {
	// AddFakeTarget registers an externally owned target under a name,
	// making it addressable by the chain's passes.
	AddFakeTarget(name string, target Texture)

	// Passes returns the ordered post-processing passes of the chain.
	Passes() []EffectPass
}
