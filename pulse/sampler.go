package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

type Sampler struct {
	sampler *wgpu.Sampler
	desc    wgpu.SamplerDescriptor
}

func (s *Sampler) Descriptor() wgpu.SamplerDescriptor {
	return s.desc
}

func releaseSamplerOnEviction(_ wgpu.SamplerDescriptor, value *Sampler) {
	value.sampler.Release()
}

// Sampler returns a sampler matching your description. The sampler may be cached
// and is released together with the Context.
func (ctx *Context) Sampler(desc wgpu.SamplerDescriptor) (gpu.Sampler, error) {
	cachedSampler, ok := ctx.samplers.Get(desc)
	if ok {
		return cachedSampler, nil
	}

	sampler, err := ctx.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	cached := &Sampler{sampler: sampler, desc: desc}
	ctx.samplers.Add(desc, cached)

	return cached, nil
}
