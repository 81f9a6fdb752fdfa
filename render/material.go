package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

// DefaultSampler filters linearly when magnifying and picks the nearest
// texel when minifying.
var DefaultSampler = wgpu.SamplerDescriptor{
	AddressModeU:  wgpu.AddressModeClampToEdge,
	AddressModeV:  wgpu.AddressModeClampToEdge,
	AddressModeW:  wgpu.AddressModeClampToEdge,
	MagFilter:     wgpu.FilterModeLinear,
	MinFilter:     wgpu.FilterModeNearest,
	MipmapFilter:  wgpu.MipmapFilterModeNearest,
	LodMinClamp:   0,
	LodMaxClamp:   32,
	MaxAnisotropy: 1,
}

// Material is a texture and its sampler, bound together as bind group 0.
type Material struct {
	texture   gpu.Texture
	bindGroup gpu.BindGroup
}

// NewMaterial uploads the pixels of img into a new srgb texture and binds it
// with a sampler matching samplerDesc against layout.
func NewMaterial(dev gpu.Device, layout gpu.BindGroupLayout, label string, img gpu.Image, samplerDesc wgpu.SamplerDescriptor) (*Material, error) {
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("material %q: image is empty", label)
	}

	if expected := int(img.Width) * int(img.Height) * 4; len(img.Pix) != expected {
		return nil, fmt.Errorf("material %q: expected %d bytes of rgba pixels, got %d", label, expected, len(img.Pix))
	}

	texture, err := dev.CreateTexture(gpu.TextureDescriptor{
		Label:  label + "Texture",
		Width:  img.Width,
		Height: img.Height,
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:  wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	if err := dev.WriteTexture(texture, img); err != nil {
		texture.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	sampler, err := dev.Sampler(samplerDesc)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create sampler: %w", err)
	}

	bindGroup, err := dev.CreateBindGroup(gpu.BindGroupDescriptor{
		Label:  label + "BindGroup",
		Layout: layout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, Texture: texture},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	return &Material{texture: texture, bindGroup: bindGroup}, nil
}

func (m *Material) BindGroup() gpu.BindGroup {
	return m.bindGroup
}

func (m *Material) Texture() gpu.Texture {
	return m.texture
}

func (m *Material) Release() {
	m.bindGroup.Release()
	m.texture.Release()
}

// ImageOf converts any decoded image into tightly packed rgba pixels.
func ImageOf(img image.Image) gpu.Image {
	rgba, ok := img.(*image.RGBA)

	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		// convert image to rgba
		bounds := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}

	return gpu.Image{
		Width:  uint32(rgba.Rect.Dx()),
		Height: uint32(rgba.Rect.Dy()),
		Pix:    rgba.Pix,
	}
}

// Checkerboard generates a texture of alternating cells of size cell.
func Checkerboard(width, height, cell int, a, b color.Color) gpu.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cell = max(1, cell)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}

			img.Set(x, y, c)
		}
	}

	return ImageOf(img)
}
