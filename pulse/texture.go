package pulse

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/figure/gpu"
)

// Texture wraps a wgpu.Texture and an identity wgpu.TextureView.
type Texture struct {
	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	width, height uint32
	format        wgpu.TextureFormat
}

func (t *Texture) Width() uint32 {
	return t.width
}

func (t *Texture) Height() uint32 {
	return t.height
}

func (t *Texture) Format() wgpu.TextureFormat {
	return t.format
}

// Release releases the view and the texture. The texture must not be used
// afterwards.
func (t *Texture) Release() {
	if t.textureView != nil {
		t.textureView.Release()
		t.textureView = nil
	}

	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

func (ctx *Context) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	texture, err := ctx.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         desc.Label,
		Format:        desc.Format,
		Usage:         desc.Usage,
		SampleCount:   1,
		MipLevelCount: 1,
		Dimension:     wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
	})

	if err != nil {
		return nil, err
	}

	// now create a default texture view
	textureView, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("create view of %q: %w", desc.Label, err)
	}

	return &Texture{
		texture:     texture,
		textureView: textureView,
		width:       desc.Width,
		height:      desc.Height,
		format:      desc.Format,
	}, nil
}

// WriteTexture copies the pixels of img into the first mip level of texture.
// The image must cover the full texture.
func (ctx *Context) WriteTexture(texture gpu.Texture, img gpu.Image) error {
	t := texture.(*Texture)

	if img.Width != t.width || img.Height != t.height {
		return fmt.Errorf("image of %dx%d does not match texture of %dx%d",
			img.Width, img.Height, t.width, t.height)
	}

	dest := &wgpu.ImageCopyTexture{
		Texture:  t.texture,
		MipLevel: 0,
		Origin:   wgpu.Origin3D{},
		Aspect:   wgpu.TextureAspectAll,
	}

	layout := &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  img.Width * 4,
		RowsPerImage: img.Height,
	}

	size := &wgpu.Extent3D{
		Width:              img.Width,
		Height:             img.Height,
		DepthOrArrayLayers: 1,
	}

	// send data to the gpu
	if err := ctx.queue.WriteTexture(dest, img.Pix, layout, size); err != nil {
		return fmt.Errorf("write texture: %w", err)
	}

	return nil
}
