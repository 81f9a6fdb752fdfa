package orion

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/figure/camera"
	"github.com/oliverbestmann/figure/glimpse"
	"github.com/oliverbestmann/figure/gpu"
	"github.com/oliverbestmann/figure/render"
	"github.com/pelletier/go-toml/v2"
)

// Config is the file based configuration of a scene. Zero values select the
// defaults of render.Options.
type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Grid   GridConfig   `toml:"grid"`
	Toggle ToggleConfig `toml:"toggle"`

	// ClearColor in srgb, including alpha
	ClearColor []float32 `toml:"clear_color"`

	// Texture is a png or jpeg file, relative to the config file.
	Texture string `toml:"texture"`

	// directory relative paths are resolved against
	baseDir string
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type CameraConfig struct {
	Eye    []float32 `toml:"eye"`
	Target []float32 `toml:"target"`
	FovY   float32   `toml:"fovy"`
	ZNear  float32   `toml:"znear"`
	ZFar   float32   `toml:"zfar"`
	Speed  float32   `toml:"speed"`
}

type GridConfig struct {
	Rows      int     `toml:"rows"`
	Cols      int     `toml:"cols"`
	Spacing   float32 `toml:"spacing"`
	Amplitude float32 `toml:"amplitude"`
	Frequency float32 `toml:"frequency"`
}

type ToggleConfig struct {
	// Key is the name of a glimpse.Key, like "space" or "tab"
	Key string `toml:"key"`

	// Mode is either "hold" or "flip"
	Mode string `toml:"mode"`

	// Single draws one copy of the mesh in the alternate variant
	Single bool `toml:"single"`
}

// LoadConfig reads a toml config. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	conf, err := ParseConfig(buf)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	conf.baseDir = filepath.Dir(path)

	return conf, nil
}

func ParseConfig(buf []byte) (Config, error) {
	var conf Config

	dec := toml.NewDecoder(bytes.NewReader(buf))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&conf); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func (c Config) windowSize() (int, int) {
	width := c.Window.Width
	if width <= 0 {
		width = 1000
	}

	height := c.Window.Height
	if height <= 0 {
		height = 600
	}

	return width, height
}

func (c Config) windowTitle() string {
	if c.Window.Title == "" {
		return "Figure"
	}

	return c.Window.Title
}

// Apply copies everything configured into opts.
func (c Config) Apply(opts *render.Options) error {
	if c.Camera.configured() {
		desc, err := c.Camera.descriptor()
		if err != nil {
			return err
		}

		opts.Camera = &desc
	}

	opts.CameraSpeed = c.Camera.Speed

	opts.Grid = render.InstanceGrid{
		Rows:      c.Grid.Rows,
		Cols:      c.Grid.Cols,
		Spacing:   c.Grid.Spacing,
		Amplitude: c.Grid.Amplitude,
		Frequency: c.Grid.Frequency,
	}

	if c.Toggle.Key != "" {
		key, ok := glimpse.ParseKey(c.Toggle.Key)
		if !ok {
			return fmt.Errorf("unknown toggle key %q", c.Toggle.Key)
		}

		opts.ToggleKey = key
	}

	switch strings.ToLower(c.Toggle.Mode) {
	case "", "hold":
		opts.ToggleMode = render.ToggleHold
	case "flip":
		opts.ToggleMode = render.ToggleFlip
	default:
		return fmt.Errorf("unknown toggle mode %q", c.Toggle.Mode)
	}

	opts.SingleAlternate = c.Toggle.Single

	if c.ClearColor != nil {
		if len(c.ClearColor) != 4 {
			return errors.New("clear_color needs four components")
		}

		color := gpu.ColorSRGBA(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], c.ClearColor[3])
		opts.ClearColor = &color
	}

	if c.Texture != "" {
		img, err := c.loadTexture()
		if err != nil {
			return err
		}

		opts.Texture = &img
	}

	return nil
}

func (c CameraConfig) configured() bool {
	return c.Eye != nil || c.Target != nil || c.FovY != 0 || c.ZNear != 0 || c.ZFar != 0
}

func (c CameraConfig) descriptor() (camera.Descriptor, error) {
	desc := camera.New(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}, 1)

	if c.Eye != nil {
		eye, err := vec3Of("camera.eye", c.Eye)
		if err != nil {
			return camera.Descriptor{}, err
		}

		desc.Eye = eye
	}

	if c.Target != nil {
		target, err := vec3Of("camera.target", c.Target)
		if err != nil {
			return camera.Descriptor{}, err
		}

		desc.Target = target
	}

	if c.FovY != 0 {
		desc.FovY = c.FovY
	}

	if c.ZNear != 0 {
		desc.ZNear = c.ZNear
	}

	if c.ZFar != 0 {
		desc.ZFar = c.ZFar
	}

	if desc.ZNear >= desc.ZFar {
		return camera.Descriptor{}, fmt.Errorf("camera.znear %f must be less than camera.zfar %f", desc.ZNear, desc.ZFar)
	}

	// the view matrix is undefined if there is no direction to look at
	forward := desc.Target.Sub(desc.Eye)
	if forward.Len() < 1e-6 {
		return camera.Descriptor{}, fmt.Errorf("camera.eye %v must differ from camera.target", desc.Eye)
	}

	if forward.Cross(desc.Up).Len() < 1e-6 {
		return camera.Descriptor{}, fmt.Errorf("camera must not look along its up axis %v", desc.Up)
	}

	return desc, nil
}

func vec3Of(name string, values []float32) (mgl32.Vec3, error) {
	if len(values) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s needs three components, got %d", name, len(values))
	}

	return mgl32.Vec3{values[0], values[1], values[2]}, nil
}

func (c Config) loadTexture() (gpu.Image, error) {
	path := c.Texture
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.baseDir, path)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return gpu.Image{}, fmt.Errorf("read texture: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return gpu.Image{}, fmt.Errorf("decode texture %q: %w", path, err)
	}

	return render.ImageOf(img), nil
}
