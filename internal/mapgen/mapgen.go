package mapgen

import (
	"time"

	"github.com/chewxy/math32"
)

// Options controls procedural terrain generation. Width/Depth are in tiles; TileSize
// is the world size of one tile on X/Z and HeightScale the tallest block.
// Seed 0 uses a time-based seed. Octaves, Frequency, Lacunarity and Gain shape the
// fractal noise.
type Options struct {
	Width       int     `yaml:"width"`
	Depth       int     `yaml:"depth"`
	TileSize    float32 `yaml:"tile_size,omitempty"`
	HeightScale float32 `yaml:"height_scale,omitempty"`
	MinHeight   float32 `yaml:"min_height,omitempty"`

	Seed       int64   `yaml:"seed,omitempty"`
	Octaves    int     `yaml:"octaves,omitempty"`
	Frequency  float32 `yaml:"frequency,omitempty"`
	Lacunarity float32 `yaml:"lacunarity,omitempty"`
	Gain       float32 `yaml:"gain,omitempty"`
}

// DefaultOptions returns an 8x8 field of 2-unit tiles up to 1.5 units tall.
func DefaultOptions() Options {
	return Options{
		Width:       8,
		Depth:       8,
		TileSize:    2,
		HeightScale: 1.5,
		MinHeight:   0.25,
		Octaves:     4,
		Frequency:   0.08,
		Lacunarity:  2.0,
		Gain:        0.5,
	}
}

// Block is one terrain column: a box of Size centered at Position.
type Block struct {
	Position [3]float32
	Size     [3]float32
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TileSize <= 0 {
		o.TileSize = d.TileSize
	}
	if o.HeightScale <= 0 {
		o.HeightScale = d.HeightScale
	}
	if o.MinHeight <= 0 || o.MinHeight > o.HeightScale {
		o.MinHeight = math32.Min(d.MinHeight, o.HeightScale)
	}
	if o.Octaves <= 0 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	return o
}

// GenerateBlocks builds a heightfield of blocks resting on Y=0, centered on the origin
// in X/Z. Heights come from fractal value noise mapped to [MinHeight, HeightScale].
// Zero or negative Width/Depth yields no blocks.
func GenerateBlocks(opts Options) []Block {
	if opts.Width <= 0 || opts.Depth <= 0 {
		return nil
	}
	opts = opts.withDefaults()

	halfTile := opts.TileSize * 0.5
	startX := -float32(opts.Width)*halfTile + halfTile
	startZ := -float32(opts.Depth)*halfTile + halfTile

	blocks := make([]Block, 0, opts.Width*opts.Depth)
	for z := 0; z < opts.Depth; z++ {
		for x := 0; x < opts.Width; x++ {
			h := fractalValueNoise2D(float32(x)*opts.Frequency, float32(z)*opts.Frequency,
				opts.Seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			h = math32.Max(0, math32.Min(h, 1))
			height := opts.MinHeight + h*(opts.HeightScale-opts.MinHeight)
			if math32.IsNaN(height) || math32.IsInf(height, 0) || height <= 0 {
				height = opts.MinHeight
			}
			blocks = append(blocks, Block{
				Position: [3]float32{startX + float32(x)*opts.TileSize, height * 0.5, startZ + float32(z)*opts.TileSize},
				Size:     [3]float32{opts.TileSize, height, opts.TileSize},
			})
		}
	}
	return blocks
}

// fractalValueNoise2D layers octaves of value noise. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude, freq := float32(1), float32(1)
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math32.Floor(x))
	y0 := int32(math32.Floor(y))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	top := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	bottom := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(top, bottom, sy)
}

// hash2D maps a lattice point to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is 3t^2 - 2t^3 clamped to [0,1].
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
