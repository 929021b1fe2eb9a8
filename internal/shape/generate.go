package shape

import (
	"math"
	"math/rand/v2"

	"polydock/internal/geom"
)

// GenConfig controls the random polygon source used for default data.
type GenConfig struct {
	ViewWidth  float64
	ViewHeight float64
	MinSides   int
	MaxSides   int
	MinCount   int
	MaxCount   int
	Style      Style
}

func DefaultGenConfig(st Style) GenConfig {
	return GenConfig{
		ViewWidth:  100,
		ViewHeight: 100,
		MinSides:   4,
		MaxSides:   8,
		MinCount:   5,
		MaxCount:   20,
		Style:      st,
	}
}

// Generate builds one star-shaped polygon around the centre of the view box:
// n vertices at jittered angles and random radii, rounded to whole units.
func Generate(rng *rand.Rand, id int, cfg GenConfig) Shape {
	n := cfg.MinSides
	if cfg.MaxSides > cfg.MinSides {
		n += rng.IntN(cfg.MaxSides - cfg.MinSides + 1)
	}
	if n < 3 {
		n = 3
	}
	maxLen := math.Min(cfg.ViewWidth, cfg.ViewHeight) / 2

	points := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		jitter := (rng.Float64()*2 - 1) * math.Pi / float64(n)
		fi := 2*math.Pi*float64(i)/float64(n) + jitter
		l := maxLen/3 + rng.Float64()*(maxLen-maxLen/3)
		points = append(points, geom.Point{
			X: math.Round(math.Sin(fi)*l + cfg.ViewWidth/2),
			Y: math.Round(math.Cos(fi)*l + cfg.ViewHeight/2),
		})
	}
	s, _ := New(id, points, cfg.Style.Fill, cfg.Style.Stroke, cfg.Style.StrokeWidth)
	return s
}

// GenerateSet returns between MinCount and MaxCount shapes with ids that are
// unique within the set and do not collide with any id in taken.
func GenerateSet(rng *rand.Rand, cfg GenConfig, taken map[int]bool) []Shape {
	count := cfg.MinCount
	if cfg.MaxCount > cfg.MinCount {
		count += rng.IntN(cfg.MaxCount - cfg.MinCount + 1)
	}
	seen := make(map[int]bool, count+len(taken))
	for id := range taken {
		seen[id] = true
	}
	out := make([]Shape, 0, count)
	for len(out) < count {
		id := 100000 + rng.IntN(900000)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Generate(rng, id, cfg))
	}
	return out
}
