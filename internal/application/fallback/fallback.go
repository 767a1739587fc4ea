// Package fallback holds the substitute artifacts degradable stages fall back
// to, and the selection policy over them. Selection is a pure function of the
// random source so runs can be replayed with a seeded source.
package fallback

import (
	"math/rand"

	"github.com/aescanero/shortcast/pkg/domain"
)

// Palette is a set of colors for a procedural visual, in ffmpeg 0xRRGGBB notation
type Palette struct {
	Name       string
	Background string
	Stripe     string
	Accent     string
}

// Topics is the internal pool of evergreen topics used when trending research is unavailable
var Topics = []domain.TopicIdea{
	{
		Title:   "Robot surgeons now outperform humans in microsurgery tests",
		Summary: "Autonomous surgical robots completed 97% of microsuture tasks faster than leading surgeons.",
		Angle:   "Highlight precision, speed, and what it means when robots master steady hands.",
		Sources: []domain.Source{
			{Title: "MIT Technology Review", URL: "https://www.technologyreview.com/"},
			{Title: "Nature Robotics", URL: "https://www.nature.com/natmachintell/"},
		},
	},
	{
		Title:   "Quantum AI lab announces qubit leap that slashes training power",
		Summary: "Researchers combined quantum annealing with AI chips to cut energy costs by 37%.",
		Angle:   "Focus on the sustainability angle and the idea of greener AGI.",
		Sources: []domain.Source{
			{Title: "IEEE Spectrum", URL: "https://spectrum.ieee.org/"},
			{Title: "Quantum Magazine", URL: "https://www.quantamagazine.org/"},
		},
	},
	{
		Title:   "Self-healing nanobots designed to patrol human bloodstream",
		Summary: "New nanobots repair themselves mid-mission, enabling continuous internal diagnostics.",
		Angle:   "Lean into the sci-fi visual of nanobot patrols keeping us alive.",
		Sources: []domain.Source{
			{Title: "Wired", URL: "https://www.wired.com/"},
			{Title: "Science Advances", URL: "https://www.science.org/journal/sciadv"},
		},
	},
}

// Palettes is the pool of procedural visual palettes
var Palettes = []Palette{
	{Name: "midnight", Background: "0x101425", Stripe: "0x1f2940", Accent: "0x12f7ff"},
	{Name: "abyss", Background: "0x0d0d15", Stripe: "0x14213d", Accent: "0xff2e63"},
	{Name: "void", Background: "0x000000", Stripe: "0x1f2940", Accent: "0x7b2cbf"},
}

// PickTopic returns a copy of a topic drawn from pool, tagged as fallback.
// An empty pool draws from Topics.
func PickTopic(r *rand.Rand, pool []domain.TopicIdea) *domain.TopicIdea {
	if len(pool) == 0 {
		pool = Topics
	}
	picked := pool[r.Intn(len(pool))]

	topic := picked
	topic.Sources = append([]domain.Source(nil), picked.Sources...)
	topic.Provenance = domain.TopicProvenanceFallback
	return &topic
}

// PickPalette returns a palette drawn from Palettes
func PickPalette(r *rand.Rand) Palette {
	return Palettes[r.Intn(len(Palettes))]
}
