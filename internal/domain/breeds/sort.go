package breeds

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortNone       SortKey = ""
	SortByName     SortKey = "name"
	SortByWeight   SortKey = "weight.metric"
	SortByLifeSpan SortKey = "life_span"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKeys en el orden en que se muestran los controles.
var SortKeys = []SortKey{SortByName, SortByWeight, SortByLifeSpan}

// ParseSortKey acepta la clave canónica y algunos alias cómodos para CLI.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortByName, nil
	case "weight.metric", "weight":
		return SortByWeight, nil
	case "life_span", "lifespan", "life-span":
		return SortByLifeSpan, nil
	default:
		return SortNone, ErrUnknownSortKey
	}
}

func (k SortKey) Label() string {
	switch k {
	case SortByName:
		return "Name"
	case SortByWeight:
		return "Weight"
	case SortByLifeSpan:
		return "Lifespan"
	default:
		return ""
	}
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortState: clave activa (o ninguna) + dirección. Inicial (none, asc).
type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

func InitialSortState() SortState {
	return SortState{Key: SortNone, Direction: Asc}
}

// Toggle: misma clave invierte la dirección; otra clave vuelve a asc.
// La dirección devuelta es la que se aplica en este mismo click.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Direction: s.Direction.Reverse()}
	}
	return SortState{Key: key, Direction: Asc}
}

// Sort devuelve una copia ordenada (estable) de items.
// Peso y esperanza de vida se comparan como rangos numéricos "lo - hi";
// los valores que no parsean van al final en ambas direcciones.
func Sort(items []EnrichedBreed, key SortKey, dir Direction) []EnrichedBreed {
	out := slices.Clone(items)

	switch key {
	case SortByName:
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b EnrichedBreed) int {
			c := col.CompareString(a.Name, b.Name)
			if dir == Desc {
				return -c
			}
			return c
		})
	case SortByWeight:
		slices.SortStableFunc(out, func(a, b EnrichedBreed) int {
			return compareRanges(metricWeight(a), metricWeight(b), dir)
		})
	case SortByLifeSpan:
		slices.SortStableFunc(out, func(a, b EnrichedBreed) int {
			return compareRanges(a.LifeSpan, b.LifeSpan, dir)
		})
	}
	return out
}

func metricWeight(b EnrichedBreed) string {
	if b.Weight == nil {
		return ""
	}
	return b.Weight.Metric
}

func compareRanges(a, b string, dir Direction) int {
	ra, okA := ParseRange(a)
	rb, okB := ParseRange(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}

	c := ra.compare(rb)
	if dir == Desc {
		return -c
	}
	return c
}

// Range es un intervalo numérico tipo "12 - 16".
type Range struct {
	Low  float64
	High float64
}

func (r Range) compare(o Range) int {
	switch {
	case r.Low < o.Low:
		return -1
	case r.Low > o.Low:
		return 1
	case r.High < o.High:
		return -1
	case r.High > o.High:
		return 1
	}
	return 0
}

// ParseRange parsea "lo - hi" o un número suelto ("15").
func ParseRange(s string) (Range, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "–", "-"))
	if s == "" {
		return Range{}, false
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		hi = lo
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, false
	}
	if h < l {
		l, h = h, l
	}
	return Range{Low: l, High: h}, true
}
