package repository

import (
	"strings"

	"github.com/abelzeko/fishing-bot/internal/entities"
	"golang.org/x/text/cases"
)

// waterBodies is the fixed catalog of supported fishing locations.
// It is never modified at runtime; accessors hand out copies.
var waterBodies = [...]entities.WaterBody{
	{
		Name:       "Шебеньгское озеро",
		Latitude:   60.600,
		Longitude:  43.450,
		FishRating: 4,
		Depth:      "4-8 м",
		FishTypes:  []string{"щука", "окунь", "плотва"},
		PhotoURL:   "https://example.com/shebeng.jpg",
	},
	{
		Name:       "Озеро Ромашевское",
		Latitude:   60.489,
		Longitude:  43.352,
		FishRating: 3,
		Depth:      "5-10 м",
		FishTypes:  []string{"лещ", "окунь", "язь"},
		PhotoURL:   "https://example.com/romashev.jpg",
	},
}

// WaterBodies returns all water bodies in catalog order
func WaterBodies() []entities.WaterBody {
	result := make([]entities.WaterBody, 0, len(waterBodies))
	for _, wb := range waterBodies {
		result = append(result, clone(wb))
	}
	return result
}

// WaterBodyNames returns the display names in catalog order
func WaterBodyNames() []string {
	names := make([]string, 0, len(waterBodies))
	for _, wb := range waterBodies {
		names = append(names, wb.Name)
	}
	return names
}

// FindWaterBody looks up a water body by name, ignoring case and surrounding spaces
func FindWaterBody(name string) (entities.WaterBody, bool) {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(name))
	for _, wb := range waterBodies {
		if folder.String(wb.Name) == needle {
			return clone(wb), true
		}
	}
	return entities.WaterBody{}, false
}

// MatchWaterBody finds the water body mentioned in free text. A full name
// wins; otherwise a word that belongs to exactly one catalog name is enough
// (so "ромашевское" matches but the shared word "озеро" does not).
func MatchWaterBody(text string) (entities.WaterBody, bool) {
	folder := cases.Fold()
	haystack := folder.String(text)
	if strings.TrimSpace(haystack) == "" {
		return entities.WaterBody{}, false
	}

	for _, wb := range waterBodies {
		if strings.Contains(haystack, folder.String(wb.Name)) {
			return clone(wb), true
		}
	}

	owners := make(map[string][]int)
	for i, wb := range waterBodies {
		for _, word := range strings.Fields(folder.String(wb.Name)) {
			owners[word] = append(owners[word], i)
		}
	}

	words := strings.FieldsFunc(haystack, func(r rune) bool {
		return strings.ContainsRune(" \t\n,.!?;:\"'()", r)
	})
	for _, word := range words {
		if idx := owners[word]; len(idx) == 1 {
			return clone(waterBodies[idx[0]]), true
		}
	}

	return entities.WaterBody{}, false
}

func clone(wb entities.WaterBody) entities.WaterBody {
	wb.FishTypes = append([]string(nil), wb.FishTypes...)
	return wb
}
