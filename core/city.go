package core

import (
	"fmt"
	"path"
	"sort"

	"github.com/codecity/codecity/schema"
)

// BuildCity derives the 3D city payload from the aggregated result.
// Every file with metrics becomes a building; every correlation group
// becomes a road; districts follow the directory structure. The derivation
// rules are a fixed contract with the renderer.
func BuildCity(r *UnifiedResult) schema.CityScape {
	city := schema.CityScape{ProjectRoot: r.ProjectRoot}

	districts := make(map[string][]string)
	districtRisk := make(map[string]int)

	for _, p := range r.SortedPaths() {
		metrics := r.FileMetrics[p]
		level := metrics.RiskLevel()
		building := schema.Building{
			ID:            fmt.Sprintf("bld:%s", p),
			CanonicalPath: p,
			District:      districtFor(p),
			Shape:         schema.ShapeForRisk(level),
			Height:        metrics.IssueCount,
			RiskScore:     metrics.HotspotScore,
			RiskLevel:     level,
		}
		city.Buildings = append(city.Buildings, building)

		districts[building.District] = append(districts[building.District], building.ID)
		if metrics.HotspotScore > districtRisk[building.District] {
			districtRisk[building.District] = metrics.HotspotScore
		}
	}

	for i := range r.Groups {
		group := &r.Groups[i]
		city.Roads = append(city.Roads, schema.Road{
			ID:            fmt.Sprintf("road:%s", group.ID),
			GroupID:       group.ID,
			CanonicalPath: group.CanonicalPath,
			Weight:        float64(group.RiskScore) / 100.0,
			MemberCount:   group.MemberCount(),
		})
	}
	sort.Slice(city.Roads, func(a, b int) bool { return city.Roads[a].ID < city.Roads[b].ID })

	names := make([]string, 0, len(districts))
	for name := range districts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		city.Districts = append(city.Districts, schema.District{
			Name:      name,
			Buildings: districts[name],
			RiskScore: districtRisk[name],
		})
	}
	return city
}

// districtFor maps a canonical path to its district directory.
func districtFor(canonical string) string {
	return path.Dir(canonical)
}
