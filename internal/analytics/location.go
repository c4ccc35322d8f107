package analytics

import (
	"math"
	"sort"

	"MatchBoard/internal/model"
)

// LocationGoals 某场地的进球汇总及地图标记半径
type LocationGoals struct {
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	LocationName   string  `json:"location_name"`
	LocationColour string  `json:"location_colour"`
	Goals          int     `json:"goals"`
	Radius         float64 `json:"radius"`
}

// Bounds 覆盖所有标记点的经纬度范围，供地图自动缩放
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// LocationTally 按场地汇总的进球
type LocationTally struct {
	Points []LocationGoals `json:"points"`
	Bounds *Bounds         `json:"bounds,omitempty"`
}

// MarkerRadius 地图标记半径 ln(goals+1)*10，goals 为 0 时半径为 0
func MarkerRadius(goals int) float64 {
	return math.Log(float64(goals)+1) * 10
}

type locationKey struct {
	lat, lon     float64
	name, colour string
}

func (k locationKey) less(o locationKey) bool {
	if k.lat != o.lat {
		return k.lat < o.lat
	}
	if k.lon != o.lon {
		return k.lon < o.lon
	}
	if k.name != o.name {
		return k.name < o.name
	}
	return k.colour < o.colour
}

// GoalsByLocation 按 (lat, lon, location_name, location_colour) 汇总本方进球，并计算包围框
func GoalsByLocation(records []model.MatchRecord) LocationTally {
	goals := make(map[locationKey]int)
	for _, m := range records {
		k := locationKey{lat: m.Lat, lon: m.Lon, name: m.LocationName, colour: m.LocationColour}
		goals[k] += m.MVGoals
	}
	keys := make([]locationKey, 0, len(goals))
	for k := range goals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	tally := LocationTally{Points: make([]LocationGoals, 0, len(keys))}
	for _, k := range keys {
		g := goals[k]
		tally.Points = append(tally.Points, LocationGoals{
			Lat:            k.lat,
			Lon:            k.lon,
			LocationName:   k.name,
			LocationColour: k.colour,
			Goals:          g,
			Radius:         MarkerRadius(g),
		})
		if tally.Bounds == nil {
			tally.Bounds = &Bounds{South: k.lat, North: k.lat, West: k.lon, East: k.lon}
			continue
		}
		tally.Bounds.South = math.Min(tally.Bounds.South, k.lat)
		tally.Bounds.North = math.Max(tally.Bounds.North, k.lat)
		tally.Bounds.West = math.Min(tally.Bounds.West, k.lon)
		tally.Bounds.East = math.Max(tally.Bounds.East, k.lon)
	}
	return tally
}
