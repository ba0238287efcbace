package geo

import (
	"math"
)

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates given in degrees.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BBox is a latitude/longitude bounding box. When the longitude span crosses
// the antimeridian, MinLng is greater than MaxLng.
type BBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the coordinate falls within the box, handling
// boxes that wrap the antimeridian.
func (b BBox) Contains(lat, lng float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MinLng <= b.MaxLng {
		return lng >= b.MinLng && lng <= b.MaxLng
	}
	return lng >= b.MinLng || lng <= b.MaxLng
}

// BoundingBox returns the box that encloses a circle of radiusKm around the
// given center. It is a cheap prefilter; callers refine with HaversineKm.
func BoundingBox(lat, lng, radiusKm float64) BBox {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi

	box := BBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
	}
	if box.MinLat < -90 {
		box.MinLat = -90
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
	}

	// longitude degrees shrink with latitude; use the widest latitude in the box
	absLat := math.Max(math.Abs(box.MinLat), math.Abs(box.MaxLat))
	cosLat := math.Cos(absLat * math.Pi / 180)
	if cosLat < 1e-9 {
		// box touches a pole, every longitude is inside
		box.MinLng = -180
		box.MaxLng = 180
		return box
	}

	dLng := radiusKm / (earthRadiusKm * cosLat) * 180 / math.Pi
	if dLng >= 180 {
		box.MinLng = -180
		box.MaxLng = 180
		return box
	}

	box.MinLng = normalizeLng(lng - dLng)
	box.MaxLng = normalizeLng(lng + dLng)
	return box
}

func normalizeLng(lng float64) float64 {
	for lng > 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// Point is an identified coordinate to be clustered.
type Point struct {
	ID  string
	Lat float64
	Lng float64
}

// Cluster is a group of points sharing a grid cell at a given zoom level.
// Lat and Lng are the centroid of the member points.
type Cluster struct {
	Lat   float64  `json:"latitude"`
	Lng   float64  `json:"longitude"`
	Count int      `json:"count"`
	IDs   []string `json:"ids,omitempty"`
}

// gridCellsAtZoom returns the number of grid cells along the longitude axis
// for a web-mercator-style zoom level.
func gridCellsAtZoom(zoom int) float64 {
	return math.Exp2(float64(zoom)) * 2
}

// GridCluster buckets points into a fixed grid whose cell size depends on the
// zoom level, then returns one cluster per non-empty cell with the centroid of
// its members. Clusters with a single member keep that member's exact position.
func GridCluster(points []Point, zoom int) []Cluster {
	cells := gridCellsAtZoom(zoom)
	cellWidth := 360 / cells
	cellHeight := 180 / cells

	type bucket struct {
		sumLat float64
		sumLng float64
		ids    []string
	}

	buckets := map[[2]int]*bucket{}
	order := [][2]int{}
	for _, p := range points {
		key := [2]int{
			int(math.Floor((p.Lat + 90) / cellHeight)),
			int(math.Floor((p.Lng + 180) / cellWidth)),
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			order = append(order, key)
		}
		b.sumLat += p.Lat
		b.sumLng += p.Lng
		b.ids = append(b.ids, p.ID)
	}

	clusters := make([]Cluster, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		n := len(b.ids)
		clusters = append(clusters, Cluster{
			Lat:   b.sumLat / float64(n),
			Lng:   b.sumLng / float64(n),
			Count: n,
			IDs:   b.ids,
		})
	}
	return clusters
}
