// Package geo считает расстояния по поверхности Земли.
package geo

import "math"

// EarthRadiusKm - средний радиус Земли
const EarthRadiusKm = 6371.0

// Point - координаты в градусах
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineKm возвращает расстояние по большому кругу в километрах.
// Координаты вне [-90,90]/[-180,180] не проверяются.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	// округление может дать a чуть больше 1 для антиподов
	if a > 1 {
		a = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// DistanceKm - расстояние от p до q
func (p Point) DistanceKm(q Point) float64 {
	return HaversineKm(p.Lat, p.Lng, q.Lat, q.Lng)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
