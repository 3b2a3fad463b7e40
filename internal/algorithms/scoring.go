package algorithms

import (
	"math"
	"sort"

	"sublet_backend/internal/models"
)

// ScoringParams - настраиваемые коэффициенты мультипликативной модели.
// Абсолютное значение скора ничего не значит, важен только порядок.
type ScoringParams struct {
	BaseScore           float64
	DistanceFactorBase  float64 // > 1
	PriceFactorBase     float64 // < 1
	BathroomFactorBase  float64 // > 1
	UtilitiesAdjustment float64
	BuildingTypeFactor  float64
	GenderFactor        float64

	// LegacyDistanceGrowth включает исторический вариант base^(+km),
	// при котором скор растет с расстоянием. См. DistanceFactor.
	LegacyDistanceGrowth bool
}

func DefaultScoringParams() ScoringParams {
	return ScoringParams{
		BaseScore:           100.0,
		DistanceFactorBase:  1.01,
		PriceFactorBase:     0.995,
		BathroomFactorBase:  1.2,
		UtilitiesAdjustment: 100,
		BuildingTypeFactor:  1.2,
		GenderFactor:        1.5,
	}
}

// ScoreBreakdown - множители, из которых сложился итоговый скор
type ScoreBreakdown struct {
	Base         float64 `json:"base"`
	Distance     float64 `json:"distance"`
	Price        float64 `json:"price"`
	Bathroom     float64 `json:"bathroom"`
	BuildingType float64 `json:"building_type"`
	Gender       float64 `json:"gender"`
	Total        float64 `json:"total"`
}

// DistanceFactor по умолчанию равен base^(-km) и строго убывает с ростом km:
// при прочих равных ближний листинг выше. С LegacyDistanceGrowth множитель
// равен base^(+km), как в первой версии сервиса; на примере из документации
// (10 км, эффективная цена 1500 при бюджете 1400, без предпочтений по полу) это дает 100.35
// вместо 82.26. Флаг выставляется через scoring.legacy_distance_growth.
func (p ScoringParams) DistanceFactor(km float64) float64 {
	if p.LegacyDistanceGrowth {
		return math.Pow(p.DistanceFactorBase, km)
	}
	return math.Pow(p.DistanceFactorBase, -km)
}

// EffectivePrice - цена с поправкой на коммунальные платежи
func (p ScoringParams) EffectivePrice(askingPrice float64, utilitiesIncluded bool) float64 {
	if utilitiesIncluded {
		return askingPrice
	}
	return askingPrice + p.UtilitiesAdjustment
}

// PriceFactor строго убывает с ростом effectivePrice. Цена ниже бюджета дает множитель > 1.
func (p ScoringParams) PriceFactor(effectivePrice, budget float64) float64 {
	return math.Pow(p.PriceFactorBase, effectivePrice-budget)
}

// BathroomFactor строго растет с числом ванных в листинге.
func (p ScoringParams) BathroomFactor(listingBathrooms, desiredBathrooms int) float64 {
	return math.Pow(p.BathroomFactorBase, float64(listingBathrooms-desiredBathrooms))
}

// BuildingTypeMultiplier дает бонус только при точном совпадении заданных типов.
func (p ScoringParams) BuildingTypeMultiplier(listingType, renterType *uint) float64 {
	if listingType != nil && renterType != nil && *listingType == *renterType {
		return p.BuildingTypeFactor
	}
	return 1
}

// GenderMultiplier дает бонус, если у листинга нет предпочтения, арендатор
// пол не указал или предпочтение совпадает.
func (p ScoringParams) GenderMultiplier(target, gender *models.Gender) float64 {
	if target == nil || gender == nil || *target == *gender {
		return p.GenderFactor
	}
	return 1
}

// Score считает совместимость листинга и арендатора на расстоянии distanceKm.
// Результат всегда строго положителен.
func (p ScoringParams) Score(l *models.Listing, r *models.RenterProfile, distanceKm float64) ScoreBreakdown {
	b := ScoreBreakdown{
		Base:         p.BaseScore,
		Distance:     p.DistanceFactor(distanceKm),
		Price:        p.PriceFactor(p.EffectivePrice(l.AskingPrice, l.UtilitiesIncl), r.Budget),
		Bathroom:     p.BathroomFactor(l.NumBathrooms, r.DesiredBathrooms),
		BuildingType: p.BuildingTypeMultiplier(l.BuildingTypeID, r.BuildingTypeID),
		Gender:       p.GenderMultiplier(l.TargetGender, r.Gender),
	}
	b.Total = b.Base * b.Distance * b.Price * b.Bathroom * b.BuildingType * b.Gender
	// экстремальные разрывы в цене уводят произведение в underflow
	if b.Total <= 0 || math.IsNaN(b.Total) {
		b.Total = math.SmallestNonzeroFloat64
	}
	return b
}

// Scored - кандидат с расстоянием до актора и скором
type Scored[T any] struct {
	Item       T
	DistanceKm float64
	Score      ScoreBreakdown
}

// RankMatches сортирует по убыванию скора. Порядок равных скоров
// повторяет порядок выдачи хранилища, а он не определен.
func RankMatches[T any](matches []Scored[T]) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score.Total > matches[j].Score.Total
	})
}
