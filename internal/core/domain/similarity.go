package domain

import "math"

// Бонус за каждый amenity, включенный у обеих сторон.
const amenityMatchBonus = 0.1

// SimilarityScore вычисляет меру схожести двух объектов недвижимости.
// Каждое структурное измерение (площадь, спальни, санузлы) дает вклад
// в (0, 1], убывающий с ростом абсолютной разницы; точное совпадение дает
// ровно 1. Совпадающие amenities добавляют по 0.1 за пару true/true —
// amenity, которого нет у одной из сторон, ничего не штрафует и ничего
// не добавляет.
//
// Разницы считаются по модулю и не нормализуются по масштабу: разница в
// 10 единиц площади весит одинаково при базе 100 и 10000. Это сознательное
// упрощение исходной модели, менять его нельзя — сломается совместимость
// с уже выданными оценками.
func SimilarityScore(target, candidate Property) float64 {
	score := 1 / (1 + math.Abs(target.Size-candidate.Size))
	score += 1 / (1 + math.Abs(float64(target.Bedrooms-candidate.Bedrooms)))
	score += 1 / (1 + math.Abs(float64(target.Bathrooms-candidate.Bathrooms)))

	for name, enabled := range target.Amenities {
		if enabled && candidate.Amenities[name] {
			score += amenityMatchBonus
		}
	}

	return score
}
