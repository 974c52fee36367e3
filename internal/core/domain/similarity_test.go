package domain

import (
	"math"
	"testing"
)

const scoreEps = 1e-12

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < scoreEps
}

func TestSimilarityScoreCloseCandidate(t *testing.T) {
	target := Property{
		Size: 1000, Bedrooms: 2, Bathrooms: 2,
		Amenities: map[string]bool{"pool": true, "wifi": false},
	}
	candidate := Property{
		Size: 990, Bedrooms: 3, Bathrooms: 1,
		Amenities: map[string]bool{"pool": true, "wifi": true},
	}

	// 1/(1+10) + 1/(1+1) + 1/(1+1) + 0.1 за общий pool; wifi у цели false.
	want := 1.0/11 + 0.5 + 0.5 + 0.1
	got := SimilarityScore(target, candidate)
	if !almostEqual(got, want) {
		t.Errorf("score: got %v, want %v", got, want)
	}
}

func TestSimilarityScoreIdenticalStructure(t *testing.T) {
	target := Property{
		Size: 850, Bedrooms: 3, Bathrooms: 2,
		Amenities: map[string]bool{"wifi": true, "pool": false},
	}
	candidate := Property{
		Size: 850, Bedrooms: 3, Bathrooms: 2,
		Amenities: map[string]bool{"wifi": true, "gym": true},
	}

	got := SimilarityScore(target, candidate)
	if !almostEqual(got, 3.1) {
		t.Errorf("score: got %v, want 3.1", got)
	}
}

func TestSimilarityScoreDeterministic(t *testing.T) {
	target := Property{Size: 1200, Bedrooms: 4, Bathrooms: 3, Amenities: map[string]bool{"pool": true}}
	candidate := Property{Size: 1150, Bedrooms: 2, Bathrooms: 2, Amenities: map[string]bool{"pool": true}}

	first := SimilarityScore(target, candidate)
	for i := 0; i < 100; i++ {
		if got := SimilarityScore(target, candidate); got != first {
			t.Fatalf("score changed between identical calls: %v vs %v", got, first)
		}
	}
}

func TestSimilarityScoreStructuralTermsSymmetric(t *testing.T) {
	a := Property{Size: 700, Bedrooms: 1, Bathrooms: 1}
	b := Property{Size: 930, Bedrooms: 4, Bathrooms: 2}

	if got, want := SimilarityScore(a, b), SimilarityScore(b, a); !almostEqual(got, want) {
		t.Errorf("structural terms not symmetric: %v vs %v", got, want)
	}
}

func TestSimilarityScoreAmenitiesRewardOnly(t *testing.T) {
	base := Property{Size: 500, Bedrooms: 2, Bathrooms: 1}

	target := base
	target.Amenities = map[string]bool{"wifi": true}
	candidate := base
	candidate.Amenities = map[string]bool{"wifi": false, "pool": true, "gym": true}

	// Ни одной пары true/true: бонуса нет, штрафа за лишние amenities тоже.
	if got := SimilarityScore(target, candidate); !almostEqual(got, 3.0) {
		t.Errorf("expected no amenity bonus, got %v", got)
	}

	// У кандидата wifi включается — появляется ровно один бонус.
	candidate.Amenities["wifi"] = true
	if got := SimilarityScore(target, candidate); !almostEqual(got, 3.1) {
		t.Errorf("expected single amenity bonus, got %v", got)
	}

	// Асимметрия: перенос true на другую сторону меняет аменити-слагаемое.
	if got, want := SimilarityScore(target, Property{Size: 500, Bedrooms: 2, Bathrooms: 1}), 3.0; !almostEqual(got, want) {
		t.Errorf("candidate without amenities: got %v, want %v", got, want)
	}
}

func TestSimilarityScoreBounds(t *testing.T) {
	target := Property{Size: 100, Bedrooms: 0, Bathrooms: 0}
	candidate := Property{Size: 100000, Bedrooms: 50, Bathrooms: 30}

	got := SimilarityScore(target, candidate)
	if got <= 0 {
		t.Errorf("structural terms must stay positive, got %v", got)
	}
	if got > 3 {
		t.Errorf("without amenities score cannot exceed 3, got %v", got)
	}

	// Идеальное структурное совпадение дает ровно 1 на каждое измерение.
	if got := SimilarityScore(target, target); got != 3.0 {
		t.Errorf("perfect match: got %v, want 3.0", got)
	}
}
