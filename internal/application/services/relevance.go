package services

import (
	"strings"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
)

// Keyword groups used to decide whether a raw places hit is an animal
// care facility. Matching is substring-based on the place name, which
// is how the upstream data actually distinguishes 動物病院 from 病院.
var (
	animalKeywords = []string{"動物", "獣医", "ペット", "アニマル", "どうぶつ"}

	facilityKeywords = []string{"病院", "クリニック", "センター"}

	nonMedicalKeywords = []string{
		"ペットショップ", "専門店", "トリミング", "ホテル",
		"美容", "サロン", "ペットフード", "用品",
	}

	emergencyKeywords = []string{"夜間", "救急", "24時間", "緊急"}
)

// RelevanceFilter decides whether raw search hits are veterinary care
// facilities worth showing, and ranks emergency-oriented ones first.
type RelevanceFilter struct{}

// NewRelevanceFilter creates a new relevance filter
func NewRelevanceFilter() *RelevanceFilter {
	return &RelevanceFilter{}
}

// IsRelevant reports whether the place looks like an animal hospital.
// Human hospitals, human emergency rooms, human clinics and pet retail
// are rejected; everything must carry an animal keyword or the
// veterinary place type, plus a facility keyword.
func (f *RelevanceFilter) IsRelevant(place entities.PlaceSummary) bool {
	name := strings.ToLower(place.Name)

	hasAnimal := containsAny(name, animalKeywords)

	// Exclusion pass: facilities for humans, or animal businesses that
	// are not medical. Any animal marker in the name, hiragana spelling
	// included, keeps a facility out of the human bucket.
	if strings.Contains(name, "病院") && !hasAnimal {
		return false
	}
	if (strings.Contains(name, "救急") || strings.Contains(name, "emergency")) && !hasAnimal {
		return false
	}
	if strings.Contains(name, "クリニック") && !hasAnimal {
		return false
	}
	if containsAny(name, nonMedicalKeywords) {
		return false
	}

	// Inclusion pass: animal keyword or veterinary place type, combined
	// with something that reads as a medical facility.
	isVetType := hasType(place.Types, "veterinary_care")
	if !hasAnimal && !isVetType {
		return false
	}
	return isVetType || containsAny(name, facilityKeywords)
}

// Filter returns only the relevant places, preserving input order
func (f *RelevanceFilter) Filter(places []entities.PlaceSummary) []entities.PlaceSummary {
	out := make([]entities.PlaceSummary, 0, len(places))
	for _, p := range places {
		if f.IsRelevant(p) {
			out = append(out, p)
		}
	}
	return out
}

// IsEmergency reports whether the place name signals night or emergency
// availability. Used for ranking, not filtering.
func (f *RelevanceFilter) IsEmergency(place entities.PlaceSummary) bool {
	return containsAny(strings.ToLower(place.Name), emergencyKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasType(types []string, target string) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}
