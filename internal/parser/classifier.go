package parser

import (
	"strings"

	"orientinsight/internal/model"
)

// Country and keyword tokens in normalized form (see NormalizeText).
const (
	countryPrimary    = "usbekistan"
	countryExtension  = "turkmenistan"
	countryTajikistan = "tadschikistan"
	countryKazakhstan = "kasachstan"
	countryKyrgyzstan = "kirgistan"

	keywordComfort   = "komfort"      // product tier
	keywordExtension = "verlaengerung" // extension trip marker
	keywordSilkRoad  = "seidenstrasse" // generic product family
)

// classifierRule is one entry of the ordered rule chain. First match wins;
// order matters because some signatures are textual subsets of others.
type classifierRule struct {
	name     string
	category model.TourCategory
	match    func(text string) bool
}

var classifierRules = []classifierRule{
	{
		name:     "five-country route",
		category: model.CategoryD,
		match: func(text string) bool {
			return ContainsAll(text, countryExtension, countryPrimary,
				countryTajikistan, countryKazakhstan, countryKyrgyzstan)
		},
	},
	{
		name:     "three-country route",
		category: model.CategoryC,
		match: func(text string) bool {
			return ContainsAll(text, countryKazakhstan, countryKyrgyzstan, countryPrimary) &&
				!ContainsAny(text, countryExtension, countryTajikistan)
		},
	},
	{
		name:     "comfort tier",
		category: model.CategoryB,
		match: func(text string) bool {
			return ContainsAll(text, countryPrimary, keywordComfort)
		},
	},
	{
		name:     "extension variant",
		category: model.CategoryA,
		match: func(text string) bool {
			return ContainsAll(text, countryPrimary, countryExtension, keywordExtension)
		},
	},
	{
		name:     "base trip",
		category: model.CategoryA,
		match: func(text string) bool {
			return strings.Contains(text, countryPrimary) &&
				!ContainsAny(text, countryExtension, countryTajikistan,
					countryKazakhstan, countryKyrgyzstan, keywordComfort)
		},
	},
	{
		name:     "silk road fallback",
		category: model.CategoryA,
		match: func(text string) bool {
			return strings.Contains(text, keywordSilkRoad)
		},
	},
}

// ClassifyCategory maps a trip description onto a tour category by running
// the rule chain. Unrecognized phrasing is a hard failure for the caller,
// never a guess.
func ClassifyCategory(description string) (model.TourCategory, bool) {
	text := NormalizeText(description)
	for _, rule := range classifierRules {
		if rule.match(text) {
			return rule.category, true
		}
	}
	return "", false
}

// InferSegment decides which trip segment a manifest belongs to. Extension
// when the description names the extension country together with the
// extension keyword, or names the extension country without the primary one.
func InferSegment(description string) model.TripSegment {
	text := NormalizeText(description)
	hasExtension := strings.Contains(text, countryExtension)
	switch {
	case hasExtension && strings.Contains(text, keywordExtension):
		return model.SegmentExtension
	case hasExtension && !strings.Contains(text, countryPrimary):
		return model.SegmentExtension
	}
	return model.SegmentPrimary
}
