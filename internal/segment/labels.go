package segment

// Emotion vocabularies by subscription plan. The basic set is the seven
// fundamental emotions; plus and pro extend it with finer-grained labels
// matching the classifier heads the inference service runs per plan.

// BasicLabels is the 7-label vocabulary for the basic plan.
var BasicLabels = []string{
	"happy", "sad", "mad", "scared", "surprised", "disgusted", "neutral",
}

// PlusLabels is the 23-label vocabulary for the plus plan.
var PlusLabels = []string{
	"excitement",
	"confusion",
	"surprise",
	"neutral",
	"optimism",
	"pride",
	"curiosity",
	"fear",
	"amusement",
	"joy",
	"desire",
	"annoyance",
	"nervousness",
	"gratitude",
	"approval",
	"realization",
	"disappointment",
	"caring",
	"sadness",
	"admiration",
	"disapproval",
	"anger",
	"remorse",
}

// ProLabels is the 27-label vocabulary for the pro plan.
var ProLabels = append(append([]string{}, PlusLabels...),
	"relief", "love", "disgust", "embarrassment",
)

// Labels returns the vocabulary for a plan name. Unknown plans fall back
// to the basic set.
func Labels(plan string) []string {
	switch plan {
	case "pro":
		return ProLabels
	case "plus":
		return PlusLabels
	default:
		return BasicLabels
	}
}

// ValidLabel reports whether label belongs to the given vocabulary.
func ValidLabel(label string, vocabulary []string) bool {
	for _, l := range vocabulary {
		if l == label {
			return true
		}
	}
	return false
}

// Emotion families group the extended vocabularies under the seven basic
// emotions. The distribution chart orders labels by family precedence:
// neutral first, then the happy family, and so on.
const familyCount = 7

var familyRank = map[string]int{
	// neutral family
	"neutral": 0,

	// happy family
	"happy":      1,
	"joy":        1,
	"amusement":  1,
	"excitement": 1,
	"optimism":   1,
	"pride":      1,
	"gratitude":  1,
	"admiration": 1,
	"approval":   1,
	"caring":     1,
	"desire":     1,
	"love":       1,
	"relief":     1,

	// sad family
	"sad":            2,
	"sadness":        2,
	"disappointment": 2,
	"remorse":        2,
	"embarrassment":  2,

	// mad family
	"mad":         3,
	"anger":       3,
	"annoyance":   3,
	"disapproval": 3,

	// scared family
	"scared":      4,
	"fear":        4,
	"nervousness": 4,

	// surprised family
	"surprised":   5,
	"surprise":    5,
	"realization": 5,
	"confusion":   5,
	"curiosity":   5,

	// disgusted family
	"disgusted": 6,
	"disgust":   6,
}

// FamilyRank returns the precedence index of a label's emotion family.
// Labels outside the known vocabulary sort after every family.
func FamilyRank(label string) int {
	if r, ok := familyRank[label]; ok {
		return r
	}
	return familyCount
}
