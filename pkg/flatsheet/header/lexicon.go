package header

import "strings"

// DefaultStageKeywords marks approval-stage headers: coordination, approval,
// procurement commission and verification. A stage-row value is a stage label
// iff it contains one of them.
var DefaultStageKeywords = []string{
	"Согласование",
	"Утверждение",
	"Закупочная комиссия",
	"Проверка",
}

// Predicate classifies a resolved header value as a label that opens a span.
type Predicate func(value string) bool

// StagePredicate matches values containing any of the keywords.
// A nil or empty keyword list falls back to DefaultStageKeywords.
func StagePredicate(keywords []string) Predicate {
	if len(keywords) == 0 {
		keywords = DefaultStageKeywords
	}
	kws := append([]string(nil), keywords...)
	return func(value string) bool {
		if value == "" {
			return false
		}
		for _, kw := range kws {
			if kw != "" && strings.Contains(value, kw) {
				return true
			}
		}
		return false
	}
}

// IsStage reports whether value is a stage label under the default lexicon.
func IsStage(value string) bool {
	return defaultStage(value)
}

var defaultStage = StagePredicate(nil)

// IsRole reports whether value is a role label: any non-empty value is.
func IsRole(value string) bool {
	return value != ""
}
