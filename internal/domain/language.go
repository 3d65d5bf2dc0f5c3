package domain

// Language is an ISO 639-1 code for a language supported by the platform.
// The set is closed: every consumption point goes through ParseLanguage or
// Valid rather than comparing open strings.
type Language string

// Supported languages.
const (
	LanguageUkrainian Language = "uk"
	LanguageEnglish   Language = "en"
	LanguageGerman    Language = "de"
)

// languageNames maps each supported language to its display name.
var languageNames = map[Language]string{
	LanguageUkrainian: "Ukrainian",
	LanguageEnglish:   "English",
	LanguageGerman:    "German",
}

// AllLanguages returns the supported language codes in a stable order.
func AllLanguages() []Language {
	return []Language{LanguageUkrainian, LanguageEnglish, LanguageGerman}
}

// ParseLanguage converts a raw code into a Language.
// Returns ErrUnknownLanguage for anything outside the supported set.
func ParseLanguage(code string) (Language, error) {
	l := Language(code)
	if !l.Valid() {
		return "", ErrUnknownLanguage
	}
	return l, nil
}

// Valid reports whether the language is part of the supported set.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// DisplayName returns the full language name (e.g., "German" for "de").
func (l Language) DisplayName() string {
	return languageNames[l]
}

// String implements fmt.Stringer.
func (l Language) String() string {
	return string(l)
}

// LanguageLevel is a CEFR proficiency level. The six levels are ordered
// from A1 (beginner) to C2 (proficient).
type LanguageLevel string

// CEFR levels.
const (
	LevelA1 LanguageLevel = "A1"
	LevelA2 LanguageLevel = "A2"
	LevelB1 LanguageLevel = "B1"
	LevelB2 LanguageLevel = "B2"
	LevelC1 LanguageLevel = "C1"
	LevelC2 LanguageLevel = "C2"
)

// DefaultLanguageLevel is the starting level assigned when a learner does
// not declare one.
const DefaultLanguageLevel = LevelA1

// levelDescriptions maps each level to its CEFR description. The map also
// doubles as the membership set for Valid.
var levelDescriptions = map[LanguageLevel]string{
	LevelA1: "Beginner",
	LevelA2: "Elementary",
	LevelB1: "Intermediate",
	LevelB2: "Upper Intermediate",
	LevelC1: "Advanced",
	LevelC2: "Proficient",
}

// levelOrder gives each level its position on the six-point scale.
var levelOrder = map[LanguageLevel]int{
	LevelA1: 1,
	LevelA2: 2,
	LevelB1: 3,
	LevelB2: 4,
	LevelC1: 5,
	LevelC2: 6,
}

// ParseLanguageLevel converts a raw level string into a LanguageLevel.
// Returns ErrUnknownLanguageLevel for anything outside the CEFR set.
func ParseLanguageLevel(level string) (LanguageLevel, error) {
	l := LanguageLevel(level)
	if !l.Valid() {
		return "", ErrUnknownLanguageLevel
	}
	return l, nil
}

// Valid reports whether the level is one of the six CEFR levels.
func (l LanguageLevel) Valid() bool {
	_, ok := levelDescriptions[l]
	return ok
}

// Description returns the CEFR description (e.g., "Beginner" for A1).
func (l LanguageLevel) Description() string {
	return levelDescriptions[l]
}

// Before reports whether l is a lower level than other on the CEFR scale.
func (l LanguageLevel) Before(other LanguageLevel) bool {
	return levelOrder[l] < levelOrder[other]
}

// String implements fmt.Stringer.
func (l LanguageLevel) String() string {
	return string(l)
}
