package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	for _, code := range AllLanguages() {
		lang, err := ParseLanguage(code.String())
		require.NoError(t, err)
		assert.Equal(t, code, lang)
		assert.NotEmpty(t, lang.DisplayName())
	}

	_, err := ParseLanguage("fr")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, err = ParseLanguage("")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestParseLanguageLevel(t *testing.T) {
	t.Parallel()

	levels := []LanguageLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
	for _, l := range levels {
		parsed, err := ParseLanguageLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
		assert.NotEmpty(t, parsed.Description())
	}

	_, err := ParseLanguageLevel("D1")
	assert.ErrorIs(t, err, ErrUnknownLanguageLevel)

	// Case matters: CEFR levels are upper-case.
	_, err = ParseLanguageLevel("a1")
	assert.ErrorIs(t, err, ErrUnknownLanguageLevel)
}

func TestLanguageLevelOrdering(t *testing.T) {
	t.Parallel()

	assert.True(t, LevelA1.Before(LevelC2))
	assert.True(t, LevelB1.Before(LevelB2))
	assert.False(t, LevelC2.Before(LevelA1))
	assert.False(t, LevelB1.Before(LevelB1))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
