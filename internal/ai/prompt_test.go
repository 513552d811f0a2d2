package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDeterministic(t *testing.T) {
	features := []string{
		FeatureSummarize, FeatureRewrite, FeatureExplain, FeatureOrganize,
		FeatureTranslate, FeatureImprove, FeatureChangeFormat, FeatureMainTheme,
		FeatureDetectTone, FeatureKeyPoints, FeatureAnswerQuestion,
	}
	p := Params{Language: "Spanish", Format: "professional email", Question: "what is this?"}

	for _, f := range features {
		first, err := Compile(f, "some note content", p)
		require.NoError(t, err, f)
		require.NotEmpty(t, first, f)

		second, err := Compile(f, "some note content", p)
		require.NoError(t, err, f)
		assert.Equal(t, first, second, "compile must be deterministic for %s", f)

		assert.Contains(t, first, "some note content")
	}
}

func TestCompileEmbedsExtraParams(t *testing.T) {
	got, err := Compile(FeatureTranslate, "hola", Params{Language: "French"})
	require.NoError(t, err)
	assert.Contains(t, got, "French")

	got, err = Compile(FeatureChangeFormat, "text", Params{Format: "bullet list"})
	require.NoError(t, err)
	assert.Contains(t, got, "bullet list")

	got, err = Compile(FeatureAnswerQuestion, "the sky is blue", Params{Question: "what color is the sky?"})
	require.NoError(t, err)
	assert.Contains(t, got, "what color is the sky?")
	assert.Contains(t, got, "The content does not contain enough information.")
}

func TestCompileUnsupportedFeature(t *testing.T) {
	_, err := Compile("make_coffee", "content", Params{})
	assert.ErrorIs(t, err, ErrUnsupportedFeature)

	// the tags feature is a history marker, not a compile target
	_, err = Compile(FeatureTags, "content", Params{})
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestTagPrompt(t *testing.T) {
	got := TagPrompt("My Title", "my content")
	assert.Contains(t, got, "Title: My Title")
	assert.Contains(t, got, "Content: my content")
	assert.Contains(t, got, "JSON array")
}
