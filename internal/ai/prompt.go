package ai

import "fmt"

// Feature tags for the supported text transformations.
const (
	FeatureSummarize      = "summarize"
	FeatureRewrite        = "rewrite"
	FeatureExplain        = "explain"
	FeatureOrganize       = "organize"
	FeatureTranslate      = "translate"
	FeatureImprove        = "improve"
	FeatureChangeFormat   = "change_format"
	FeatureMainTheme      = "main_theme"
	FeatureDetectTone     = "detect_tone"
	FeatureKeyPoints      = "key_points"
	FeatureAnswerQuestion = "answer_question"

	// FeatureTags marks tag-generation history entries; it is not a Compile
	// feature (tag generation has its own prompt).
	FeatureTags = "tags"
)

// Params carries the operation-specific inputs some features require.
type Params struct {
	Language string
	Format   string
	Question string
}

// Compile maps a feature plus the note's plain text to a single provider
// instruction. Pure; the only failure is an unknown feature tag. Every
// template instructs the model to return the bare artifact because callers
// treat the raw response as final output with no further extraction.
func Compile(feature, content string, p Params) (string, error) {
	switch feature {
	case FeatureSummarize:
		return fmt.Sprintf("Summarize this content in 2-3 concise sentences. Return only summary text:\n\n%s", content), nil
	case FeatureRewrite:
		return fmt.Sprintf("Rewrite this content clearly while preserving meaning. Return only rewritten text:\n\n%s", content), nil
	case FeatureExplain:
		return fmt.Sprintf("Explain this content clearly in simple terms. Return only explanation:\n\n%s", content), nil
	case FeatureOrganize:
		return fmt.Sprintf("Organize this content into clear sections with short headings and bullet points. Return only organized output:\n\n%s", content), nil
	case FeatureTranslate:
		return fmt.Sprintf("Translate this content to %s. Return only translated text:\n\n%s", p.Language, content), nil
	case FeatureImprove:
		return fmt.Sprintf("Improve grammar, clarity, vocabulary, and flow of this content. Return only improved text:\n\n%s", content), nil
	case FeatureChangeFormat:
		return fmt.Sprintf("Convert this content into %s. Return only converted output:\n\n%s", p.Format, content), nil
	case FeatureMainTheme:
		return fmt.Sprintf("Identify the main theme in 1-2 concise sentences. Return only result:\n\n%s", content), nil
	case FeatureDetectTone:
		return fmt.Sprintf("Detect the tone (formal, emotional, persuasive, etc.) and justify briefly. Return only result:\n\n%s", content), nil
	case FeatureKeyPoints:
		return fmt.Sprintf("Extract key points as concise bullet points. Return only bullet list:\n\n%s", content), nil
	case FeatureAnswerQuestion:
		return fmt.Sprintf("Using only this content, answer the question.\nQuestion: %s\n\nContent:\n%s\n\nIf not answerable, say: \"The content does not contain enough information.\"", p.Question, content), nil
	}
	return "", ErrUnsupportedFeature
}

// TagPrompt builds the tag-generation instruction. The model is asked for a
// bare JSON array; parsing is defensive on the caller's side.
func TagPrompt(title, content string) string {
	return fmt.Sprintf("Generate 3 to 5 relevant tags for this note. Return only valid JSON array of lowercase strings.\n\nTitle: %s\nContent: %s", title, content)
}
