package scoring

import "math"

// Score combines word count and prompt similarity into a single percentage.
// Word count contributes up to 60 points (capped at maxWordCount) and
// similarity to the prompt contributes up to 40 points. Returns the total
// score and the similarity percentage, both rounded to 2 decimals.
func Score(wordCount int, promptText, transcript string, maxWordCount int) (score, similarityPercentage float64) {
	wordCountScore := math.Min(float64(wordCount)/float64(maxWordCount)*60, 60)

	similarityRatio := Ratio(promptText, transcript)
	similarityScore := similarityRatio * 40

	return round2(wordCountScore + similarityScore), round2(similarityRatio * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
