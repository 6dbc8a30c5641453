package service

import (
	"strings"

	"persona-llm/internal/domain"
)

// EmotionScorer puntua un unico mensaje contra las categorias emocionales.
// Es puro y deterministico: mismo texto, mismo EmotionState.
type EmotionScorer struct{}

// DefaultEmotionScorer permite uso directo sin instanciar.
var DefaultEmotionScorer = EmotionScorer{}

// Score acumula 2 puntos por keyword y 1 por enhancer en cada categoria.
// Gana la de mayor total; los empates los resuelve el orden de declaracion
// del lexicon (happy > excited > ... > flirty). Score 0 cae en neutral.
func (s EmotionScorer) Score(text string) domain.EmotionState {
	lower := strings.ToLower(text)

	winner := domain.EmotionNeutral
	winnerScore := 0
	total := 0
	for _, lex := range emotionLexicons {
		score := 0
		for _, kw := range lex.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				score += 2
			}
		}
		for _, enh := range lex.Enhancers {
			if strings.Contains(text, enh) {
				score++
			}
		}
		total += score
		// El recorrido es en orden de declaracion, asi que un empate
		// posterior nunca destrona al ganador actual.
		if score > winnerScore {
			winnerScore = score
			winner = lex.Category
		}
	}

	confidence := 0.0
	if total > 0 {
		confidence = float64(winnerScore) / float64(total)
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	if winnerScore == 0 {
		winner = domain.EmotionNeutral
	}

	return domain.EmotionState{
		Primary:           winner,
		Intensity:         s.intensityOf(text),
		ShouldAcknowledge: winnerScore >= 2 && winner != domain.EmotionNeutral,
		Confidence:        confidence,
	}
}

// intensityOf mide densidad de puntuacion, independiente de la categoria:
// exclamaciones + 0.5*preguntas + corridas de emoticones + 2*corazones.
func (EmotionScorer) intensityOf(text string) domain.EmotionIntensity {
	score := float64(strings.Count(text, "!") + strings.Count(text, "！"))
	score += 0.5 * float64(strings.Count(text, "?")+strings.Count(text, "？"))
	score += float64(emoticonRunCount(text))
	for _, heart := range heartSymbols {
		score += 2 * float64(strings.Count(text, heart))
	}

	switch {
	case score >= 4:
		return domain.IntensityHigh
	case score >= 2:
		return domain.IntensityMedium
	default:
		return domain.IntensityLow
	}
}

// emoticonRunCount cuenta corridas de largo >=2 de caracteres de emoticon
// (ㅋㅋㅋ cuenta como una corrida, no tres).
func emoticonRunCount(text string) int {
	runs := 0
	var prev rune
	runLen := 0
	for _, r := range text {
		if emoticonRunes[r] && r == prev {
			runLen++
			if runLen == 2 {
				runs++
			}
		} else if emoticonRunes[r] {
			runLen = 1
		} else {
			runLen = 0
		}
		prev = r
	}
	return runs
}
