package assistant

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"animebuddy/internal/anime"
)

const (
	maxListedTitles = 5

	clarificationMessage           = "Which anime are you asking about? Please mention a title."
	comparisonClarificationMessage = "Please mention exactly two anime titles to compare."
	releaseInfoMessage             = "Release information is coming soon."
	unknownMessage                 = "I'm not sure what you're asking. Could you try rephrasing your question?"
)

func notFoundMessage(title string) string {
	return fmt.Sprintf("I couldn't find information about %s.", title)
}

func characterComingSoonMessage(title string) string {
	return fmt.Sprintf("Character details for %s are coming soon.", title)
}

func referenceRecommendationMessage(title string, names []string) string {
	return fmt.Sprintf("Since you like %s, you might enjoy: %s.", title, strings.Join(names, ", "))
}

func referenceRecommendationFailure(title string) string {
	return fmt.Sprintf("I couldn't find recommendations based on %s.", title)
}

func topListMessage(genre string, year int, names []string) string {
	return fmt.Sprintf("Here are some top %s: %s.", topListSubject(genre, year), strings.Join(names, ", "))
}

func topListFailure(genre string, year int) string {
	return fmt.Sprintf("I couldn't find any %s right now.", topListSubject(genre, year))
}

// topListSubject renders "[Genre ]anime[ from year]".
func topListSubject(genre string, year int) string {
	subject := "anime"
	if g := strings.TrimSpace(genre); g != "" && !strings.EqualFold(g, anime.GeneralGenre) {
		subject = cases.Title(language.English).String(g) + " anime"
	}
	if year > 0 {
		subject = fmt.Sprintf("%s from %d", subject, year)
	}
	return subject
}

func studioMessage(title string, studios []string) string {
	return fmt.Sprintf("%s was produced by %s.", title, joinWithAnd(studios))
}

func studioNotFoundMessage(title string) string {
	return fmt.Sprintf("I couldn't find studio information for %s.", title)
}

// joinWithAnd renders "A", "A and B", or "A, B and C".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
