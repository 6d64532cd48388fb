package analytics

import "strings"

// stopwords holds function words skipped by frequency analysis, pooled over
// the languages lessons are usually written in.
var stopwords = buildStopwords(
	// en
	`a about after again against all also am an and any are as at be because been before being below
	between both but by can could did do does doing down during each few for from further had has have
	having he her here hers herself him himself his how i if in into is it its itself just me more most
	my myself no nor not now of off on once only or other our ours ourselves out over own same she should
	so some such than that the their theirs them themselves then there these they this those through to
	too under until up very was we were what when where which while who whom why will with would you
	your yours yourself yourselves`,
	// fr
	`au aux avec ce ces dans de des du elle elles en est et eux il ils je la le les leur leurs lui ma mais
	me mes moi mon ne nos notre nous on ou par pas pour qu que qui sa se ses son sur ta te tes toi ton tu
	un une vos votre vous c d j l m n s t y été être avoir ont sont était`,
	// es
	`el los las del al lo un una unos unas y o pero con por para como más mi mis su sus tu tus yo él ella
	ellos ellas nosotros es son fue era está están ser hay muy sin sobre también entre cuando ya`,
	// de
	`der die das den dem des ein eine einen einem einer und oder aber mit von zu im ist sind war waren
	ich du er sie es wir ihr nicht auch auf aus bei nach wie noch nur so dass wenn`,
)

func buildStopwords(lists ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, l := range lists {
		for _, w := range strings.Fields(l) {
			m[w] = struct{}{}
		}
	}
	return m
}

// IsStopword checks if a word is a common function word.
func IsStopword(word string) bool {
	_, exists := stopwords[strings.ToLower(word)]
	return exists
}
