// Package quote picks the daily motivational quote.
package quote

import "time"

var quotes = map[string][7]string{
	"fr": {
		"Le succès n'est pas final, l'échec n'est pas fatal : c'est le courage de continuer qui compte.",
		"Chaque jour est une nouvelle opportunité de devenir meilleur.",
		"L'organisation est la clé de la productivité.",
		"Planifier, c'est déjà réussir à moitié.",
		"La persévérance est la clé de tous les triomphes.",
		"Aujourd'hui est le premier jour du reste de votre vie.",
		"L'excellence est un art que l'on n'atteint que par l'exercice constant.",
	},
	"en": {
		"Success is not final, failure is not fatal: it is the courage to continue that counts.",
		"Every day is a new opportunity to become better.",
		"Organization is the key to productivity.",
		"A good plan is half the battle won.",
		"Perseverance is the key to every triumph.",
		"Today is the first day of the rest of your life.",
		"Excellence is an art won only by constant practice.",
	},
}

// ForDay returns the quote for the weekday of t, Sunday first.
func ForDay(t time.Time, locale string) string {
	list, ok := quotes[locale]
	if !ok {
		list = quotes["en"]
	}
	return list[int(t.Weekday())]
}
