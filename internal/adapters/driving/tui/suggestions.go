package tui

import (
	"math/rand"
)

// suggestionPool holds the example prompts offered as chips. Three are
// sampled at startup and reshuffled on demand.
var suggestionPool = []string{
	"Vreau o carte despre prietenie și magie",
	"Caut o poveste SF cu explorare spațială",
	"Recomandă-mi un thriller psihologic intens",
	"Vreau o carte scurtă și amuzantă",
	"Caut o carte clasică despre dragoste",
	"Vreau o aventură epică cu lumi fantastice",
	"O carte despre război și strategie",
	"Ceva motivațional și de dezvoltare personală",
	"Biografie a unui inovator faimos",
	"Mister într-un orășel liniștit",
	"Distopie despre controlul societății",
	"Roman istoric despre Roma antică",
	"Cartea perfectă pentru adolescenți",
	"Nonficțiune despre știință ușor de înțeles",
	"Romance contemporan cu umor",
	"O carte cu dezbateri etice și filozofie",
	"Poveste cu prietenie între animale",
	"Fantasy cu dragoni și magie întunecată",
	"Cyberpunk cu inteligență artificială",
	"Cărți care seamănă cu Hobbitul",
}

const suggestionCount = 3

// sampleSuggestions picks n distinct prompts from the pool.
func sampleSuggestions(n int) []string {
	if n > len(suggestionPool) {
		n = len(suggestionPool)
	}
	perm := rand.Perm(len(suggestionPool))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, suggestionPool[i])
	}
	return out
}
