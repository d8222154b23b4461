package catalog

import (
	"regexp"
	"strings"
)

// Label is a supermarket section name.
type Label = string

// The fixed section set, in match-evaluation and display-priority order.
// Order matters: a name carrying keywords from several sections resolves
// to the first group that matches.
const (
	Mercearia  Label = "Mercearia"
	Laticinios Label = "Laticínios"
	Acougue    Label = "Açougue"
	Hortifruti Label = "Hortifrúti"
	Padaria    Label = "Padaria"
	Bebidas    Label = "Bebidas"
	Limpeza    Label = "Limpeza"
	Higiene    Label = "Higiene"
	Outros     Label = "Outros"
)

type rule struct {
	label   Label
	pattern *regexp.Regexp
}

// rules is the ordered first-match-wins cascade. The keyword sets are
// data; control flow never changes when a section gains keywords.
var rules = []rule{
	{Mercearia, regexp.MustCompile(`arroz|feijão|macarrão|farinha|açúcar|sal|óleo|azeite|vinagre|tempero|molho`)},
	{Laticinios, regexp.MustCompile(`leite|queijo|iogurte|manteiga|requeijão|creme de leite|nata`)},
	{Acougue, regexp.MustCompile(`carne|frango|peixe|linguiça|bacon|salsicha|costela|picanha`)},
	{Hortifruti, regexp.MustCompile(`alface|tomate|cebola|batata|cenoura|frutas|banana|maçã|laranja|limão|abacaxi|mamão|uva|morango|verdura|legume`)},
	{Padaria, regexp.MustCompile(`pão|bolo|biscoito|torta|rosca|croissant`)},
	{Bebidas, regexp.MustCompile(`refrigerante|suco|água|cerveja|vinho|energético|chá|café`)},
	{Limpeza, regexp.MustCompile(`sabão|detergente|amaciante|desinfetante|papel higiênico|papel toalha|esponja|vassoura`)},
	{Higiene, regexp.MustCompile(`shampoo|condicionador|sabonete|creme|pasta de dente|escova|fio dental|desodorante`)},
}

// SectionOrder is the fixed priority used for section display.
var SectionOrder = []Label{
	Mercearia,
	Laticinios,
	Acougue,
	Hortifruti,
	Padaria,
	Bebidas,
	Limpeza,
	Higiene,
	Outros,
}

var icons = map[Label]string{
	Mercearia:  "🛒",
	Laticinios: "🥛",
	Acougue:    "🥩",
	Hortifruti: "🥬",
	Padaria:    "🍞",
	Bebidas:    "🥤",
	Limpeza:    "🧹",
	Higiene:    "🧴",
	Outros:     "📦",
}

// Categorize maps a free-text product name to a section label. It is
// case-insensitive and total: empty or unrecognized names fall through
// to Outros.
func Categorize(productName string) Label {
	name := strings.ToLower(productName)
	for _, r := range rules {
		if r.pattern.MatchString(name) {
			return r.label
		}
	}
	return Outros
}

// Icon returns the display icon for a section label. Unknown labels get
// the Outros icon.
func Icon(label Label) string {
	if icon, ok := icons[label]; ok {
		return icon
	}
	return icons[Outros]
}

// KnownLabel reports whether label is one of the fixed section labels.
func KnownLabel(label Label) bool {
	_, ok := icons[label]
	return ok
}
