package loam

// DefinitionMetadata represents the front matter of an automaton document.
// It uses "mapstructure" tags to match the YAML keys written by hand.
// Symbols are typed as any because YAML turns `0` and `1` into numbers.
type DefinitionMetadata struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`

	States   []string `json:"states" mapstructure:"states"`
	Alphabet []any    `json:"alphabet" mapstructure:"alphabet"`
	// Sigma is accepted as an alias of Alphabet.
	Sigma []any `json:"sigma" mapstructure:"sigma"`

	Start string   `json:"start" mapstructure:"start"`
	Final []string `json:"final" mapstructure:"final"`

	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
}

// LoaderTransition is one transition entry. To may be a single state name
// or a list of names; On is an alias of Symbol.
type LoaderTransition struct {
	From   string `json:"from" mapstructure:"from"`
	Symbol any    `json:"symbol" mapstructure:"symbol"`
	On     any    `json:"on" mapstructure:"on"`
	To     any    `json:"to" mapstructure:"to"`
}
