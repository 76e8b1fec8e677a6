package models

// Intent is a named category of user request with the example utterances it
// is trained on and the candidate replies it answers with.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// IntentsDocument mirrors the on-disk shape of intents.json.
type IntentsDocument struct {
	Intents []Intent `json:"intents"`
}
