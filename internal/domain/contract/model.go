package contract

// FormData holds the user-entered fields describing both parties and the
// agreement terms.
type FormData struct {
	PartyOneName     string `json:"party_one_name"`
	PartyOnePosition string `json:"party_one_position"`
	PartyOneAddress  string `json:"party_one_address"`
	PartyTwoName     string `json:"party_two_name"`
	PartyTwoPosition string `json:"party_two_position"`
	PartyTwoAddress  string `json:"party_two_address"`
	ProjectTitle     string `json:"project_title"`
	Scope            string `json:"scope"`
	Value            string `json:"value"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	AdditionalTerms  string `json:"additional_terms,omitempty"`
}

// Parties returns the dashboard representation of both parties.
func (f FormData) Parties() string {
	return f.PartyOneName + " & " + f.PartyTwoName
}

// Party is a party block of a generated contract.
type Party struct {
	ID      string `json:"id"`
	Details string `json:"details"`
}

// Clause is a numbered article of a generated contract.
type Clause struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SignatureLine names the signer under a signature block.
type SignatureLine struct {
	Party string `json:"party"`
	Name  string `json:"name"`
}

// GeneratedContract is the structured draft returned by the generation
// service.
type GeneratedContract struct {
	Title      string          `json:"title"`
	Opening    string          `json:"opening"`
	Parties    []Party         `json:"parties"`
	Preamble   string          `json:"preamble"`
	Clauses    []Clause        `json:"clauses"`
	Closing    string          `json:"closing"`
	Signatures []SignatureLine `json:"signatures"`
}

// SignatureAt returns the i-th signature line, or an empty one.
func (c GeneratedContract) SignatureAt(i int) SignatureLine {
	if i < 0 || i >= len(c.Signatures) {
		return SignatureLine{}
	}
	return c.Signatures[i]
}
