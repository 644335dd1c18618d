package generation

import (
	"fmt"
	"strings"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/rpggio/qontract/internal/localization"
)

const (
	instructionsID = "Anda adalah asisten hukum virtual yang ahli dalam membuat draf kontrak sederhana untuk UMKM dan freelancer di Indonesia. " +
		"Buatlah draf Surat Perjanjian Kerjasama berdasarkan data berikut. " +
		"Gunakan bahasa hukum yang formal, jelas, dan mudah dipahami. " +
		"Jangan sertakan pasal-pasal yang terlalu kompleks. Respon harus dalam Bahasa Indonesia."
	instructionsEN = "You are a virtual legal assistant specializing in creating simple contract drafts for MSMEs and freelancers. " +
		"Create a draft Agreement based on the following data. " +
		"Use formal, clear, and easy-to-understand legal language. " +
		"Do not include overly complex clauses. The response must be in English."
)

type promptWords struct {
	instructions string
	document     string
	partyOne     string
	partyTwo     string
	none         string
}

func wordsFor(lang localization.Language) promptWords {
	if lang == localization.English {
		return promptWords{
			instructions: instructionsEN,
			document:     "English",
			partyOne:     "First Party",
			partyTwo:     "Second Party",
			none:         "None",
		}
	}
	return promptWords{
		instructions: instructionsID,
		document:     "Indonesia",
		partyOne:     "Pihak Pertama",
		partyTwo:     "Pihak Kedua",
		none:         "Tidak ada",
	}
}

// BuildPrompt renders the generation prompt for a form, template and
// document language.
func BuildPrompt(form contract.FormData, tmpl catalog.Template, lang localization.Language) string {
	w := wordsFor(lang)

	// Whitespace-only terms count as blank, matching form validation.
	terms := strings.TrimSpace(form.AdditionalTerms)
	if terms == "" {
		terms = w.none
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", w.instructions)

	b.WriteString("Data for Contract:\n")
	fmt.Fprintf(&b, "- Contract Type: %s\n", tmpl.TitleIn(lang))
	fmt.Fprintf(&b, "- Language for Document: %s\n\n", w.document)

	b.WriteString("Parties Involved:\n")
	writeParty(&b, w.partyOne, form.PartyOneName, form.PartyOnePosition, form.PartyOneAddress)
	writeParty(&b, w.partyTwo, form.PartyTwoName, form.PartyTwoPosition, form.PartyTwoAddress)
	b.WriteString("\n")

	b.WriteString("Agreement Details:\n")
	fmt.Fprintf(&b, "- Project Title/Object: %s\n", form.ProjectTitle)
	fmt.Fprintf(&b, "- Scope of Work: %s\n", form.Scope)
	fmt.Fprintf(&b, "- Contract Value: IDR %s\n", form.Value)
	fmt.Fprintf(&b, "- Contract Duration: From %s to %s\n", form.StartDate, form.EndDate)
	fmt.Fprintf(&b, "- Additional Terms: %s\n\n", terms)

	b.WriteString("Please generate the contract draft. The output MUST be a valid JSON object matching the provided schema.\n")
	return b.String()
}

func writeParty(b *strings.Builder, label, name, position, address string) {
	fmt.Fprintf(b, "- %s:\n", label)
	fmt.Fprintf(b, "  - Name: %s\n", name)
	fmt.Fprintf(b, "  - Position: %s\n", position)
	fmt.Fprintf(b, "  - Address: %s\n", address)
}
