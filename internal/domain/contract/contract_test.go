package contract_test

import (
	"testing"

	"github.com/rpggio/qontract/internal/domain/contract"
	"github.com/stretchr/testify/require"
)

func completeForm() contract.FormData {
	return contract.FormData{
		PartyOneName:     "PT. Digital Maju",
		PartyOnePosition: "Direktur",
		PartyOneAddress:  "Jl. Sudirman 1, Jakarta",
		PartyTwoName:     "John Doe",
		PartyTwoPosition: "Freelancer",
		PartyTwoAddress:  "Jl. Braga 2, Bandung",
		ProjectTitle:     "Pengembangan Website",
		Scope:            "Desain dan implementasi toko daring",
		Value:            "15000000",
		StartDate:        "2024-07-15",
		EndDate:          "2024-09-15",
	}
}

func TestFormData_ValidateComplete(t *testing.T) {
	require.NoError(t, completeForm().Validate())
}

func TestFormData_AdditionalTermsOptional(t *testing.T) {
	form := completeForm()
	form.AdditionalTerms = ""
	require.NoError(t, form.Validate())
}

func TestFormData_ValidateMissing(t *testing.T) {
	form := completeForm()
	form.PartyTwoName = "  "
	form.Scope = ""

	err := form.Validate()
	require.ErrorIs(t, err, contract.ErrInvalidForm)

	var formErr *contract.FormError
	require.ErrorAs(t, err, &formErr)
	require.Equal(t, []string{"party_two_name", "scope"}, formErr.Missing)
}

func TestFormData_EmptyMissesEveryRequiredField(t *testing.T) {
	require.Len(t, contract.FormData{}.MissingFields(), 11)
}

func TestSignatures_PadsAreIndependent(t *testing.T) {
	var sigs contract.Signatures
	stroke := contract.Stroke{Points: []contract.Point{{X: 0.1, Y: 0.2}, {X: 0.5, Y: 0.6}}}

	require.NoError(t, sigs.Add(contract.PadPartyOne, stroke))
	require.NoError(t, sigs.Add(contract.PadPartyTwo, stroke))
	require.NoError(t, sigs.Add(contract.PadPartyTwo, stroke))

	require.NoError(t, sigs.Clear(contract.PadPartyTwo))
	require.Len(t, sigs.Strokes(contract.PadPartyOne), 1)
	require.Empty(t, sigs.Strokes(contract.PadPartyTwo))
	require.False(t, sigs.Empty())
}

func TestSignatures_RejectsInvalidStrokes(t *testing.T) {
	var sigs contract.Signatures

	err := sigs.Add(contract.PadPartyOne, contract.Stroke{})
	require.ErrorIs(t, err, contract.ErrInvalidSignature)

	err = sigs.Add(contract.PadPartyOne, contract.Stroke{Points: []contract.Point{{X: 1.5, Y: 0}}})
	require.ErrorIs(t, err, contract.ErrInvalidSignature)

	err = sigs.Add("witness", contract.Stroke{Points: []contract.Point{{X: 0, Y: 0}}})
	require.ErrorIs(t, err, contract.ErrInvalidSignature)

	require.True(t, sigs.Empty())
}

func TestGeneratedContract_SignatureAt(t *testing.T) {
	doc := contract.GeneratedContract{Signatures: []contract.SignatureLine{{Party: "Pihak Pertama", Name: "A"}}}
	require.Equal(t, "A", doc.SignatureAt(0).Name)
	require.Equal(t, contract.SignatureLine{}, doc.SignatureAt(1))
}
