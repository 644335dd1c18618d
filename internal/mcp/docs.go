package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `qontract drafts Indonesian and English business contracts with a three-step wizard.

Steps:
1) template_selection: call list_templates, then select_template(wizard_id, template_id).
2) form_entry: call submit_form with both parties and the contract details. Generation takes a while;
   while it runs the draft is busy and submit_form/go_back return BUSY.
3) preview: read the generated contract with get_contract_draft, optionally sign with
   add_signature_stroke / clear_signature, then export_contract (PDF) and/or save_contract.

Rules:
- Start every contract with start_contract; keep the returned wizard_id.
- go_back discards the data of the step being left (form and contract when leaving preview).
- set_language only changes labels; form values and generated text stay as they are.
- Errors come back as "CODE: message" with the message in the draft language.

Docs:
- qontract://docs/form-fields
- qontract://docs/signatures
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "qontract://docs/form-fields",
		Name:        "docs_form_fields",
		Title:       "Contract form fields",
		Description: "Fields accepted by submit_form and which are required.",
		Content: `# Contract form fields

All fields are required except ` + "`additional_terms`" + `. Blank values are rejected with INVALID_FORM and
the error details list the missing field names.

| field | meaning |
|---|---|
| party_one_name, party_one_position, party_one_address | first party (Pihak Pertama) |
| party_two_name, party_two_position, party_two_address | second party (Pihak Kedua) |
| project_title | subject of the agreement |
| scope | scope of work or goods |
| value | contract value in IDR, digits only |
| start_date, end_date | YYYY-MM-DD |
| additional_terms | free text, optional |

Saved contracts appear on the dashboard titled with the generated title and dated with start_date.
`,
	},
	{
		URI:         "qontract://docs/signatures",
		Name:        "docs_signatures",
		Title:       "Signature strokes",
		Description: "How signature pads accept strokes.",
		Content: `# Signatures

Each party has a pad: ` + "`party_one`" + ` and ` + "`party_two`" + `. A stroke is one continuous pen movement given
as a list of points with x and y in 0..1, origin top-left. Strokes are only accepted in preview.
Going back from preview or regenerating the contract clears both pads.

The exported PDF draws every stroke inside the party's signature box.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
