package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, h *handler) {
	// Catalog and dashboard
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_templates",
		Description: "List the contract templates with localized titles and descriptions",
	}, h.listTemplates)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_contracts",
		Description: "List dashboard contracts, optionally filtered by text and an inclusive date range",
	}, h.listContracts)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_labels",
		Description: "Get the full UI string table for a language",
	}, h.getLabels)

	// Drafting
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_contract",
		Description: "Start a new contract draft at template selection",
	}, h.startContract)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_contract_draft",
		Description: "Get a contract draft with its current step, form, generated contract and signatures",
	}, h.getDraft)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "select_template",
		Description: "Choose the template for a draft and move to form entry",
	}, h.selectTemplate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_form",
		Description: "Submit party and contract details, generate the contract text and move to preview",
	}, h.submitForm)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_back",
		Description: "Return a draft to the previous step, discarding the data of the step being left",
	}, h.goBack)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_language",
		Description: "Switch a draft's display language without touching its form or contract",
	}, h.setLanguage)

	// Signing and output
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_signature_stroke",
		Description: "Append a pen stroke to a party's signature pad on a previewed draft",
	}, h.addStroke)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_signature",
		Description: "Erase one party's signature pad",
	}, h.clearSignature)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_contract",
		Description: "Render the previewed contract and signatures as a base64 PDF",
	}, h.exportContract)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_contract",
		Description: "Save the previewed contract to the dashboard and close the draft",
	}, h.saveContract)
}
