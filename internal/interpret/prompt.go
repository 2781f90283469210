// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interpret

import (
	"bytes"
	"text/template"
)

// systemPromptTmpl instructs the model to return the structured search
// parameters as a bare JSON object.
var systemPromptTmpl = template.Must(template.New("system").Parse(`You are a highly accurate assistant that extracts structured PubMed search parameters from user queries.
Your output must be valid JSON, without extra words or connectors like AND, after, or before.

Given the user query, extract the structured parameters:
- "keywords": the key terms as one phrase, not a comma-separated list.
- "year": the publication year in the format YYYY. Today's date is {{.Today}}; resolve relative years against it.
- "affiliation_type": the type of affiliation (e.g. biotech companies), or "" if none is mentioned.

Return the structured parameters in the following JSON format:
{
    "keywords": "<keywords>",
    "year": "<YYYY>",
    "affiliation_type": "<affiliation>"
}

Following is an example of a valid response:
{
    "keywords": "AI in healthcare",
    "year": "2020",
    "affiliation_type": "biotech companies"
}

Respond with the JSON object only.
`))

// renderSystemPrompt executes the system prompt template.
func renderSystemPrompt(today string) (string, error) {
	var buf bytes.Buffer
	if err := systemPromptTmpl.Execute(&buf, struct{ Today string }{Today: today}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
