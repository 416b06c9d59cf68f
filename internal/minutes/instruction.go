package minutes

import (
	"strings"
	"text/template"
)

var instructionTmpl = template.Must(template.New("instruction").Parse(`You are a professional meeting secretary. You are given a business meeting, either as an audio recording or as its transcript.
Work from the whole meeting and write every section in {{.Language}}.

Answer with the {{len .Sections}} section(s) below, each wrapped in its own tags written exactly as shown.
Do not put code fences, quotes or any other markup around the tags and do not write anything outside them.
{{range .Sections}}
<{{.ID}}>
{{.Instruction}}
</{{.ID}}>
{{end}}
Rules:
- When writing Chinese, use Taiwanese vocabulary (for example 影片 not 視頻, 品質 not 質量, 專案 not 項目).
- Remove filler words and repeated phrases.
- Inside sections use only "# ", "## " and "### " headings, "- " bullet points and plain lines. No tables or numbered lists.
`))

// buildInstruction renders the fixed prompt that tells the service the
// section delimiter contract.
func buildInstruction(language string, secs []Section) (string, error) {
	var sb strings.Builder
	err := instructionTmpl.Execute(&sb, struct {
		Language string
		Sections []Section
	}{language, secs})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
