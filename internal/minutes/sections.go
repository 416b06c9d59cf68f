package minutes

import "github.com/nguyentantai21042004/meeting-minutes/internal/config"

// Route says where a recovered section goes.
type Route int

const (
	// RouteDocument sections are rendered into the exported document.
	RouteDocument Route = iota
	// RouteDiagram sections carry graph syntax for an external renderer.
	RouteDiagram
	// RoutePlainText sections are shown as-is.
	RoutePlainText
)

const (
	SectionTranscript = "transcript"
	SectionSummary    = "summary"
	SectionOutline    = "outline"
	SectionFollowup   = "followup"
)

// Section is one entry of the contract the upstream service is asked to honour.
type Section struct {
	ID          string
	Title       string
	Route       Route
	Instruction string
}

var (
	transcriptSection = Section{
		ID:          SectionTranscript,
		Title:       "Transcript",
		Route:       RoutePlainText,
		Instruction: "The complete verbatim transcript of the meeting, one speaker turn per line.",
	}
	summarySection = Section{
		ID:    SectionSummary,
		Title: "Summary",
		Route: RouteDocument,
		Instruction: "Meeting minutes with these headings: \"## Purpose\" (one or two sentences), " +
			"\"## Key Decisions\" (bullet points) and \"## Action Items\" (bullet points as owner / task / due date).",
	}
	outlineSection = Section{
		ID:          SectionOutline,
		Title:       "Outline",
		Route:       RouteDiagram,
		Instruction: "A Mermaid flowchart of the discussion topics and decisions. Start with the line \"graph TD\".",
	}
	followupSection = Section{
		ID:          SectionFollowup,
		Title:       "Follow-up Email",
		Route:       RouteDocument,
		Instruction: "A short follow-up email to the attendees restating the decisions and action items.",
	}
)

// SectionsFor returns the section contract of a product variant.
func SectionsFor(variant string) []Section {
	if variant == config.VariantSummary {
		return []Section{summarySection}
	}
	return []Section{transcriptSection, summarySection, outlineSection, followupSection}
}

func sectionIDs(secs []Section) []string {
	ids := make([]string, len(secs))
	for i, s := range secs {
		ids[i] = s.ID
	}
	return ids
}
