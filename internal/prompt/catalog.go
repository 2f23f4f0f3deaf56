// Package prompt holds the per-subject instructions sent to the extraction and
// resolution models.
package prompt

import (
	"fmt"
	"strings"

	"github.com/lshigami/examlens/internal/model"
)

const jsonContract = `Return ONLY a JSON array. Each element describes one multiple-choice question:
{
  "type": "code" | "image" | "text",
  "content": "reference material shown beside the question (passage, table, description), or empty",
  "code": "source code the question refers to, or empty",
  "question": "the question stem only",
  "precondition": "precondition or Javadoc text attached to the code, or empty",
  "image_description": "description of any graph, chart or figure, or empty",
  "page_number": 1,
  "options": ["text of A", "text of B", "text of C", "text of D", "text of E"],
  "correct": "A" | "B" | "C" | "D" | "E" | null
}`

const commonRules = `Rules for every subject:
- Extract multiple-choice questions only. Skip free-response sections entirely.
- Keep questions in the order they appear in the document.
- Options go in "options" without their letter labels. Use fewer than five entries when the question has fewer choices.
- Set "correct" only when the document states the answer. Never guess it.
- When several questions share one reference block (for example "Questions 4-5 refer to the following"), emit a complete record for each of them and repeat the shared reference material in every record.`

const codeRules = `Rules for this subject:
- Put Java source code in "code" and the question sentence in "question". Never put the question sentence inside "code" and never repeat the code inside "question".
- Never copy option text into "code". Options belong in "options" only.
- Put method preconditions, postconditions and Javadoc comments that introduce the code in "precondition".
- Use "type": "code" whenever a question refers to source code.`

const graphRules = `Rules for this subject:
- Every record that refers to a graph, chart, table or figure MUST have "page_number": the 1-based page of the PDF where that graph, chart, table or figure is printed.
- Describe graphs and figures in "image_description" and use "type": "image".
- Reproduce tables as HTML (<table>, <tr>, <th>, <td>) in "content".`

const textRules = `Rules for this subject:
- Put source passages, quotations and excerpts in "content" and the question sentence in "question".
- Use "type": "text".`

type entry struct {
	name  string
	rules string
}

var catalog = map[model.Subject]entry{
	model.SubjectComputerScienceA: {name: "AP Computer Science A", rules: codeRules},
	model.SubjectStatistics:       {name: "AP Statistics", rules: graphRules},
	model.SubjectCalculusAB:       {name: "AP Calculus AB", rules: graphRules},
	model.SubjectMacroeconomics:   {name: "AP Macroeconomics", rules: graphRules},
	model.SubjectUSHistory:        {name: "AP US History", rules: textRules},
}

// fallback is used for any subject key that is not in the catalog.
var fallback = entry{name: "the exam", rules: textRules}

func lookup(subject model.Subject) entry {
	if e, ok := catalog[subject]; ok {
		return e
	}
	return fallback
}

// DisplayName returns a human-readable subject name.
func DisplayName(subject model.Subject) string {
	return lookup(subject).name
}

// ExtractionInstruction returns the system instruction for extracting
// questions of the given subject. Unknown subjects get a generic template.
func ExtractionInstruction(subject model.Subject) string {
	e := lookup(subject)
	var b strings.Builder
	fmt.Fprintf(&b, "You extract multiple-choice questions from %s PDF documents into structured JSON.\n\n", e.name)
	b.WriteString(jsonContract)
	b.WriteString("\n\n")
	b.WriteString(commonRules)
	b.WriteString("\n\n")
	b.WriteString(e.rules)
	return b.String()
}

// ExtractionRequest is the user turn sent next to the PDF.
func ExtractionRequest(questionCount int) string {
	return fmt.Sprintf("Extract the first %d multiple-choice questions from the attached PDF. "+
		"Respond with a JSON array of at most %d elements following exactly this shape:\n%s",
		questionCount, questionCount, jsonContract)
}
