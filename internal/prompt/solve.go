package prompt

import (
	"fmt"
	"strings"

	"github.com/lshigami/examlens/internal/model"
)

// SolveItem is the part of a question the resolution model needs to see.
type SolveItem struct {
	Stem         string
	Reference    string
	Precondition string
	Options      [5]*string
}

// SolveItemFromQuestion copies the visible parts of q.
func SolveItemFromQuestion(q *model.Question) SolveItem {
	item := SolveItem{Stem: q.Stem, Options: q.Options()}
	if q.Reference != nil {
		item.Reference = *q.Reference
	}
	if q.Precondition != nil {
		item.Precondition = *q.Precondition
	}
	return item
}

// BuildSolvePrompt asks for one answer letter per item, in order.
func BuildSolvePrompt(subject model.Subject, items []SolveItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert %s teacher. Answer each multiple-choice question below.\n", DisplayName(subject))
	if subject.HasCode() {
		b.WriteString("Trace the Java code carefully before choosing.\n")
	}
	fmt.Fprintf(&b, "Respond with ONLY a JSON array of exactly %d uppercase letters, one per question in the same order, for example [\"A\",\"C\"].\n", len(items))

	for i, item := range items {
		fmt.Fprintf(&b, "\nQuestion %d:\n", i+1)
		if item.Precondition != "" {
			fmt.Fprintf(&b, "Precondition:\n%s\n", item.Precondition)
		}
		if item.Reference != "" {
			fmt.Fprintf(&b, "Reference:\n%s\n", item.Reference)
		}
		fmt.Fprintf(&b, "%s\n", item.Stem)
		for j, opt := range item.Options {
			if opt == nil {
				continue
			}
			fmt.Fprintf(&b, "(%s) %s\n", model.Letters[j], *opt)
		}
	}
	return b.String()
}
