package model

// Subject is one of the five fixed exam subjects an upload can declare.
type Subject string

const (
	SubjectComputerScienceA Subject = "AP_COMPUTER_SCIENCE_A"
	SubjectStatistics       Subject = "AP_STATISTICS"
	SubjectCalculusAB       Subject = "AP_CALCULUS_AB"
	SubjectMacroeconomics   Subject = "AP_MACROECONOMICS"
	SubjectUSHistory        Subject = "AP_US_HISTORY"
)

// Subjects lists every recognized subject in display order.
var Subjects = []Subject{
	SubjectComputerScienceA,
	SubjectStatistics,
	SubjectCalculusAB,
	SubjectMacroeconomics,
	SubjectUSHistory,
}

func ParseSubject(s string) (Subject, bool) {
	for _, subj := range Subjects {
		if string(subj) == s {
			return subj, true
		}
	}
	return "", false
}

// HasCode reports whether questions carry source code that must be kept apart
// from the stem.
func (s Subject) HasCode() bool {
	return s == SubjectComputerScienceA
}

// HasGraphs reports whether questions may reference graphs or tables that are
// rendered from the original PDF page.
func (s Subject) HasGraphs() bool {
	switch s {
	case SubjectStatistics, SubjectCalculusAB, SubjectMacroeconomics:
		return true
	}
	return false
}

// Letters are the option labels in slot order.
var Letters = [5]string{"A", "B", "C", "D", "E"}

// IsLetter reports whether s is exactly one of A-E.
func IsLetter(s string) bool {
	switch s {
	case "A", "B", "C", "D", "E":
		return true
	}
	return false
}
