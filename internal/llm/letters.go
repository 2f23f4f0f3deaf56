package llm

import (
	"encoding/json"
	"regexp"

	"github.com/lshigami/examlens/internal/extraction"
)

// ParseStage tells which stage of ParseAnswerLetters produced the result.
type ParseStage string

const (
	StageStrict  ParseStage = "strict"
	StageLenient ParseStage = "lenient"
	StageNone    ParseStage = "none"
)

var quotedLetterRe = regexp.MustCompile(`["']([A-E])["']`)

// ParseAnswerLetters maps a solve response onto n positions. The strict stage
// reads a JSON array; if that fails the lenient stage scans for quoted
// letters A-E in order. Missing or invalid positions are nil, so a short
// response never shifts later answers.
func ParseAnswerLetters(raw string, n int) ([]*string, ParseStage) {
	out := make([]*string, n)

	var arr []any
	if err := json.Unmarshal([]byte(extraction.StripFences(raw)), &arr); err == nil {
		for i := 0; i < n && i < len(arr); i++ {
			out[i] = extraction.NormalizeLetter(arr[i])
		}
		return out, StageStrict
	}

	matches := quotedLetterRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return out, StageNone
	}
	for i := 0; i < n && i < len(matches); i++ {
		letter := matches[i][1]
		out[i] = &letter
	}
	return out, StageLenient
}
