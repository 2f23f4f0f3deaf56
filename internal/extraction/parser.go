// Package extraction turns raw extraction-model output into question rows.
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lshigami/examlens/internal/classifier"
	"github.com/lshigami/examlens/internal/model"
	"github.com/rs/zerolog/log"
)

// GenericStem is used when a question has options but no usable stem.
const GenericStem = "Which of the following is correct?"

// ErrMalformed is returned when the model output is not valid JSON.
var ErrMalformed = errors.New("model output is not valid JSON")

var (
	wrappedFenceRe = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*)```$")
	fenceRe        = regexp.MustCompile("(?s)```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)```")
	digitsRe       = regexp.MustCompile(`^\d+$`)
	optionLabelRe  = regexp.MustCompile(`^\(?([A-Ea-e])[.):]\s+`)
)

// StripFences returns the JSON body of raw. Output that is already valid JSON
// is returned as is, so fences inside string values are left alone. A fence
// wrapping the whole output is removed; otherwise the first fenced block
// wins and prose around it is discarded.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if json.Valid([]byte(raw)) {
		return raw
	}
	if m := wrappedFenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}

// Parse decodes raw model output into at most maxCount questions for subject.
// Malformed JSON is an error; a top-level value that is not an array, or an
// empty array, yields no questions and no error. maxCount <= 0 keeps all.
func Parse(raw string, maxCount int, subject model.Subject) ([]model.Question, error) {
	body := StripFences(raw)

	var top any
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	items, ok := top.([]any)
	if !ok {
		log.Warn().Str("subject", string(subject)).Msgf("Extraction output is a %T, not an array", top)
		return nil, nil
	}
	if maxCount > 0 && len(items) > maxCount {
		log.Debug().Int("returned", len(items)).Int("requested", maxCount).Msg("Truncating extraction output")
		items = items[:maxCount]
	}

	questions := make([]model.Question, 0, len(items))
	for i, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			log.Warn().Int("index", i).Msgf("Skipping extraction element of type %T", it)
			continue
		}
		q := normalize(obj, subject)
		q.Position = len(questions) + 1
		questions = append(questions, q)
	}
	return questions, nil
}

func normalize(obj map[string]any, subject model.Subject) model.Question {
	content := usable(str(obj["content"]))
	code := usable(str(obj["code"]))
	stem := usable(str(obj["question"]))
	imageDesc := usable(str(obj["image_description"]))

	var ref string
	switch {
	case code != "":
		ref = code
		if content != "" || imageDesc != "" {
			log.Debug().Bool("content", content != "").Bool("image_description", imageDesc != "").Msg("Code wins as reference; other sources dropped")
		}
	case content != "" && imageDesc != "":
		// A text table would stop parsing as one with prose appended.
		if classifier.IsTextTable(content) {
			log.Debug().Msg("Dropping image description next to a text table")
			ref = content
		} else {
			ref = content + "\n\n" + imageDesc
		}
	case content != "":
		ref = content
	default:
		ref = imageDesc
	}

	if subject.HasCode() {
		ref, stem = separateCode(ref, stem)
	}

	q := model.Question{
		ContentType:   contentType(str(obj["type"]), code, imageDesc),
		Reference:     optional(ref),
		CorrectAnswer: NormalizeLetter(obj["correct"]),
		PageNumber:    pageNumber(obj["page_number"]),
		Precondition:  optional(usable(str(obj["precondition"]))),
	}
	q.SetOptions(NormalizeOptions(obj["options"]))

	if stem == "" && q.HasOptions() {
		stem = GenericStem
	}
	q.Stem = stem
	return q
}

// separateCode keeps code and stem apart: a question sentence glued to the end
// of the code moves to the stem, and a stem repeated at the end of the code is
// cut from it.
func separateCode(ref, stem string) (string, string) {
	if stem == "" && ref != "" {
		if code, s, ok := classifier.SplitTrailingQuestion(ref); ok {
			return code, usable(s)
		}
		return ref, stem
	}
	if ref == "" && classifier.IsCodeLike(stem) {
		if code, s, ok := classifier.SplitTrailingQuestion(stem); ok {
			return code, usable(s)
		}
		return ref, stem
	}
	if ref != "" && stem != "" && strings.HasSuffix(ref, stem) && ref != stem {
		ref = strings.TrimRightFunc(strings.TrimSuffix(ref, stem), unicode.IsSpace)
	}
	return ref, stem
}

func contentType(declared, code, imageDesc string) string {
	switch t := strings.ToLower(strings.TrimSpace(declared)); t {
	case "code", "image", "text":
		return t
	}
	switch {
	case code != "":
		return "code"
	case imageDesc != "":
		return "image"
	}
	return "text"
}

// NormalizeOptions maps raw options onto the five A-E slots in order. Blank,
// missing and non-array input become nil slots; extra entries are dropped.
func NormalizeOptions(raw any) [5]*string {
	var slots [5]*string
	list, _ := raw.([]any)
	for i := 0; i < len(list) && i < len(slots); i++ {
		if list[i] == nil {
			continue
		}
		text := strings.TrimSpace(str(list[i]))
		if m := optionLabelRe.FindStringSubmatch(text); m != nil && strings.EqualFold(m[1], model.Letters[i]) {
			text = strings.TrimSpace(text[len(m[0]):])
		}
		if text != "" {
			slots[i] = &text
		}
	}
	return slots
}

// NormalizeLetter accepts A-E in any case with surrounding space.
func NormalizeLetter(raw any) *string {
	s, ok := raw.(string)
	if !ok {
		return nil
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if !model.IsLetter(s) {
		return nil
	}
	return &s
}

func pageNumber(raw any) *int {
	var n int
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return nil
		}
		n = int(v)
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		n = p
	default:
		return nil
	}
	if n < 1 {
		return nil
	}
	return &n
}

// IsTrivial reports whether text is placeholder content: shorter than three
// characters, only digits, or the generic fallback stem.
func IsTrivial(text string) bool {
	text = strings.TrimSpace(text)
	return utf8.RuneCountInString(text) < 3 ||
		digitsRe.MatchString(text) ||
		strings.EqualFold(text, GenericStem)
}

func usable(text string) string {
	text = strings.TrimSpace(text)
	if IsTrivial(text) {
		return ""
	}
	return text
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
