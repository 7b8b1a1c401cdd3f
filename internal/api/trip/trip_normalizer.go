package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// The model is prompted to emit pure JSON but routinely wraps it in markdown
// fences, annotates it with pseudo-code comments, truncates long URL values
// or cuts the document off entirely at the token limit. The normalizer is a
// fixed pipeline of text repairs followed by a decode with bounded-effort
// truncation recovery. It is biased toward recovering some valid structure
// over perfect fidelity; it never fabricates a plan on failure.

// RepairPath identifies which truncation-repair stage produced a decodable
// document. Logged and counted for observability.
type RepairPath string

const (
	RepairNone    RepairPath = "none"
	RepairSuffix  RepairPath = "suffix"
	RepairBalance RepairPath = "balance"
)

// ErrNoJSONBoundary reports that the cleaned text contains no '{'/'}' pair.
// There is no object to repair, so this is the one unrecoverable case.
var ErrNoJSONBoundary = errors.New("no structural boundaries found in response")

const previewLimit = 500

// NormalizeError carries the last parse error together with a bounded
// preview of the text that could not be decoded.
type NormalizeError struct {
	Preview string
	Err     error
}

func (e *NormalizeError) Error() string {
	return fmt.Sprintf("failed to normalize AI response: %v", e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }

func newNormalizeError(text string, err error) *NormalizeError {
	preview := text
	if len(preview) > previewLimit {
		preview = preview[:previewLimit]
	}
	return &NormalizeError{Preview: preview, Err: err}
}

var (
	fenceJSONRe = regexp.MustCompile("(?i)```json\\s*")
	fenceBareRe = regexp.MustCompile("```\\s*")

	lineCommentRe  = regexp.MustCompile(`//.*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

	ctrlReplacer = strings.NewReplacer("\n", " ", "\r", " ", "\t", " ")
)

// urlFields are the URL-valued keys the model is known to truncate
// mid-string, leaving a bare scheme prefix behind.
var urlFields = []string{"image_url", "booking_url"}

type urlFieldFix struct {
	field     string
	truncated *regexp.Regexp // scheme prefix immediately followed by a structural delimiter
	dangling  *regexp.Regexp // scheme prefix running to end of line without a closing quote
	nullRepl  string
}

var urlFixes = buildURLFixes()

func buildURLFixes() []urlFieldFix {
	fixes := make([]urlFieldFix, 0, len(urlFields))
	for _, f := range urlFields {
		fixes = append(fixes, urlFieldFix{
			field:     f,
			truncated: regexp.MustCompile(`"` + f + `":\s*"https:\s*(["}])`),
			dangling:  regexp.MustCompile(`(?m)"` + f + `":\s*"https:[^"]*$`),
			nullRepl:  `"` + f + `": null,$1`,
		})
	}
	return fixes
}

// stripCodeFences removes both language-tagged and bare fence delimiters
// anywhere in the text.
func stripCodeFences(s string) string {
	s = fenceJSONRe.ReplaceAllString(s, "")
	s = fenceBareRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripComments removes // line comments and /* */ block comments. The model
// should never emit either inside pure data, but it does.
func stripComments(s string) string {
	s = lineCommentRe.ReplaceAllString(s, "")
	return blockCommentRe.ReplaceAllString(s, "")
}

// extractObject slices the text down to [first '{', last '}'].
func extractObject(s string) (string, error) {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last <= first {
		return "", ErrNoJSONBoundary
	}
	return strings.TrimSpace(s[first : last+1]), nil
}

// fixTruncatedURLs rewrites the known URL truncation signatures: a value cut
// right after its scheme and followed by a structural delimiter becomes a
// null placeholder; a line ending mid-value gets its quote closed.
func fixTruncatedURLs(s string) string {
	for _, fix := range urlFixes {
		s = fix.truncated.ReplaceAllString(s, fix.nullRepl)
		s = fix.dangling.ReplaceAllStringFunc(s, func(m string) string {
			return m + `",`
		})
	}
	return s
}

// flattenControlChars replaces literal newlines, carriage returns and tabs
// with single spaces. Unescaped control characters inside string values are
// a guaranteed decode failure, and telling "inside a string" from "outside"
// apart would require a full parser; collapsing whitespace is a lossy but
// safe over-approximation for prose descriptions.
func flattenControlChars(s string) string {
	return ctrlReplacer.Replace(s)
}

// stripTrailingCommas removes commas immediately preceding '}' or ']'.
func stripTrailingCommas(s string) string {
	return trailingCommaRe.ReplaceAllString(s, "$1")
}

// CleanResponse runs the pure text-repair pipeline in its fixed order and
// returns the cleaned candidate JSON text. Running it on already-clean text
// is a no-op. The only failure is ErrNoJSONBoundary.
func CleanResponse(raw string) (string, error) {
	s := stripCodeFences(raw)
	s = stripComments(s)
	s, err := extractObject(s)
	if err != nil {
		return "", err
	}
	s = fixTruncatedURLs(s)
	s = flattenControlChars(s)
	s = stripTrailingCommas(s)
	return s, nil
}

// closingSuffixes is the fixed ordered list of short closers tried first when
// a decode fails with a premature end of input.
var closingSuffixes = []string{"}", "]", `"}`, `"]`, "}}", "]}", "}}]", "}]}", "}"}

func decodePlan(s string) (*types.GeneratedPlan, error) {
	var plan types.GeneratedPlan
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// isTruncationError reports whether the decode failed because the document
// ended prematurely, the only failure mode the repair stages apply to.
func isTruncationError(err error) bool {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return strings.Contains(syn.Error(), "unexpected end of JSON input")
	}
	return strings.Contains(err.Error(), "unexpected end of JSON input")
}

// balanceSuffix counts the unmatched opening braces and brackets and returns
// the owed closers, brackets before braces so nested arrays close first.
// Naive counting misfires when a string value itself contains unescaped
// structural characters; that limitation is accepted.
func balanceSuffix(s string) string {
	openBraces := strings.Count(s, "{") - strings.Count(s, "}")
	openBrackets := strings.Count(s, "[") - strings.Count(s, "]")
	var b strings.Builder
	for i := 0; i < openBrackets; i++ {
		b.WriteByte(']')
	}
	for i := 0; i < openBraces; i++ {
		b.WriteByte('}')
	}
	return b.String()
}

// NormalizePlanResponse converts raw model output into a GeneratedPlan, or
// fails with a NormalizeError carrying the last parse error and a bounded
// preview. The returned RepairPath reports which recovery stage, if any,
// produced the decodable document.
func NormalizePlanResponse(raw string) (*types.GeneratedPlan, RepairPath, error) {
	cleaned, err := CleanResponse(raw)
	if err != nil {
		return nil, RepairNone, newNormalizeError(raw, err)
	}

	plan, decodeErr := decodePlan(cleaned)
	if decodeErr == nil {
		if err := validatePlanDocument([]byte(cleaned)); err != nil {
			return nil, RepairNone, newNormalizeError(cleaned, err)
		}
		return plan, RepairNone, nil
	}

	// Only a premature end of input is repairable; anything else (invalid
	// token, type mismatch) propagates immediately.
	if !isTruncationError(decodeErr) {
		return nil, RepairNone, newNormalizeError(cleaned, decodeErr)
	}

	for _, suffix := range closingSuffixes {
		if plan, err := decodePlan(cleaned + suffix); err == nil {
			if err := validatePlanDocument([]byte(cleaned + suffix)); err != nil {
				continue
			}
			return plan, RepairSuffix, nil
		}
	}

	if suffix := balanceSuffix(cleaned); suffix != "" {
		if plan, err := decodePlan(cleaned + suffix); err == nil {
			if err := validatePlanDocument([]byte(cleaned + suffix)); err == nil {
				return plan, RepairBalance, nil
			}
		}
	}

	// All repair attempts exhausted; surface the original decode error.
	return nil, RepairNone, newNormalizeError(cleaned, decodeErr)
}
