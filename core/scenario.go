package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/edgecov/schema"
)

// maxLogLineSize bounds a single log line read by Parse.
const maxLogLineSize = 1 << 20

// rawToken is what a malformed value is reported as: everything up to
// whitespace or one of ,;)]"}
var rawToken = regexp.MustCompile(`^[^\s,;)\]"}]*`)

var defaultValuePatterns = map[schema.ScenarioField]string{
	schema.FieldUUID:             schema.DefaultUUIDValue,
	schema.FieldEdgeCoveredCount: schema.DefaultCountValue,
	schema.FieldEdgeCoverage:     schema.DefaultCoverageValue,
	schema.FieldStatusCodeCount:  schema.DefaultCountValue,
}

var (
	errEmptyValue = errors.New("value is empty")
	errNegative   = errors.New("must not be negative")
	errNotFinite  = errors.New("must be a finite number")
	errNotInteger = errors.New("not an integer")
	errNotDecimal = errors.New("not a decimal number")
)

// labelMatcher finds one labeled value inside a log line.
type labelMatcher struct {
	field   schema.ScenarioField
	pattern *regexp.Regexp // label, then the value pattern anchored right after it
}

// extracted is the text found after a label. matched is false when the text
// does not have the field's value shape.
type extracted struct {
	text    string
	matched bool
}

// ScenarioParser extracts scenario records from execution logs using a
// labeled-field grammar. It holds no state between calls.
type ScenarioParser struct {
	marker *regexp.Regexp
	labels []labelMatcher
}

// NewScenarioParser compiles a grammar. Every scenario field must appear exactly once.
func NewScenarioParser(grammar schema.ScenarioGrammar) (*ScenarioParser, error) {
	if strings.TrimSpace(grammar.Marker) == "" {
		return nil, errors.New("scenario grammar needs a marker phrase")
	}
	seen := make(map[schema.ScenarioField]bool, len(grammar.Fields))
	labels := make([]labelMatcher, 0, len(grammar.Fields))
	for _, fl := range grammar.Fields {
		if _, ok := scenarioFieldSet[fl.Field]; !ok {
			return nil, fmt.Errorf("unknown scenario field %q", fl.Field)
		}
		if seen[fl.Field] {
			return nil, fmt.Errorf("scenario field %q appears twice", fl.Field)
		}
		if strings.TrimSpace(fl.Label) == "" {
			return nil, fmt.Errorf("scenario field %q has an empty label", fl.Field)
		}
		value := fl.Value
		if strings.TrimSpace(value) == "" {
			value = defaultValuePatterns[fl.Field]
		}
		pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(fl.Label) + `[ \t]*((?:` + value + `)?)`)
		if err != nil {
			return nil, fmt.Errorf("scenario field %q has an invalid value pattern: %w", fl.Field, err)
		}
		seen[fl.Field] = true
		labels = append(labels, labelMatcher{field: fl.Field, pattern: pattern})
	}
	for field := range scenarioFieldSet {
		if !seen[field] {
			return nil, fmt.Errorf("scenario grammar is missing field %q", field)
		}
	}
	return &ScenarioParser{
		marker: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(grammar.Marker)),
		labels: labels,
	}, nil
}

var scenarioFieldSet = map[schema.ScenarioField]struct{}{
	schema.FieldUUID:             {},
	schema.FieldEdgeCoveredCount: {},
	schema.FieldEdgeCoverage:     {},
	schema.FieldStatusCodeCount:  {},
}

// Parse reads log lines from r and parses them in order.
func (p *ScenarioParser) Parse(r io.Reader) (schema.ScenarioParseResult, error) {
	result := newScenarioParseResult()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLogLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.parseLine(lineNo, strings.TrimRight(scanner.Text(), "\r"), &result)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("cannot read log at line %d: %w", lineNo+1, err)
	}
	return result, nil
}

// ParseLines parses already split log lines. Non-matching lines are dropped
// silently; lines with unparsable values are skipped and recorded as failures.
func (p *ScenarioParser) ParseLines(lines []string) schema.ScenarioParseResult {
	result := newScenarioParseResult()
	for i, line := range lines {
		p.parseLine(i+1, line, &result)
	}
	return result
}

func newScenarioParseResult() schema.ScenarioParseResult {
	return schema.ScenarioParseResult{
		Records:  make([]schema.ScenarioRecord, 0),
		Failures: make([]schema.LineFailure, 0),
	}
}

func (p *ScenarioParser) parseLine(lineNo int, line string, result *schema.ScenarioParseResult) {
	values, ok := p.matchLine(line)
	if !ok {
		return
	}
	record, err := toScenarioRecord(values)
	if err != nil {
		var fieldErr *schema.FieldError
		failure := schema.LineFailure{Line: lineNo, Err: err.Error()}
		if errors.As(err, &fieldErr) {
			failure.Field = fieldErr.Field
			if fieldErr.Err != nil {
				failure.Err = fieldErr.Err.Error()
			}
		}
		result.Skipped++
		result.Failures = append(result.Failures, failure)
		return
	}
	result.Records = append(result.Records, record)
}

// matchLine finds the marker and then each label in grammar order.
// It reports false when the marker or any label is absent, or when the UUID
// does not have the UUID shape.
func (p *ScenarioParser) matchLine(line string) (map[schema.ScenarioField]extracted, bool) {
	loc := p.marker.FindStringIndex(line)
	if loc == nil {
		return nil, false
	}
	pos := loc[1]
	values := make(map[schema.ScenarioField]extracted, len(p.labels))
	for _, lm := range p.labels {
		m := lm.pattern.FindStringSubmatchIndex(line[pos:])
		if m == nil {
			return nil, false
		}
		start, end := pos+m[2], pos+m[3]
		value := extracted{text: line[start:end], matched: end > start && !continuesValue(line[end:])}
		if !value.matched {
			if lm.field == schema.FieldUUID {
				return nil, false
			}
			value.text = rawToken.FindString(line[start:])
		}
		values[lm.field] = value
		pos = end
	}
	return values, true
}

// continuesValue reports whether rest carries on the value just matched,
// as in "1.5" against an integer pattern or "12ab".
func continuesValue(rest string) bool {
	if rest == "" {
		return false
	}
	c := rest[0]
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c == '.':
		return len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9'
	}
	return false
}

// toScenarioRecord converts extracted values, failing on the first bad field.
func toScenarioRecord(values map[schema.ScenarioField]extracted) (schema.ScenarioRecord, error) {
	var record schema.ScenarioRecord
	var err error

	record.UUID = values[schema.FieldUUID].text
	if record.EdgeCoveredCount, err = parseCount(values, schema.FieldEdgeCoveredCount); err != nil {
		return record, err
	}
	if record.EdgeCoverage, err = parseCoverage(values, schema.FieldEdgeCoverage); err != nil {
		return record, err
	}
	if record.StatusCodeCount, err = parseCount(values, schema.FieldStatusCodeCount); err != nil {
		return record, err
	}
	return record, nil
}

// malformed builds the FieldError of a value that does not have its field's shape.
func malformed(value extracted, field schema.ScenarioField, shapeErr error) error {
	if value.text == "" {
		return &schema.FieldError{Record: "scenario", Field: string(field), Err: errEmptyValue}
	}
	return &schema.FieldError{Record: "scenario", Field: string(field), Err: fmt.Errorf("%w: %q", shapeErr, value.text)}
}

func parseCount(values map[schema.ScenarioField]extracted, field schema.ScenarioField) (int, error) {
	value := values[field]
	if !value.matched {
		return 0, malformed(value, field, errNotInteger)
	}
	raw := value.text
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &schema.FieldError{Record: "scenario", Field: string(field), Err: fmt.Errorf("%w: %q", errNotInteger, raw)}
	}
	if n < 0 {
		return 0, &schema.FieldError{Record: "scenario", Field: string(field), Err: errNegative}
	}
	return n, nil
}

func parseCoverage(values map[schema.ScenarioField]extracted, field schema.ScenarioField) (float64, error) {
	value := values[field]
	if !value.matched {
		return 0, malformed(value, field, errNotDecimal)
	}
	raw := value.text
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &schema.FieldError{Record: "scenario", Field: string(field), Err: fmt.Errorf("%w: %q", errNotDecimal, raw)}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &schema.FieldError{Record: "scenario", Field: string(field), Err: errNotFinite}
	}
	return v, nil
}
