package mcq

import (
	"regexp"
	"strings"
)

type state int

const (
	stateNoQuestion state = iota
	stateInQuestion
	stateInOptions
	stateAfterAnswer
)

var (
	questionPattern = regexp.MustCompile(`^\d+\.`)
	optionPattern   = regexp.MustCompile(`^([A-Da-d])\)`)
	answerPattern   = regexp.MustCompile(`(?i)^correct answer:`)
)

func optionOf(line string) (letter string, text string, ok bool) {
	m := optionPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(line[m[2]:m[3]]), strings.TrimSpace(line[m[1]:]), true
}

type parser struct {
	state   state
	records []Record
}

// Parse decodes a quiz transcript into records. It never fails: option or
// answer lines with no open question, options beyond the fourth, options
// after the answer line and unrecognized lines are ignored.
func Parse(transcript string) []Record {
	p := &parser{}
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p.feed(line)
	}
	return p.finish()
}

func (p *parser) feed(line string) {
	switch {
	case questionPattern.MatchString(line):
		p.records = append(p.records, Record{Question: line, Options: make([]string, 0, MaxOptions)})
		p.state = stateInQuestion
	case optionPattern.MatchString(line):
		if p.state != stateInQuestion && p.state != stateInOptions {
			return
		}
		p.state = stateInOptions
		cur := p.current()
		if len(cur.Options) == MaxOptions {
			return
		}
		_, text, _ := optionOf(line)
		cur.Options = append(cur.Options, text)
	case answerPattern.MatchString(line):
		if p.state != stateInQuestion && p.state != stateInOptions {
			return
		}
		cur := p.current()
		cur.CorrectAnswerLine = line
		cur.HasAnswer = true
		p.state = stateAfterAnswer
	}
}

func (p *parser) current() *Record {
	return &p.records[len(p.records)-1]
}

// finish closes any option list still open at end of input.
func (p *parser) finish() []Record {
	p.state = stateNoQuestion
	if p.records == nil {
		return []Record{}
	}
	return p.records
}
