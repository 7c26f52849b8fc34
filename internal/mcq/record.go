package mcq

import "strings"

// MaxOptions is the number of option letters (A through D) a record holds.
const MaxOptions = 4

// Record is one decoded question. Options keep input order. CorrectAnswerLine
// is the answer line exactly as the generator wrote it; HasAnswer reports
// whether one was present.
type Record struct {
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	CorrectAnswerLine string   `json:"correct_answer_line,omitempty"`
	HasAnswer         bool     `json:"has_answer"`
}

// Item is the structured quiz form some backend versions return.
type Item struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer,omitempty"`
}

// FromItems canonicalizes structured items into records. Option prefixes such
// as "A) " are stripped, options past the fourth are dropped and a bare
// answer is rewritten as a "Correct answer: " line.
func FromItems(items []Item) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		rec := Record{
			Question: strings.TrimSpace(item.Question),
			Options:  make([]string, 0, MaxOptions),
		}
		for _, opt := range item.Options {
			if len(rec.Options) == MaxOptions {
				break
			}
			opt = strings.TrimSpace(opt)
			if _, rest, ok := optionOf(opt); ok {
				opt = rest
			}
			rec.Options = append(rec.Options, opt)
		}
		if answer := strings.TrimSpace(item.Answer); answer != "" {
			if !answerPattern.MatchString(answer) {
				answer = "Correct answer: " + answer
			}
			rec.CorrectAnswerLine = answer
			rec.HasAnswer = true
		}
		records = append(records, rec)
	}
	return records
}
