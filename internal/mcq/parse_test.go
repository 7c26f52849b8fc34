package mcq

import (
	"reflect"
	"testing"
)

func TestParseSingleQuestion(t *testing.T) {
	transcript := "1. What is 2+2?\nA) 3\nB) 4\nCorrect answer: B\n"
	got := Parse(transcript)
	want := []Record{{
		Question:          "1. What is 2+2?",
		Options:           []string{"3", "4"},
		CorrectAnswerLine: "Correct answer: B",
		HasAnswer:         true,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse()\n got  %#v\n want %#v", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Record
	}{
		{
			name: "empty transcript",
			in:   "",
			want: []Record{},
		},
		{
			name: "options before any question are ignored",
			in:   "A) stray\nCorrect answer: A\n1. Real?\nA) yes",
			want: []Record{{Question: "1. Real?", Options: []string{"yes"}}},
		},
		{
			name: "lowercase letters and answer prefix",
			in:   "1. Pick one\na) first\nb)second\ncorrect ANSWER: a",
			want: []Record{{
				Question:          "1. Pick one",
				Options:           []string{"first", "second"},
				CorrectAnswerLine: "correct ANSWER: a",
				HasAnswer:         true,
			}},
		},
		{
			name: "commentary and blank lines skipped",
			in:   "Here is your quiz:\n\n  1. Q one  \n\n  A) a1\nNote: think carefully\nB) b1\n\n2. Q two\nC) c2\n",
			want: []Record{
				{Question: "1. Q one", Options: []string{"a1", "b1"}},
				{Question: "2. Q two", Options: []string{"c2"}},
			},
		},
		{
			name: "at most four options",
			in:   "1. Many\nA) a\nB) b\nC) c\nD) d\nA) again",
			want: []Record{{Question: "1. Many", Options: []string{"a", "b", "c", "d"}}},
		},
		{
			name: "options after the answer line are ignored",
			in:   "1. Q\nA) a\nCorrect answer: A\nB) late\nCorrect answer: B",
			want: []Record{{
				Question:          "1. Q",
				Options:           []string{"a"},
				CorrectAnswerLine: "Correct answer: A",
				HasAnswer:         true,
			}},
		},
		{
			name: "answer directly after question",
			in:   "1. Q\nCorrect answer: none",
			want: []Record{{
				Question:          "1. Q",
				Options:           []string{},
				CorrectAnswerLine: "Correct answer: none",
				HasAnswer:         true,
			}},
		},
		{
			name: "crlf and letters outside A-D",
			in:   "1. Q\r\nE) nope\r\nA) yes\r\n",
			want: []Record{{Question: "1. Q", Options: []string{"yes"}}},
		},
		{
			name: "new question closes previous option list",
			in:   "1. First\nA) x\n2. Second\nB) y\nCorrect answer: B",
			want: []Record{
				{Question: "1. First", Options: []string{"x"}},
				{Question: "2. Second", Options: []string{"y"}, CorrectAnswerLine: "Correct answer: B", HasAnswer: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse(%q)\n got  %#v\n want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromItems(t *testing.T) {
	items := []Item{
		{Question: " 1. Capital of France? ", Options: []string{"A) Paris", "B) Rome"}, Answer: "A"},
		{Question: "Largest planet", Options: []string{"Mars", "Jupiter", "Venus", "Earth", "Saturn"}, Answer: "Correct answer: B"},
		{Question: "Open", Options: nil},
	}
	got := FromItems(items)
	want := []Record{
		{Question: "1. Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswerLine: "Correct answer: A", HasAnswer: true},
		{Question: "Largest planet", Options: []string{"Mars", "Jupiter", "Venus", "Earth"}, CorrectAnswerLine: "Correct answer: B", HasAnswer: true},
		{Question: "Open", Options: []string{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FromItems()\n got  %#v\n want %#v", got, want)
	}
}
