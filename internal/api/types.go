package api

import (
	"study/internal/explain"
	"study/internal/markdown"
	"study/internal/mcq"
	"study/internal/textutil"
)

// Endpoint paths.
const (
	PathRegister  = "/auth/register"
	PathLogin     = "/auth/login"
	PathMe        = "/auth/me"
	PathSummarize = "/summarize"
	PathExplain   = "/explain"
	PathMakeNotes = "/make-notes"
	PathMakeMCQ   = "/make-mcq"
	PathQnA       = "/qna"
	PathNotes     = "/notes"
)

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile,omitempty"`
}

// RegisterResult holds whichever of message or token the backend returned.
type RegisterResult struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
}

// User is the account summary returned alongside a login.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LoginResult carries the issued bearer token.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Profile is the current account.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

// UpdateResult reports a profile update. UserName is empty when the backend
// did not echo the user back.
type UpdateResult struct {
	UserName string `json:"user_name,omitempty"`
	Message  string `json:"message,omitempty"`
}

// DeleteResult reports an account deletion.
type DeleteResult struct {
	Message string `json:"message,omitempty"`
}

// Summary is a rendered document summary.
type Summary struct {
	Raw    string           `json:"raw"`
	Blocks []markdown.Block `json:"blocks"`
}

// Explanation is a rendered topic explanation.
type Explanation struct {
	Topic    string            `json:"topic"`
	Sections []explain.Section `json:"sections"`
}

// Notes are generated study notes, one entry per note.
type Notes struct {
	Items []string `json:"items"`
}

// Quiz is a generated multiple-choice quiz.
type Quiz struct {
	Records []mcq.Record `json:"records"`
}

// Answer is a Q&A response.
type Answer struct {
	Question string `json:"question"`
	Text     string `json:"answer"`
}

// NoteEntry is one saved note from the notes history.
type NoteEntry struct {
	Title   string `json:"title,omitempty"`
	PDFName string `json:"pdf_name,omitempty"`
	Content string `json:"content,omitempty"`
	Summary string `json:"summary,omitempty"`
}

const defaultNoteTitle = "Note"

// DisplayTitle returns the note title, or "Note" when it has none.
func (n NoteEntry) DisplayTitle() string {
	if n.Title == "" {
		return defaultNoteTitle
	}
	return n.Title
}

// Preview returns the note body (content, else summary) cut to limit runes.
func (n NoteEntry) Preview(limit int) string {
	body := n.Content
	if body == "" {
		body = n.Summary
	}
	return textutil.Preview(textutil.OneLine(body), limit)
}
