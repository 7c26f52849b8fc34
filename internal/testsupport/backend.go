package testsupport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BackendSecret signs the tokens issued by Backend.
const BackendSecret = "study-test-secret"

// RecordedRequest is a request observed by Backend.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

type backendUser struct {
	Name     string
	Email    string
	Password string
	Mobile   string
}

// Backend is an in-memory stand-in for the study backend served over
// httptest. Routes can be replaced with Override.
type Backend struct {
	server *httptest.Server

	mu        sync.Mutex
	users     map[string]*backendUser
	tokens    map[string]string
	notes     []map[string]any
	requests  []RecordedRequest
	overrides map[string]http.HandlerFunc
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t testing.TB) *Backend {
	t.Helper()

	b := &Backend{
		users:     make(map[string]*backendUser),
		tokens:    make(map[string]string),
		overrides: make(map[string]http.HandlerFunc),
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.server.Close)
	return b
}

// URL returns the backend root.
func (b *Backend) URL() string { return b.server.URL }

// Override replaces the handler for method and path.
func (b *Backend) Override(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overrides[method+" "+path] = h
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// AddUser registers an account directly.
func (b *Backend) AddUser(name, email, password, mobile string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = &backendUser{Name: name, Email: email, Password: password, Mobile: mobile}
}

// IssueToken returns a valid bearer token for email.
func (b *Backend) IssueToken(t testing.TB, email string) string {
	t.Helper()
	token, err := SignToken(email, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	b.mu.Lock()
	b.tokens[token] = email
	b.mu.Unlock()
	return token
}

// AddNote appends an entry to the notes history.
func (b *Backend) AddNote(note map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = append(b.notes, note)
}

// SignToken builds an HS256 token for subject expiring at exp.
func SignToken(subject string, exp time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(BackendSecret))
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	override := b.overrides[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	r.Body = io.NopCloser(strings.NewReader(string(body)))
	if override != nil {
		override(w, r)
		return
	}

	switch r.Method + " " + r.URL.Path {
	case "POST /auth/register":
		b.register(w, body)
	case "POST /auth/login":
		b.login(w, body)
	case "GET /auth/me", "PUT /auth/me", "DELETE /auth/me":
		b.withUser(w, r, func(u *backendUser) { b.me(w, r.Method, body, u) })
	case "POST /summarize":
		b.withUser(w, r, func(*backendUser) { b.summarize(w, r) })
	case "POST /explain":
		b.withUser(w, r, func(*backendUser) { b.explain(w, body) })
	case "POST /make-notes":
		b.withUser(w, r, func(*backendUser) { b.makeNotes(w, body) })
	case "POST /make-mcq":
		b.withUser(w, r, func(*backendUser) { b.makeMCQ(w, body) })
	case "POST /qna":
		b.withUser(w, r, func(*backendUser) { b.qna(w, body) })
	case "GET /notes":
		b.withUser(w, r, func(*backendUser) {
			b.mu.Lock()
			notes := append([]map[string]any{}, b.notes...)
			b.mu.Unlock()
			writeJSON(w, http.StatusOK, notes)
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
	}
}

func (b *Backend) withUser(w http.ResponseWriter, r *http.Request, fn func(*backendUser)) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	b.mu.Lock()
	email, ok := b.tokens[token]
	user := b.users[email]
	b.mu.Unlock()
	if !ok || user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
		return
	}
	fn(user)
}

func (b *Backend) register(w http.ResponseWriter, body []byte) {
	var in backendUser
	if err := json.Unmarshal(body, &in); err != nil || in.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[in.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}
	b.users[in.Email] = &in
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
}

func (b *Backend) login(w http.ResponseWriter, body []byte) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	_ = json.Unmarshal(body, &in)
	b.mu.Lock()
	user := b.users[in.Email]
	b.mu.Unlock()
	if user == nil || user.Password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	token, err := SignToken(user.Email, time.Now().Add(time.Hour))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	b.mu.Lock()
	b.tokens[token] = user.Email
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         map[string]string{"name": user.Name, "email": user.Email},
	})
}

func (b *Backend) me(w http.ResponseWriter, method string, body []byte, u *backendUser) {
	switch method {
	case http.MethodGet:
		b.mu.Lock()
		profile := map[string]string{"name": u.Name, "email": u.Email, "mobile": u.Mobile}
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, profile)
	case http.MethodPut:
		var in struct {
			Name   string `json:"name"`
			Mobile string `json:"mobile"`
		}
		_ = json.Unmarshal(body, &in)
		b.mu.Lock()
		if in.Name != "" {
			u.Name = in.Name
		}
		u.Mobile = in.Mobile
		name := u.Name
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"message": "Profile updated", "user": map[string]string{"name": name}})
	case http.MethodDelete:
		b.mu.Lock()
		delete(b.users, u.Email)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
	}
}

func (b *Backend) summarize(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()
	data, _ := io.ReadAll(file)
	summary := fmt.Sprintf("# %s\n\n**Key** idea from %d bytes\n- first point\n- second point", header.Filename, len(data))
	b.AddNote(map[string]any{"title": header.Filename, "pdf_name": header.Filename, "summary": summary})
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (b *Backend) explain(w http.ResponseWriter, body []byte) {
	var in struct {
		Topic string `json:"topic"`
	}
	_ = json.Unmarshal(body, &in)
	writeJSON(w, http.StatusOK, map[string]any{
		"explanation": []map[string]any{
			{"title": in.Topic, "paragraph": "An overview of " + in.Topic + ".", "bullets": []string{"first", "second"}},
			{"title": "Key terms", "terms": []string{in.Topic}, "faqs": []map[string]string{{"q": "Why?", "a": "Because."}}},
		},
	})
}

func (b *Backend) makeNotes(w http.ResponseWriter, body []byte) {
	var in struct {
		Text string `json:"text"`
	}
	_ = json.Unmarshal(body, &in)
	b.AddNote(map[string]any{"title": "Notes", "content": in.Text})
	writeJSON(w, http.StatusOK, map[string]any{"notes": []string{"Main idea: " + in.Text, "Review later"}})
}

func (b *Backend) makeMCQ(w http.ResponseWriter, body []byte) {
	var in struct {
		Text  string `json:"text"`
		Count int    `json:"count"`
	}
	_ = json.Unmarshal(body, &in)
	if in.Count <= 0 {
		in.Count = 1
	}
	var sb strings.Builder
	for i := 1; i <= in.Count; i++ {
		fmt.Fprintf(&sb, "%d. Question %d about %s?\nA) yes\nB) no\nCorrect answer: A\n\n", i, i, in.Text)
	}
	writeJSON(w, http.StatusOK, map[string]string{"mcqs": sb.String()})
}

func (b *Backend) qna(w http.ResponseWriter, body []byte) {
	var in struct {
		Question string `json:"question"`
	}
	_ = json.Unmarshal(body, &in)
	writeJSON(w, http.StatusOK, map[string]string{"answer": "Answer to: " + in.Question})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
