package api

import (
	"context"
	"log/slog"
	"strings"

	"study/internal/explain"
	"study/internal/logging"
	"study/internal/markdown"
	"study/internal/transport"
)

// Sender issues one backend request. *transport.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, req transport.Request) (transport.ParsedBody, error)
}

// Client exposes the backend endpoints.
type Client struct {
	sender Sender
	logger *slog.Logger
}

// NewClient wraps sender. A nil logger discards output.
func NewClient(sender Sender, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{sender: sender, logger: logging.NewComponentLogger(logger, "api")}
}

func (c *Client) send(ctx context.Context, method transport.Method, path, token string, body transport.Body) (transport.ParsedBody, error) {
	parsed, err := c.sender.Send(ctx, transport.Request{Method: method, Path: path, Body: body, Token: token})
	if err != nil {
		return parsed, err
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEndpoint, path),
		logging.String("body_kind", parsed.Kind.String()),
		logging.Bool("authenticated", token != ""),
	}
	if parsed.IsText() {
		attrs = append(attrs, logging.Int("text_bytes", len(parsed.Text)))
	}
	c.logger.Debug("response decoded", logging.Args(attrs...)...)
	return parsed, nil
}

func jsonBody(v any) transport.Body {
	return transport.JSONBody{Value: v}
}

// Register creates an account. Name, email and password are required.
func (c *Client) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return RegisterResult{}, &InputError{Message: "All fields required"}
	}
	body, err := c.send(ctx, transport.MethodPost, PathRegister, "", jsonBody(in))
	if err != nil {
		return RegisterResult{}, err
	}
	var result RegisterResult
	if obj, ok := body.Object(); ok {
		result.Message = str(obj, "message")
		result.Token = firstStr(obj, "token", "access_token")
	} else if body.IsText() {
		result.Message = strings.TrimSpace(body.Text)
	}
	return result, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, &InputError{Message: "Email + password required"}
	}
	body, err := c.send(ctx, transport.MethodPost, PathLogin, "", jsonBody(map[string]string{
		"email":    email,
		"password": password,
	}))
	if err != nil {
		return LoginResult{}, err
	}
	obj, _ := body.Object()
	token := firstStr(obj, "access_token", "token")
	if token == "" {
		return LoginResult{}, ErrTokenMissing
	}
	result := LoginResult{Token: token}
	if user, ok := obj["user"].(map[string]any); ok {
		result.User = User{Name: str(user, "name"), Email: str(user, "email")}
	}
	return result, nil
}

// Me fetches the current profile.
func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	body, err := c.send(ctx, transport.MethodGet, PathMe, token, nil)
	if err != nil {
		return Profile{}, err
	}
	if err := requireBody(PathMe, body); err != nil {
		return Profile{}, err
	}
	obj, ok := body.Object()
	if !ok {
		return Profile{}, shapeError(PathMe, body)
	}
	if user, ok := obj["user"].(map[string]any); ok && str(obj, "email") == "" {
		obj = user
	}
	return Profile{Name: str(obj, "name"), Email: str(obj, "email"), Mobile: str(obj, "mobile")}, nil
}

// UpdateMe changes the profile name and mobile number.
func (c *Client) UpdateMe(ctx context.Context, token, name, mobile string) (UpdateResult, error) {
	body, err := c.send(ctx, transport.MethodPut, PathMe, token, jsonBody(map[string]string{
		"name":   strings.TrimSpace(name),
		"mobile": strings.TrimSpace(mobile),
	}))
	if err != nil {
		return UpdateResult{}, err
	}
	var result UpdateResult
	if obj, ok := body.Object(); ok {
		result.Message = str(obj, "message")
		if user, ok := obj["user"].(map[string]any); ok {
			result.UserName = str(user, "name")
		}
	}
	return result, nil
}

// DeleteMe deletes the account.
func (c *Client) DeleteMe(ctx context.Context, token string) (DeleteResult, error) {
	body, err := c.send(ctx, transport.MethodDelete, PathMe, token, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	var result DeleteResult
	if obj, ok := body.Object(); ok {
		result.Message = str(obj, "message")
	}
	return result, nil
}

// Summarize uploads a document and renders the returned summary.
func (c *Client) Summarize(ctx context.Context, token, fileName string, data []byte) (Summary, error) {
	body, err := c.send(ctx, transport.MethodPost, PathSummarize, token, transport.FormBody{
		FieldName: "file",
		FileName:  fileName,
		Data:      data,
	})
	if err != nil {
		return Summary{}, err
	}
	if err := requireBody(PathSummarize, body); err != nil {
		return Summary{}, err
	}
	raw, err := textField(PathSummarize, body, "summary")
	if err != nil {
		return Summary{}, err
	}
	return Summary{Raw: raw, Blocks: markdown.Render(raw)}, nil
}

// Explain asks for an explanation of topic.
func (c *Client) Explain(ctx context.Context, token, topic string) (Explanation, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Explanation{}, &InputError{Message: "Topic required"}
	}
	body, err := c.send(ctx, transport.MethodPost, PathExplain, token, jsonBody(map[string]string{"topic": topic}))
	if err != nil {
		return Explanation{}, err
	}
	if err := requireBody(PathExplain, body); err != nil {
		return Explanation{}, err
	}
	var value any
	switch {
	case body.IsText():
		value = body.Text
	default:
		value = body.JSON
		if obj, ok := body.Object(); ok {
			if inner, found := obj["explanation"]; found {
				value = inner
			}
		}
	}
	return Explanation{Topic: topic, Sections: explain.Render(value)}, nil
}

// MakeNotes generates study notes from text.
func (c *Client) MakeNotes(ctx context.Context, token, text string) (Notes, error) {
	if strings.TrimSpace(text) == "" {
		return Notes{}, &InputError{Message: "Text required"}
	}
	body, err := c.send(ctx, transport.MethodPost, PathMakeNotes, token, jsonBody(map[string]string{"text": text}))
	if err != nil {
		return Notes{}, err
	}
	if err := requireBody(PathMakeNotes, body); err != nil {
		return Notes{}, err
	}
	return decodeNotes(body)
}

// MakeMCQ generates a quiz from text. A count <= 0 leaves the size to the
// backend.
func (c *Client) MakeMCQ(ctx context.Context, token, text string, count int) (Quiz, error) {
	if strings.TrimSpace(text) == "" {
		return Quiz{}, &InputError{Message: "Text required"}
	}
	payload := map[string]any{"text": text}
	if count > 0 {
		payload["count"] = count
	}
	body, err := c.send(ctx, transport.MethodPost, PathMakeMCQ, token, jsonBody(payload))
	if err != nil {
		return Quiz{}, err
	}
	if err := requireBody(PathMakeMCQ, body); err != nil {
		return Quiz{}, err
	}
	return decodeQuiz(body)
}

// Ask answers question, optionally grounded in context text.
func (c *Client) Ask(ctx context.Context, token, question, text string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, &InputError{Message: "Question required"}
	}
	payload := map[string]string{"question": question}
	if strings.TrimSpace(text) != "" {
		payload["text"] = text
	}
	body, err := c.send(ctx, transport.MethodPost, PathQnA, token, jsonBody(payload))
	if err != nil {
		return Answer{}, err
	}
	if err := requireBody(PathQnA, body); err != nil {
		return Answer{}, err
	}
	answer, err := textField(PathQnA, body, "answer")
	if err != nil {
		return Answer{}, err
	}
	return Answer{Question: question, Text: answer}, nil
}

// ListNotes returns the saved notes history. A body that is not an array is
// treated as no notes.
func (c *Client) ListNotes(ctx context.Context, token string) ([]NoteEntry, error) {
	body, err := c.send(ctx, transport.MethodGet, PathNotes, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeNoteEntries(body), nil
}
