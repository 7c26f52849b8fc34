package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// Method is the HTTP verb of a backend call.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// Request describes a single backend call. It is built once by the call site
// and never modified by the client.
type Request struct {
	Method Method
	Path   string
	Body   Body
	Token  string
}

// Body is the payload of a Request. A nil Body sends no content.
type Body interface {
	encode() (io.Reader, string, error)
}

// JSONBody sends Value encoded as JSON.
type JSONBody struct {
	Value any
}

func (b JSONBody) encode() (io.Reader, string, error) {
	encoded, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return bytes.NewReader(encoded), jsonContentType, nil
}

// FormBody sends a multipart form with one file part and optional text fields.
type FormBody struct {
	FieldName string
	FileName  string
	Data      []byte
	Fields    map[string]string
}

func (b FormBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range b.Fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	field := strings.TrimSpace(b.FieldName)
	if field == "" {
		field = "file"
	}
	name := strings.TrimSpace(b.FileName)
	if name == "" {
		name = "upload"
	}
	part, err := writer.CreateFormFile(field, name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(b.Data); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

const jsonContentType = "application/json"
