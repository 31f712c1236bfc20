package extract

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"regexp"
	"strings"
)

// Email extracts headers and body text from RFC 822 email files.
type Email struct{}

var htmlTags = regexp.MustCompile(`<[^>]*>`)
var wsRuns = regexp.MustCompile(`\s+`)

func (Email) Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return "", fmt.Errorf("parse email: %w", err)
	}

	headers := []string{
		"From: " + decodeHeader(headerOr(msg, "From", "Unknown")),
		"To: " + decodeHeader(headerOr(msg, "To", "Unknown")),
		"Subject: " + decodeHeader(headerOr(msg, "Subject", "No Subject")),
		"Date: " + headerOr(msg, "Date", "Unknown"),
	}

	body, err := extractBody(msg)
	if err != nil {
		return "", err
	}
	return strings.Join(headers, "\n") + "\n\n" + body, nil
}

func headerOr(msg *mail.Message, key, fallback string) string {
	if v := msg.Header.Get(key); v != "" {
		return v
	}
	return fallback
}

func decodeHeader(header string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

func extractBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		body, readErr := io.ReadAll(msg.Body)
		if readErr != nil {
			return "", readErr
		}
		return string(body), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipart(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(decodeTransfer(msg.Body, msg.Header.Get("Content-Transfer-Encoding")))
	if err != nil {
		return "", err
	}
	if mediaType == "text/html" {
		return stripHTML(string(body)), nil
	}
	return string(body), nil
}

func extractMultipart(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}
	mr := multipart.NewReader(r, boundary)
	var sb strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}
		if mediaType != "text/plain" && mediaType != "text/html" {
			continue
		}
		content, err := io.ReadAll(decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding")))
		if err != nil {
			continue
		}
		text := string(content)
		if mediaType == "text/html" {
			text = stripHTML(text)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

func stripHTML(s string) string {
	s = htmlTags.ReplaceAllString(s, " ")
	return strings.TrimSpace(wsRuns.ReplaceAllString(s, " "))
}
