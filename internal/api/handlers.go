package api

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docqa/internal/domain"
	"docqa/internal/fetch"
	"docqa/internal/pipeline"
	"docqa/internal/vectorstore"
)

// Fetcher downloads a remote document to a local temp file.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, error)
}

// Extractor turns a downloaded file into plain text.
type Extractor interface {
	Extract(path, ext string) (string, error)
}

// Handler holds the collaborators for the question-answering endpoints.
// A fresh pipeline (with a fresh index) is assembled per request.
type Handler struct {
	fetcher   Fetcher
	extractor Extractor
	chunker   domain.Chunker
	completer domain.Completer
	indexes   vectorstore.Factory
	topK      int
}

func NewHandler(fetcher Fetcher, extractor Extractor, chunker domain.Chunker, completer domain.Completer, indexes vectorstore.Factory, topK int) *Handler {
	return &Handler{
		fetcher:   fetcher,
		extractor: extractor,
		chunker:   chunker,
		completer: completer,
		indexes:   indexes,
		topK:      topK,
	}
}

type runRequest struct {
	Documents string   `json:"documents"`
	Questions []string `json:"questions"`
}

type runResponse struct {
	Answers []string `json:"answers"`
}

type evaluateRequest struct {
	Documents string `json:"documents"`
	Question  string `json:"question"`
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Run downloads the document, answers every question against it, and
// returns the answers in question order. Any failure fails the whole
// request; there is no partial-success response.
func (h *Handler) Run(c *fiber.Ctx) error {
	var req runRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, &domain.ValidationError{Msg: "invalid request body"})
	}
	if len(req.Questions) == 0 {
		return respondError(c, &domain.ValidationError{Msg: "at least one question must be provided"})
	}

	text, cleanup, err := h.documentText(c, req.Documents)
	if err != nil {
		return respondError(c, err)
	}
	defer cleanup()

	p := pipeline.New(h.chunker, h.completer, h.indexes(), h.topK)
	answers, err := p.Run(c.UserContext(), text, req.Questions)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(runResponse{Answers: answers})
}

// Evaluate returns a structured logic evaluation of one question
// against the document.
func (h *Handler) Evaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, &domain.ValidationError{Msg: "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return respondError(c, &domain.ValidationError{Msg: "a question must be provided"})
	}

	text, cleanup, err := h.documentText(c, req.Documents)
	if err != nil {
		return respondError(c, err)
	}
	defer cleanup()

	p := pipeline.New(h.chunker, h.completer, h.indexes(), h.topK)
	evaluation, err := p.Evaluate(c.UserContext(), text, req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(evaluation)
}

func (h *Handler) documentText(c *fiber.Ctx, url string) (string, func(), error) {
	res, err := h.fetcher.Fetch(c.UserContext(), url)
	if err != nil {
		return "", nil, err
	}
	text, err := h.extractor.Extract(res.Path, res.Ext)
	if err != nil {
		res.Cleanup()
		return "", nil, err
	}
	return text, res.Cleanup, nil
}

func respondError(c *fiber.Ctx, err error) error {
	var (
		verr *domain.ValidationError
		ferr *domain.FetchError
	)
	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &verr):
		status = fiber.StatusBadRequest
	case errors.As(err, &ferr):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
