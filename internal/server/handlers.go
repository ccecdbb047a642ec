package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/ai"
	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/document"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/market"
	"github.com/spigell/resume-matcher/internal/roles"
)

var pdfContentTypes = map[string]struct{}{
	"application/pdf":          {},
	"application/x-pdf":        {},
	"application/octet-stream": {},
}

type analyzeTextRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobTitle       string `json:"job_title" validate:"required,max=200"`
	JobDescription string `json:"job_description"`
	Review         bool   `json:"review"`
	Instructions   string `json:"instructions" validate:"max=2000"`
}

type compareRequest struct {
	First          string `json:"first" validate:"required"`
	Second         string `json:"second" validate:"required"`
	JobTitle       string `json:"job_title" validate:"required,max=200"`
	JobDescription string `json:"job_description"`
}

type analyzeRoleRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

func (r *analyzeTextRequest) normalize() {
	r.ResumeText = strings.TrimSpace(r.ResumeText)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	r.Instructions = strings.TrimSpace(r.Instructions)
}

func (r *compareRequest) normalize() {
	r.First = strings.TrimSpace(r.First)
	r.Second = strings.TrimSpace(r.Second)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.JobDescription = strings.TrimSpace(r.JobDescription)
}

func (r *analyzeRoleRequest) normalize() {
	r.ResumeText = strings.TrimSpace(r.ResumeText)
}

type roleEntry struct {
	Slug string `json:"slug"`
	roles.Requirements
}

type marketResponse struct {
	Market         market.JobMarketData   `json:"market"`
	SalaryInsights *market.SalaryInsights `json:"salary_insights,omitempty"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"message": "AI Resume Analyzer API is running",
		"version": Version,
	})
}

func (s *Server) analyzeUpload(c *fiber.Ctx) error {
	jobTitle := strings.TrimSpace(c.FormValue("job_title"))
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobTitle == "" {
		return detail(c, fiber.StatusBadRequest, "Job title is required")
	}

	header, err := c.FormFile("file")
	if err != nil {
		return detail(c, fiber.StatusBadRequest, "Resume PDF file is required")
	}

	f, err := header.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, int64(s.cfg.MaxUploadBytes)+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(raw) > s.cfg.MaxUploadBytes {
		return detail(c, fiber.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %s)", sizeLabel(s.cfg.MaxUploadBytes)))
	}

	name := strings.ToLower(header.Filename)
	looksLikePDF := bytes.HasPrefix(raw, []byte("%PDF-")) || strings.HasSuffix(name, ".pdf")
	_, typeOK := pdfContentTypes[strings.ToLower(header.Header.Get(fiber.HeaderContentType))]
	if !looksLikePDF || !typeOK {
		return detail(c, fiber.StatusBadRequest, "Only PDF files are supported")
	}

	// The name is forced so a PDF-named upload is never sniffed as plain text.
	text, err := document.Extract("upload.pdf", raw)
	switch {
	case errors.Is(err, document.ErrEmptyText):
		return detail(c, fiber.StatusBadRequest, "Could not extract text from PDF (is it scanned?)")
	case err != nil:
		return detail(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse PDF: %v", err))
	}

	res := s.analyzer.Analyze(text, jobDescription, jobTitle)
	if c.FormValue("review") == "true" {
		s.review(c, &res, c.FormValue("instructions"))
	}

	return c.JSON(res)
}

func (s *Server) analyzeText(c *fiber.Ctx) error {
	var req analyzeTextRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	res := s.analyzer.Analyze(req.ResumeText, req.JobDescription, req.JobTitle)
	if req.Review {
		s.review(c, &res, req.Instructions)
	}

	return c.JSON(res)
}

func (s *Server) compare(c *fiber.Ctx) error {
	var req compareRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}
	return c.JSON(s.analyzer.Compare(req.First, req.Second, req.JobDescription, req.JobTitle))
}

func (s *Server) listRoles(c *fiber.Ctx) error {
	catalog := s.analyzer.Catalog()
	out := []roleEntry{}
	for _, slug := range catalog.Slugs() {
		req, err := catalog.Get(slug)
		if err != nil {
			return err
		}
		out = append(out, roleEntry{Slug: slug, Requirements: req})
	}
	return c.JSON(out)
}

func (s *Server) analyzeRole(c *fiber.Ctx) error {
	var req analyzeRoleRequest
	if err := s.bind(c, &req); err != nil {
		return err
	}

	res, err := s.analyzer.AnalyzeRole(req.ResumeText, c.Params("slug"))
	if errors.Is(err, roles.ErrUnknownRole) {
		return detail(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(res)
}

func (s *Server) marketInsights(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		return detail(c, fiber.StatusBadRequest, "Job title is required")
	}

	provider := s.analyzer.Market()
	resp := marketResponse{Market: provider.Get(title)}
	if level := strings.TrimSpace(c.Query("level")); level != "" {
		insights := provider.SalaryInsights(title, level)
		resp.SalaryInsights = &insights
	}
	return c.JSON(resp)
}

// review attaches an AI review when one is configured. Failures are logged and
// leave the deterministic result untouched.
func (s *Server) review(c *fiber.Ctx, res *analyzer.Result, instructions string) {
	err := s.analyzer.Review(c.UserContext(), res, instructions)
	switch {
	case err == nil:
	case errors.Is(err, ai.ErrDisabled):
		s.requestLogger(c).Debug("review requested but disabled")
	default:
		s.requestLogger(c).Warn("ai review failed",
			zap.String(logger.FieldJobTitle, res.JobTitle),
			zap.Error(err),
		)
	}
}

type request interface {
	normalize()
}

// bind decodes a JSON body into out, trims it and validates it. Failures are
// returned as 400 fiber errors.
func (s *Server) bind(c *fiber.Ctx, out request) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	out.normalize()

	if err := s.validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, validationMessage(verrs[0]))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	}
}

func sizeLabel(n int) string {
	if n >= 1_000_000 && n%1_000_000 == 0 {
		return fmt.Sprintf("%dMB", n/1_000_000)
	}
	return fmt.Sprintf("%d bytes", n)
}
