// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-brief/internal/brief"
	"github.com/pdiddy/content-brief/internal/export"
	"github.com/pdiddy/content-brief/internal/profile"
	"github.com/pdiddy/content-brief/internal/provider"
	"github.com/pdiddy/content-brief/pkg/types"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func (s *Server) index(c *gin.Context) {
	names, err := s.cfg.Store.List(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Clients":   names,
		"Providers": s.cfg.Providers,
		"Message":   c.Query("msg"),
	})
}

func (s *Server) providers(c *gin.Context) {
	kinds := s.cfg.Providers
	if kinds == nil {
		kinds = []provider.Kind{}
	}
	resp := gin.H{"providers": kinds}
	if len(kinds) > 0 {
		resp["default"] = kinds[0]
	}
	c.JSON(http.StatusOK, resp)
}

// profileForm is the create and update form. Lists are one entry per line.
type profileForm struct {
	ClientName        string `form:"client_name"`
	Site              string `form:"site"`
	Industry          string `form:"industry"`
	TargetAudience    string `form:"target_audience"`
	BrandVoice        string `form:"brand_voice"`
	ContentGoals      string `form:"content_goals"`
	Information       string `form:"information"`
	Legal             string `form:"legal"`
	Brand             string `form:"brand"`
	SEO               string `form:"seo"`
	ContentIntegrity  string `form:"content_integrity"`
	WordCount         string `form:"word_count"`
	ReadabilityScore  string `form:"readability_score"`
	Tone              string `form:"tone"`
	MandatoryMentions string `form:"mandatory_mentions"`
	SchemaRequired    string `form:"schema_required"`
	ImagesRequired    string `form:"images_required"`
	CTARequired       string `form:"cta_required"`
	InternalLinksMin  string `form:"internal_links_min"`
}

// partial returns only the fields that were submitted non-empty, nested
// the way the store expects.
func (f profileForm) partial() (map[string]any, error) {
	out := map[string]any{}
	setString(out, "site", f.Site)
	setString(out, "industry", f.Industry)
	setString(out, "target_audience", f.TargetAudience)
	setString(out, "brand_voice", f.BrandVoice)
	setString(out, "content_goals", f.ContentGoals)
	setList(out, "information", f.Information)

	restrictions := map[string]any{}
	setList(restrictions, "legal", f.Legal)
	setList(restrictions, "brand", f.Brand)
	setList(restrictions, "seo", f.SEO)
	setList(restrictions, "content_integrity", f.ContentIntegrity)
	if len(restrictions) > 0 {
		out["restrictions"] = restrictions
	}

	requirements := map[string]any{}
	setString(requirements, "word_count", f.WordCount)
	setString(requirements, "readability_score", f.ReadabilityScore)
	setString(requirements, "tone", f.Tone)
	setList(requirements, "mandatory_mentions", f.MandatoryMentions)
	for key, v := range map[string]string{
		"schema_required": f.SchemaRequired,
		"cta_required":    f.CTARequired,
	} {
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(normalizeBool(v))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", profile.ErrInvalidField, key)
		}
		requirements[key] = b
	}
	for key, v := range map[string]string{
		"images_required":    f.ImagesRequired,
		"internal_links_min": f.InternalLinksMin,
	} {
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", profile.ErrInvalidField, key)
		}
		requirements[key] = n
	}
	if len(requirements) > 0 {
		out["requirements"] = requirements
	}
	return out, nil
}

// normalizeBool accepts checkbox values.
func normalizeBool(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), "on") {
		return "true"
	}
	return strings.TrimSpace(v)
}

func setString(m map[string]any, key, v string) {
	if v = strings.TrimSpace(v); v != "" {
		m[key] = v
	}
}

func setList(m map[string]any, key, v string) {
	var items []string
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}
	if len(items) > 0 {
		m[key] = items
	}
}

func (s *Server) createProfile(c *gin.Context) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	data, err := form.partial()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	name := strings.TrimSpace(form.ClientName)
	if err := s.cfg.Store.Create(c.Request.Context(), name, data); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profiles/"+url.PathEscape(name))
}

func (s *Server) showProfile(c *gin.Context) {
	p, err := s.cfg.Store.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Profile":   p,
		"Providers": s.cfg.Providers,
		"Message":   c.Query("msg"),
	})
}

func (s *Server) updateProfile(c *gin.Context) {
	name := c.Param("name")
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	partial, err := form.partial()
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	setString(partial, "client_name", form.ClientName)
	if err := s.cfg.Store.Update(c.Request.Context(), name, partial); err != nil {
		s.fail(c, statusFor(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profiles/"+url.PathEscape(name)+"?msg=Profile+updated")
}

func (s *Server) deleteProfile(c *gin.Context) {
	name := c.Param("name")
	deleted, err := s.cfg.Store.Delete(c.Request.Context(), name)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		s.fail(c, http.StatusNotFound, fmt.Errorf("%w: %s", profile.ErrNotFound, name))
		return
	}
	c.Redirect(http.StatusSeeOther, "/?msg="+url.QueryEscape("Deleted "+name))
}

// briefForm is everything one generation needs.
type briefForm struct {
	ClientName        string `form:"client_name"`
	Provider          string `form:"provider"`
	Topic             string `form:"topic"`
	PrimaryKeyword    string `form:"primary_keyword"`
	SecondaryKeywords string `form:"secondary_keywords"`
}

func (s *Server) createBrief(c *gin.Context) {
	var form briefForm
	if err := c.ShouldBind(&form); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()

	p, err := s.cfg.Store.Get(ctx, form.ClientName)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	kind, err := s.pickProvider(form.Provider)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	gen, err := s.cfg.NewGenerator(kind)
	if err != nil {
		s.fail(c, statusFor(err), err)
		return
	}

	var secondary []string
	for _, kw := range strings.Split(form.SecondaryKeywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			secondary = append(secondary, kw)
		}
	}

	rec, err := gen.Generate(ctx, types.BriefRequest{
		Profile:           *p,
		Topic:             strings.TrimSpace(form.Topic),
		PrimaryKeyword:    strings.TrimSpace(form.PrimaryKeyword),
		SecondaryKeywords: secondary,
	})
	if err != nil {
		slog.Error("brief generation failed", "client", p.ClientName, "provider", kind, "error", err)
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			// The provider failed, not this server.
			status = http.StatusBadGateway
		}
		s.fail(c, status, err)
		return
	}

	data, err := s.cfg.Exporter.Bytes(rec)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	if s.cfg.OnExported != nil {
		if err := s.cfg.OnExported(rec); err != nil {
			slog.Warn("saving brief record failed", "id", rec.ID, "error", err)
		}
	}

	filename := export.FileName(rec, rec.GeneratedAt)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, docxContentType, data)
}

// pickProvider resolves the requested provider among the available ones.
// Empty means the first available provider.
func (s *Server) pickProvider(name string) (provider.Kind, error) {
	if len(s.cfg.Providers) == 0 {
		return "", fmt.Errorf("%w: no provider credentials configured", provider.ErrMissingCredential)
	}
	if strings.TrimSpace(name) == "" {
		return s.cfg.Providers[0], nil
	}
	kind, err := provider.ParseKind(name)
	if err != nil {
		return "", err
	}
	for _, k := range s.cfg.Providers {
		if k == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w for %s: set %s", provider.ErrMissingCredential, kind, kind.EnvVar())
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrExists):
		return http.StatusConflict
	case errors.Is(err, profile.ErrInvalidField),
		errors.Is(err, brief.ErrInvalidRequest),
		errors.Is(err, provider.ErrUnknownProvider),
		errors.Is(err, provider.ErrMissingCredential):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.Request.URL.Path, "status", status, "error", err)
	}
	c.HTML(status, "error.html", gin.H{
		"Status": status,
		"Title":  http.StatusText(status),
		"Error":  err.Error(),
	})
}
