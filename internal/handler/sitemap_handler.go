package handler

import (
	"encoding/xml"
	"net/http"
	"strconv"
	"strings"

	"github.com/sachin24864/RealEstate-Website/internal/usecase"
	"go.uber.org/zap"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type SitemapHandler struct {
	uc       *usecase.SitemapUseCase
	hostname string
	logger   *zap.Logger
}

func NewSitemapHandler(uc *usecase.SitemapUseCase, hostname string, logger *zap.Logger) *SitemapHandler {
	return &SitemapHandler{
		uc:       uc,
		hostname: strings.TrimSuffix(hostname, "/"),
		logger:   logger.Named("SitemapHandler"),
	}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (h *SitemapHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.uc.Entries(r.Context())
	if err != nil {
		h.logger.Error("Failed to build sitemap", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{
			Loc:        h.hostname + e.Path,
			ChangeFreq: e.ChangeFreq,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		if !e.LastMod.IsZero() {
			u.LastMod = e.LastMod.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		set.URLs = append(set.URLs, u)
	}

	body, err := xml.Marshal(set)
	if err != nil {
		h.logger.Error("Failed to encode sitemap", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
