package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"webcarbon/internal/charts"
	"webcarbon/internal/config"
	"webcarbon/internal/models"
	"webcarbon/internal/reports"
	"webcarbon/internal/storage"
	"webcarbon/internal/tooltip"
)

// defaultReportLimit caps /reports when no limit is given
const defaultReportLimit = 20

// TooltipResponse is the JSON body of the tooltip API
type TooltipResponse struct {
	Platform string         `json:"platform,omitempty"`
	Empty    bool           `json:"empty"`
	Title    string         `json:"title,omitempty"`
	Lines    []tooltip.Line `json:"lines"`
	Text     string         `json:"text"`
}

func newTooltipResponse(platform string, tip tooltip.Tooltip) TooltipResponse {
	lines := tip.Lines
	if lines == nil {
		lines = []tooltip.Line{}
	}
	return TooltipResponse{
		Platform: platform,
		Empty:    tip.IsEmpty(),
		Title:    tip.Title,
		Lines:    lines,
		Text:     tip.Text(),
	}
}

// HandleRoot serves the rendered report page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	variant := s.Variant
	if q := r.URL.Query().Get("variant"); q != "" {
		v, err := reports.ParseVariant(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": err.Error()})
			return
		}
		variant = v
	}

	page, err := s.cached("page:"+string(variant), func() ([]byte, error) {
		return s.Generator.RenderPage(variant)
	})
	if err != nil {
		s.log.Error("Failed to render page", err, map[string]interface{}{"variant": string(variant)})
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// HandleChartImage serves the static chart as PNG or SVG depending on the path extension
func (s *Server) HandleChartImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	format, err := charts.ParseFormat(path.Ext(r.URL.Path))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	img, err := s.cached("image:"+string(format), func() ([]byte, error) {
		var buf bytes.Buffer
		err := s.Generator.Charts().RenderStatic(&buf, models.Dataset(), format)
		return buf.Bytes(), err
	})
	if err != nil {
		s.log.Error("Failed to render chart image", err, map[string]interface{}{"format": string(format)})
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	if format == charts.FormatSVG {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Write(img)
}

// HandleInteractiveChart serves the standalone go-echarts page
func (s *Server) HandleInteractiveChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := s.cached("interactive", func() ([]byte, error) {
		var buf bytes.Buffer
		err := s.Generator.Charts().RenderInteractive(&buf, models.Dataset())
		return buf.Bytes(), err
	})
	if err != nil {
		s.log.Error("Failed to render interactive chart", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// HandleDataset returns the platform records as JSON
func (s *Server) HandleDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": models.Dataset(),
		"series":  models.AllSeries(),
	})
}

// HandleTooltip formats the tooltip for a hovered point.
// GET takes ?platform=<name> and formats that record; POST takes an ActivePoint
// JSON body so a host UI can send whatever values it is displaying.
func (s *Server) HandleTooltip(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		name := r.URL.Query().Get("platform")
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "platform query parameter is required"})
			return
		}
		record, ok := models.FindByName(name)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "unknown platform: " + name})
			return
		}
		s.metrics.tooltipsOK.Inc()
		writeJSON(w, http.StatusOK, newTooltipResponse(record.Name, tooltip.Format(tooltip.PointFromRecord(record))))

	case http.MethodPost:
		var point *tooltip.ActivePoint
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
		if err := dec.Decode(&point); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid active point: " + err.Error()})
			return
		}
		s.metrics.tooltipsOK.Inc()
		label := ""
		if point != nil {
			label = point.Label
		}
		writeJSON(w, http.StatusOK, newTooltipResponse(label, tooltip.Format(point)))

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleListReports lists published report pages, newest first
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultReportLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	paths, err := s.Store.ListReports(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list reports", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to list reports"})
		return
	}
	if paths == nil {
		paths = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(paths),
		"reports": paths,
	})
}

// HandleReportFile serves a stored report file from /reports/{path}
func (s *Server) HandleReportFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/reports/")
	data, err := s.Store.GetFile(r.Context(), filePath)
	switch {
	case errors.Is(err, storage.ErrInvalidPath):
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	case errors.Is(err, storage.ErrFileNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		s.log.Error("Failed to read report file", err, map[string]interface{}{"path": filePath})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]string{"config": "ok", "dataset": "ok"}
	status := http.StatusOK
	if err := models.ValidateDataset(models.Dataset()); err != nil {
		checks["dataset"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]interface{}{
		"status":    map[bool]string{true: "healthy", false: "unhealthy"}[status == http.StatusOK],
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"variant":   string(s.Variant),
		"checks":    checks,
	})
}

// cached returns the cached rendering for key, rendering and storing it on a miss
func (s *Server) cached(key string, render func() ([]byte, error)) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		s.metrics.cacheHits.WithLabelValues("hit").Inc()
		return v.([]byte), nil
	}
	s.metrics.cacheHits.WithLabelValues("miss").Inc()

	data, err := render()
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, data)
	return data, nil
}
