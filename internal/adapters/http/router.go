package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agrischeme/backend/internal/config"
	"github.com/agrischeme/backend/internal/core/domain"
	"github.com/agrischeme/backend/internal/core/ports"
	"github.com/agrischeme/backend/internal/observability/metrics"
)

const serviceName = "agrischeme-api"

type Router struct {
	cfg config.Config

	eligibility ports.EligibilityService
	admin       ports.SchemeAdmin
	imports     ports.ImportSubmitter
	jobs        ports.ImportJobRepository
	advisor     ports.Advisor
	weather     ports.WeatherProvider
	market      ports.MarketDataProvider

	metrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	eligibility ports.EligibilityService,
	admin ports.SchemeAdmin,
	imports ports.ImportSubmitter,
	jobs ports.ImportJobRepository,
	advisor ports.Advisor,
	weather ports.WeatherProvider,
	market ports.MarketDataProvider,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:         cfg,
		eligibility: eligibility,
		admin:       admin,
		imports:     imports,
		jobs:        jobs,
		advisor:     advisor,
		weather:     weather,
		market:      market,
		metrics:     serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	mux.HandleFunc("/v1/schemes/eligible", rt.findEligibleSchemes)
	mux.HandleFunc("/v1/schemes", rt.schemes)
	mux.HandleFunc("/v1/imports", rt.submitImport)
	mux.HandleFunc("/v1/imports/", rt.getImportByID)
	mux.HandleFunc("/v1/advisory", rt.askAdvisory)
	mux.HandleFunc("/v1/weather", rt.getWeather)
	mux.HandleFunc("/v1/market-prices", rt.getMarketPrices)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	if rt.cfg.APIMaxInflightRequests > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxInflightRequests, 50*time.Millisecond)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) findEligibleSchemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		domain.FarmerProfile
		Page  int `json:"page"`
		Limit int `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := sanitizeProfile(&req.FarmerProfile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	page, limit := normalizePageLimit(req.Page, req.Limit)

	start := time.Now()
	schemes, total, err := rt.eligibility.FindEligible(r.Context(), req.FarmerProfile, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordEligibilityMatch(serviceName, total, time.Since(start))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"schemes": schemes,
		"count":   len(schemes),
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (rt *Router) schemes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rt.listSchemes(w, r)
	case http.MethodPost:
		rt.addScheme(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) listSchemes(w http.ResponseWriter, r *http.Request) {
	// The wire name for a scheme's category is "type"; accept the spelled-out
	// form as well.
	category := strings.TrimSpace(r.URL.Query().Get("type"))
	if category == "" {
		category = strings.TrimSpace(r.URL.Query().Get("category"))
	}
	if category != "" && !isSafeText(category) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type contains invalid characters"})
		return
	}
	page, limit := normalizePageLimit(queryInt(r, "page", 1), queryInt(r, "limit", 0))

	schemes, total, err := rt.eligibility.ListSchemes(r.Context(), category, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"schemes": schemes,
		"count":   len(schemes),
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (rt *Router) addScheme(w http.ResponseWriter, r *http.Request) {
	var draft domain.SchemeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	record, err := rt.admin.AddScheme(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (rt *Router) submitImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	job, err := rt.imports.SubmitImport(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, job)
}

func (rt *Router) getImportByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/imports/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "import id is required"})
		return
	}

	job, err := rt.jobs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (rt *Router) askAdvisory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var question domain.AdvisoryQuestion
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	answer, err := rt.advisor.Ask(r.Context(), question)
	if err != nil {
		if rt.metrics != nil {
			rt.metrics.RecordAdvisoryRequest(serviceName, "error")
		}
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAdvisoryRequest(serviceName, "success")
	}
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) getWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'lat' must be a number"})
		return
	}
	lon, err := queryFloat(r, "lon")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'lon' must be a number"})
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinates out of range"})
		return
	}

	report, err := rt.weather.Forecast(r.Context(), lat, lon)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (rt *Router) getMarketPrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if state == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'state' is required"})
		return
	}
	crop := strings.TrimSpace(r.URL.Query().Get("crop"))
	if !isSafeText(state) || (crop != "" && !isSafeText(crop)) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "state or crop contains invalid characters"})
		return
	}

	writeJSON(w, http.StatusOK, rt.market.Prices(state, crop))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryFloat(r *http.Request, key string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(r.URL.Query().Get(key)), 64)
}
