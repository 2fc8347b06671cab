package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/YuminosukeSato/medcost/charts"
	"github.com/YuminosukeSato/medcost/dataset"
	"github.com/YuminosukeSato/medcost/insurance"
	"github.com/YuminosukeSato/medcost/pkg/errors"
	"github.com/YuminosukeSato/medcost/pkg/log"
)

// MissingInputsMessage is shown when the form is submitted with unset fields.
const MissingInputsMessage = "Please complete all inputs before predicting"

// datasetPreviewRows matches the preview size of the exploration page.
const datasetPreviewRows = 5

type pageData struct {
	Page Page
	Nav  []Page
	Data any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page Page, status int, data any) {
	t := s.templates[page]
	if status == http.StatusServiceUnavailable {
		t = s.fallback
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pageData{Page: page, Nav: Pages(), Data: data}); err != nil {
		s.requestLog(r).Error("template execution failed", err, log.PageKey, page.String())
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) unavailable(w http.ResponseWriter, r *http.Request, page Page, cause error) {
	s.requestLog(r).Warn("page unavailable", log.PageKey, page.String(), "cause", cause.Error())
	s.render(w, r, page, http.StatusServiceUnavailable, cause.Error())
}

// handleHome also accepts menu selections as /?page=<slug> and redirects to
// the selected page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if slug := r.URL.Query().Get("page"); slug != "" {
		p, err := ParsePage(slug)
		if err != nil {
			s.requestLog(r).Warn("unknown page selected", log.PageKey, slug)
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, p.Path(), http.StatusSeeOther)
		return
	}
	s.render(w, r, PageHome, http.StatusOK, nil)
}

type datasetView struct {
	Rows    int
	Columns []string
	Head    []dataset.Record
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	if s.table == nil {
		s.unavailable(w, r, PageDataset, s.datasetErr)
		return
	}
	s.render(w, r, PageDataset, http.StatusOK, datasetView{
		Rows:    s.table.Len(),
		Columns: dataset.Columns,
		Head:    s.table.Head(datasetPreviewRows),
	})
}

type visualizationView struct {
	Charts []charts.Kind
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	if s.table == nil {
		s.unavailable(w, r, PageVisualization, s.datasetErr)
		return
	}
	s.render(w, r, PageVisualization, http.StatusOK, visualizationView{Charts: charts.Kinds()})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := charts.ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if s.table == nil {
		http.Error(w, s.datasetErr.Error(), http.StatusServiceUnavailable)
		return
	}

	img, err := s.chartPNG(kind)
	if err != nil {
		s.requestLog(r).Error("chart render failed", err, "chart", kind.String())
		http.Error(w, "chart render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(img)
}

// chartPNG renders a chart once and serves the cached bytes afterwards. The
// dataset never changes while the server runs.
func (s *Server) chartPNG(kind charts.Kind) ([]byte, error) {
	s.chartMu.Lock()
	defer s.chartMu.Unlock()

	if img, ok := s.charts[kind.String()]; ok {
		return img, nil
	}
	var buf bytes.Buffer
	if err := charts.Render(kind, s.table, &buf, "png"); err != nil {
		return nil, err
	}
	s.charts[kind.String()] = buf.Bytes()
	return buf.Bytes(), nil
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type predictView struct {
	Form          insurance.Form
	SexOptions    []option
	SmokerOptions []option
	RegionOptions []option
	Error         string
	Missing       []string
	Result        string
}

func newPredictView(f insurance.Form) *predictView {
	sex, _ := insurance.ParseSex(f.Sex)
	smoker, _ := insurance.ParseSmoker(f.Smoker)
	region, _ := insurance.ParseRegion(f.Region)

	v := &predictView{
		Form: f,
		SexOptions: []option{
			{Value: insurance.Female.String(), Label: "Female", Selected: sex == insurance.Female},
			{Value: insurance.Male.String(), Label: "Male", Selected: sex == insurance.Male},
		},
		SmokerOptions: []option{
			{Value: insurance.NonSmoker.String(), Label: "Non-smoker", Selected: smoker == insurance.NonSmoker},
			{Value: insurance.CurrentSmoker.String(), Label: "Smoker", Selected: smoker == insurance.CurrentSmoker},
		},
	}
	for _, rg := range insurance.Regions() {
		label := rg.String()
		v.RegionOptions = append(v.RegionOptions, option{
			Value:    label,
			Label:    strings.ToUpper(label[:1]) + label[1:],
			Selected: region == rg,
		})
	}
	return v
}

func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		s.unavailable(w, r, PagePredict, s.modelErr)
		return
	}
	s.render(w, r, PagePredict, http.StatusOK, newPredictView(insurance.Form{}))
}

func (s *Server) handlePredictSubmit(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		s.unavailable(w, r, PagePredict, s.modelErr)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	form := insurance.Form{
		Age:      r.PostFormValue("age"),
		BMI:      r.PostFormValue("bmi"),
		Children: r.PostFormValue("children"),
		Sex:      r.PostFormValue("sex"),
		Smoker:   r.PostFormValue("smoker"),
		Region:   r.PostFormValue("region"),
	}
	view := newPredictView(form)

	charge, err := s.predictForm(form)
	if err != nil {
		view.Error, view.Missing = userMessage(err)
		s.render(w, r, PagePredict, http.StatusUnprocessableEntity, view)
		return
	}
	view.Result = insurance.PredictionMessage(charge)
	s.requestLog(r).Info("prediction served", log.OperationKey, log.OperationPredict, log.PredictionKey, charge)
	s.render(w, r, PagePredict, http.StatusOK, view)
}

func (s *Server) predictForm(f insurance.Form) (float64, error) {
	raw, err := f.RawInput()
	if err != nil {
		return 0, err
	}
	return s.predictor.Predict(raw)
}

// userMessage turns an input error into text for the end user.
func userMessage(err error) (string, []string) {
	var missing *errors.MissingFieldsError
	if errors.As(err, &missing) {
		return MissingInputsMessage, missing.Fields
	}
	var invalid *errors.ValidationError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("Invalid %s: %s", invalid.ParamName, invalid.Reason), nil
	}
	return "Prediction failed", nil
}

type algorithmView struct {
	Coefficients []coefficient
	Intercept    float64
}

type coefficient struct {
	Name  string
	Value float64
}

func (s *Server) handleAlgorithm(w http.ResponseWriter, r *http.Request) {
	var view *algorithmView
	if s.predictor != nil {
		m := s.predictor.Model()
		view = &algorithmView{Intercept: m.Intercept()}
		names := insurance.FeatureNames()
		for i, c := range m.Coefficients() {
			view.Coefficients = append(view.Coefficients, coefficient{Name: names[i], Value: c})
		}
	}
	s.render(w, r, PageAlgorithm, http.StatusOK, view)
}

type apiRequest struct {
	Age      *int     `json:"age"`
	BMI      *float64 `json:"bmi"`
	Children *int     `json:"children"`
	Sex      string   `json:"sex"`
	Smoker   string   `json:"smoker"`
	Region   string   `json:"region"`
}

type apiResponse struct {
	Charge    float64   `json:"charge"`
	Formatted string    `json:"formatted"`
	Features  []float64 `json:"features"`
}

type apiError struct {
	Error         string   `json:"error"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	if s.predictor == nil {
		writeJSON(w, http.StatusServiceUnavailable, apiError{Error: s.modelErr.Error()})
		return
	}

	var req apiRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "malformed JSON: " + err.Error()})
		return
	}

	v, charge, err := s.predictAPI(req)
	if err != nil {
		msg, missing := userMessage(err)
		s.requestLog(r).Warn("api prediction rejected", "error", err.Error())
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: msg, MissingFields: missing})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{
		Charge:    charge,
		Formatted: insurance.FormatCharge(charge),
		Features:  v.Slice(),
	})
}

func (s *Server) predictAPI(req apiRequest) (insurance.FeatureVector, float64, error) {
	raw, err := apiRawInput(req)
	if err != nil {
		return insurance.FeatureVector{}, 0, err
	}
	v, err := insurance.Encode(raw)
	if err != nil {
		return insurance.FeatureVector{}, 0, err
	}
	charge, err := s.predictor.PredictVector(v)
	return v, charge, err
}

func apiRawInput(req apiRequest) (insurance.RawInput, error) {
	sex, err := insurance.ParseSex(req.Sex)
	if err != nil {
		return insurance.RawInput{}, err
	}
	smoker, err := insurance.ParseSmoker(req.Smoker)
	if err != nil {
		return insurance.RawInput{}, err
	}
	region, err := insurance.ParseRegion(req.Region)
	if err != nil {
		return insurance.RawInput{}, err
	}
	return insurance.RawInput{
		Age:      req.Age,
		BMI:      req.BMI,
		Children: req.Children,
		Sex:      sex,
		Smoker:   smoker,
		Region:   region,
	}, nil
}

type healthResponse struct {
	Status  string `json:"status"`
	Model   bool   `json:"model"`
	Dataset bool   `json:"dataset"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Model:   s.predictor != nil,
		Dataset: s.table != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
