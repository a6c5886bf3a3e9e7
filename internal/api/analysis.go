package api

// AnalysisRequest is the body accepted by POST /analyze.
type AnalysisRequest struct {
	Datasource        string          `json:"datasource"`
	DependentVariable string          `json:"dependent_variable"`
	XVars             []string        `json:"x_vars"`
	Interactions      [][]string      `json:"interactions"`
	ShowFlags         map[string]bool `json:"show_flags"`
}

// Validate checks the required fields and returns per-field problems,
// or nil when the request is acceptable.
func (req *AnalysisRequest) Validate() map[string][]string {
	fields := make(map[string][]string)

	if req.Datasource == "" {
		fields["datasource"] = append(fields["datasource"], "field is required")
	}
	if req.DependentVariable == "" {
		fields["dependent_variable"] = append(fields["dependent_variable"], "field is required")
	}
	if req.XVars == nil {
		fields["x_vars"] = append(fields["x_vars"], "field is required")
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// normalize fills the optional collections so the echo never contains
// JSON null.
func (req *AnalysisRequest) normalize() {
	if req.Interactions == nil {
		req.Interactions = [][]string{}
	}
	if req.ShowFlags == nil {
		req.ShowFlags = map[string]bool{}
	}
}

// AnalysisResults is the placeholder result block returned until the
// statistical engine lands.
type AnalysisResults struct {
	ModelSummary  string             `json:"model_summary"`
	Coefficients  map[string]float64 `json:"coefficients"`
	RSquared      float64            `json:"r_squared"`
	NObservations int                `json:"n_observations"`
	Status        string             `json:"status"`
}

// AnalysisResponse echoes the validated request back along with the
// placeholder results.
type AnalysisResponse struct {
	Message           string          `json:"message"`
	Datasource        string          `json:"datasource"`
	DependentVariable string          `json:"dependent_variable"`
	XVars             []string        `json:"x_vars"`
	Interactions      [][]string      `json:"interactions"`
	ShowFlags         map[string]bool `json:"show_flags"`
	Results           AnalysisResults `json:"results"`
}
