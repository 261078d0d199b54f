package model

// PipeResult describes one physical pipe in a multi-size plan: its origin,
// the cuts assigned to it, and what remains.
type PipeResult struct {
	PipeNumber int        `json:"pipe_number"`
	PipeLabel  string     `json:"pipe_label"`
	Cuts       []float64  `json:"cuts"`
	NumCuts    int        `json:"num_cuts"`
	Kerf       float64    `json:"kerf"`
	Used       float64    `json:"used"` // Piece lengths plus kerf
	Scrap      float64    `json:"scrap"`
	ScrapClass ScrapClass `json:"scrap_class"`
	IsLeftover bool       `json:"is_leftover"`
	LeftoverID string     `json:"leftover_id,omitempty"` // Set when the pipe is a consumed inventory record
}

// MultiPlanResult holds the full solution of a multi-size packing run.
type MultiPlanResult struct {
	Pipes             []PipeResult `json:"pipes"`
	TotalPipes        int          `json:"total_pipes"`
	TotalUsed         float64      `json:"total_used"`
	TotalScrap        float64      `json:"total_scrap"`
	TotalKerf         float64      `json:"total_kerf"`
	RawLength         float64      `json:"raw_length"`
	LastPipeOverLimit bool         `json:"last_pipe_over_limit"`
}

// Segment describes one consumed source in a single-size plan: how many
// pieces were taken from it and what remains.
type Segment struct {
	Source       string  `json:"source"`        // Human-readable origin, e.g. "Leftover (1300.00 mm)"
	SourceLength float64 `json:"source_length"` // Initial length of the source
	Pieces       int     `json:"pieces"`
	CutLength    float64 `json:"cut_length"`
	Remaining    float64 `json:"remaining"`
}

// SinglePlanResult holds the full solution of a single-size allocation run.
type SinglePlanResult struct {
	PiecesProduced       int       `json:"pieces_produced"`
	MaterialUsed         float64   `json:"material_used"`           // Piece lengths only
	MaterialUsedInclKerf float64   `json:"material_used_incl_kerf"` // Piece lengths plus kerf
	TotalKerf            float64   `json:"total_kerf"`
	ScrapSaved           []float64 `json:"scrap_saved"` // Remainders queued for inventory
	UsedLeftover         bool      `json:"used_leftover"`
	Segments             []Segment `json:"segments"`
	// SuggestedRaw is the remainder of a final raw-pipe segment, offered as
	// the raw length for a follow-up plan. Zero when there is no suggestion.
	SuggestedRaw float64 `json:"suggested_raw,omitempty"`
}
