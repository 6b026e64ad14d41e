package domain

// Season classifies a crop by when its growing degree day accumulation starts.
type Season string

const (
	SeasonWinter    Season = "winter"
	SeasonNonWinter Season = "non-winter"
)

const (
	winterCurveName = "Winter Wheat"

	// Day of year on which CGDD accumulation is triggered.
	winterTriggerDOY = 274
	mainTriggerDOY   = 1
)

// SeasonForCurve derives the season and CGDD trigger day from a curve name.
func SeasonForCurve(curveName string) (Season, int) {
	if curveName == winterCurveName {
		return SeasonWinter, winterTriggerDOY
	}
	return SeasonNonWinter, mainTriggerDOY
}

// CropParameters is the validated parameter set for one crop, built from one
// column of the crop parameter file. Values are never mutated after parsing.
type CropParameters struct {
	Name        string `json:"name"`
	ClassNumber int    `json:"class_number"`
	IsAnnual    bool   `json:"is_annual"`

	IrrigationFlag              int     `json:"irrigation_flag"`
	DaysAfterPlantingIrrigation int     `json:"days_after_planting_irrigation"`
	CropFW                      int     `json:"crop_fw"`
	WinterSurfaceCoverClass     int     `json:"winter_surface_cover_class"`
	CropKcMax                   float64 `json:"crop_kc_max"`

	// MAD percentages; depths and heights in meters.
	MADInitial                  int     `json:"mad_initial"`
	MADMidseason                int     `json:"mad_midseason"`
	RootingDepthInitial         float64 `json:"rooting_depth_initial"`
	RootingDepthMaximum         float64 `json:"rooting_depth_maximum"`
	EndOfRootGrowthFractionTime float64 `json:"end_of_root_growth_fraction_time"`
	HeightInitial               float64 `json:"height_initial"`
	HeightMaximum               float64 `json:"height_maximum"`

	CurveNumber                  int     `json:"curve_number"`
	CurveName                    string  `json:"curve_name"`
	CurveType                    int     `json:"curve_type"`
	FlagForMeansToEstimatePlOrGu int     `json:"flag_for_means_to_estimate_pl_or_gu"`
	T30ForPlOrGuOrCGDD           float64 `json:"t30_for_pl_or_gu_or_cgdd"`
	DateOfPlOrGu                 float64 `json:"date_of_pl_or_gu"`
	TBase                        float64 `json:"tbase"`
	CGDDForEFC                   int     `json:"cgdd_for_efc"`
	CGDDForTermination           int     `json:"cgdd_for_termination"`
	TimeForEFC                   int     `json:"time_for_efc"`
	TimeForHarvest               int     `json:"time_for_harvest"`
	KillingFrostTemperature      float64 `json:"killing_frost_temperature"`
	InvokeStress                 int     `json:"invoke_stress"`

	// SCS runoff curve numbers by soil texture.
	CNCoarseSoil int `json:"cn_coarse_soil"`
	CNMediumSoil int `json:"cn_medium_soil"`
	CNFineSoil   int `json:"cn_fine_soil"`

	Season            Season `json:"season"`
	CropGDDTriggerDOY int    `json:"crop_gdd_trigger_doy"`
}

func (c CropParameters) String() string {
	return "<" + c.Name + ">"
}

// Table maps crop identifiers to their parameters, remembering the column
// order in which identifiers first appeared.
type Table struct {
	ids     []int
	records map[int]CropParameters
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{records: make(map[int]CropParameters)}
}

// Put stores a record. A repeated id replaces the record but keeps its
// original position.
func (t *Table) Put(id int, rec CropParameters) {
	if _, ok := t.records[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.records[id] = rec
}

// Get returns the record for a crop identifier.
func (t *Table) Get(id int) (CropParameters, bool) {
	rec, ok := t.records[id]
	return rec, ok
}

// Len returns the number of crops in the table.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns the crop identifiers in column order.
func (t *Table) IDs() []int {
	out := make([]int, len(t.ids))
	copy(out, t.ids)
	return out
}

// Records returns the records in column order.
func (t *Table) Records() []CropParameters {
	out := make([]CropParameters, 0, len(t.ids))
	for _, id := range t.ids {
		out = append(out, t.records[id])
	}
	return out
}
