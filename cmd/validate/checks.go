package main

import (
	"github.com/couchcryptid/cropet-service/internal/domain"
)

// validateRanges checks percentages and curve numbers fall in [0, 100] and
// that coefficients and depths are not negative.
func validateRanges(t *domain.Table) *phase {
	p := &phase{name: "Phase 1: Value ranges"}
	for _, id := range t.IDs() {
		c, _ := t.Get(id)
		percent := map[string]int{
			"mad_initial":    c.MADInitial,
			"mad_midseason":  c.MADMidseason,
			"cn_coarse_soil": c.CNCoarseSoil,
			"cn_medium_soil": c.CNMediumSoil,
			"cn_fine_soil":   c.CNFineSoil,
		}
		for _, field := range []string{"mad_initial", "mad_midseason", "cn_coarse_soil", "cn_medium_soil", "cn_fine_soil"} {
			if v := percent[field]; v < 0 || v > 100 {
				p.errorf("crop %d %s: %s=%d outside [0, 100]", id, c, field, v)
			}
		}
		if c.CropKcMax < 0 {
			p.errorf("crop %d %s: negative crop_kc_max %g", id, c, c.CropKcMax)
		}
		if c.RootingDepthInitial < 0 || c.RootingDepthMaximum < 0 {
			p.errorf("crop %d %s: negative rooting depth", id, c)
		}
		if c.Name == "" {
			p.errorf("crop %d: empty name", id)
		}
	}
	return p
}

// validateGrowth checks initial sizes do not exceed their maxima.
func validateGrowth(t *domain.Table) *phase {
	p := &phase{name: "Phase 2: Initial vs maximum growth"}
	for _, id := range t.IDs() {
		c, _ := t.Get(id)
		if c.RootingDepthInitial > c.RootingDepthMaximum {
			p.errorf("crop %d %s: rooting_depth_initial %g > rooting_depth_maximum %g",
				id, c, c.RootingDepthInitial, c.RootingDepthMaximum)
		}
		if c.HeightInitial > c.HeightMaximum {
			p.errorf("crop %d %s: height_initial %g > height_maximum %g",
				id, c, c.HeightInitial, c.HeightMaximum)
		}
		if f := c.EndOfRootGrowthFractionTime; f < 0 || f > 1 {
			p.errorf("crop %d %s: end_of_root_growth_fraction_time %g outside [0, 1]", id, c, f)
		}
	}
	return p
}

// validateSeasons checks the derived season matches the curve name.
func validateSeasons(t *domain.Table) *phase {
	p := &phase{name: "Phase 3: Season derivation"}
	for _, id := range t.IDs() {
		c, _ := t.Get(id)
		season, doy := domain.SeasonForCurve(c.CurveName)
		if c.Season != season || c.CropGDDTriggerDOY != doy {
			p.errorf("crop %d %s: season %s/%d, want %s/%d", id, c, c.Season, c.CropGDDTriggerDOY, season, doy)
		}
	}
	return p
}
