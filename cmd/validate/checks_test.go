package main

import (
	"testing"

	"github.com/couchcryptid/cropet-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCrop(name string) domain.CropParameters {
	season, doy := domain.SeasonForCurve(name)
	return domain.CropParameters{
		Name:                        name,
		CurveName:                   name,
		MADInitial:                  50,
		MADMidseason:                55,
		CropKcMax:                   1.2,
		RootingDepthInitial:         0.1,
		RootingDepthMaximum:         1.4,
		EndOfRootGrowthFractionTime: 0.6,
		HeightInitial:               0.05,
		HeightMaximum:               2.5,
		CNCoarseSoil:                72,
		CNMediumSoil:                81,
		CNFineSoil:                  88,
		Season:                      season,
		CropGDDTriggerDOY:           doy,
	}
}

func TestValidate_CleanTablePasses(t *testing.T) {
	table := domain.NewTable()
	table.Put(7, validCrop("Field Corn"))
	table.Put(13, validCrop("Winter Wheat"))

	for _, p := range []*phase{validateRanges(table), validateGrowth(table), validateSeasons(table)} {
		assert.True(t, p.passed(), "%s: %v", p.name, p.errors)
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	bad := validCrop("Field Corn")
	bad.MADInitial = 150
	bad.CNFineSoil = -1
	bad.HeightInitial = 3
	bad.Season = domain.SeasonWinter

	table := domain.NewTable()
	table.Put(7, bad)

	ranges := validateRanges(table)
	require.Len(t, ranges.errors, 2)
	assert.Contains(t, ranges.errors[0], "mad_initial=150")
	assert.Contains(t, ranges.errors[1], "cn_fine_soil=-1")

	growth := validateGrowth(table)
	require.Len(t, growth.errors, 1)
	assert.Contains(t, growth.errors[0], "height_initial")

	seasons := validateSeasons(table)
	require.Len(t, seasons.errors, 1)
	assert.Contains(t, seasons.errors[0], "<Field Corn>")
}
