package dailyts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"ST0001_daily_crop_03.csv",
		"ST0001_daily_crop_13.CSV",
		"temp_daily_crop_01.csv",
		"ST0002_daily_crop_44.csv",
		"ST0001_monthly_crop_03.csv",
		"notes.txt",
	} {
		writeFile(t, dir, name, "")
	}

	files, err := Discover(dir)
	require.NoError(t, err)

	got := make([]File, len(files))
	for i, f := range files {
		got[i] = File{Station: f.Station, Crop: f.Crop}
	}
	assert.Equal(t, []File{
		{Station: "ST0001", Crop: 3},
		{Station: "ST0001", Crop: 13},
		{Station: "ST0002", Crop: 44},
		{Station: "temp", Crop: 1},
	}, got)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover("/does/not/exist")
	require.Error(t, err)
}

func TestSelector_Include(t *testing.T) {
	tests := []struct {
		name   string
		sel    Selector
		file   File
		want   bool
		reason string
	}{
		{"default keeps crop", Selector{Skip: DefaultSkip}, File{Station: "ST1", Crop: 3}, true, ""},
		{"temp station", Selector{}, File{Station: "temp", Crop: 3}, false, "temporary station"},
		{"skip list", Selector{Skip: DefaultSkip}, File{Station: "ST1", Crop: 45}, false, "crop number in skip list"},
		{"keep list hit", Selector{Keep: []int{1, 3}}, File{Station: "ST1", Crop: 3}, true, ""},
		{"keep list miss", Selector{Keep: []int{1, 3}}, File{Station: "ST1", Crop: 4}, false, "crop number not in keep list"},
		{"skip wins over keep", Selector{Keep: []int{44}, Skip: DefaultSkip}, File{Station: "ST1", Crop: 44}, false, "crop number in skip list"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.sel.Include(tt.file)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestParseIntSet(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", []int{}},
		{"3", []int{3}},
		{"1,3,5-7", []int{1, 3, 5, 6, 7}},
		{" 7-5 , 1,1", []int{1, 5, 6, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIntSet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"a", "1-b", "1,,x-3"} {
		_, err := ParseIntSet(bad)
		assert.Error(t, err, bad)
	}
}
