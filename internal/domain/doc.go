// Package domain models crop evapotranspiration (ET) parameter data.
//
// # Crop Parameter File
//
// Crop parameters are distributed as a tab-separated text file laid out as a
// matrix: one column per crop, one row per parameter. The layout is fixed and
// positional; there is no header row naming the fields.
//
//	rows 1-3     header/metadata, ignored
//	rows 4-35    the parameter matrix (the first 32 data rows)
//	rows 36+     ignored
//	columns 1-2  row labels, ignored
//	columns 3+   one column per crop
//
// Row indices below are zero-based within the parameter matrix:
//
//	 0 name                          16 curve type
//	 1 class number (negative=annual) 17 flag for means to estimate PL or GU
//	 2 irrigation flag               18 T30 for PL or GU or CGDD
//	 3 days after planting irrig.    19 date of PL or GU (day of year)
//	 4 crop fw                       20 Tbase
//	 5 winter surface cover class    21 CGDD for EFC
//	 6 Kc max                        22 CGDD for termination
//	 7 MAD initial (%)               23 reserved, never read
//	 8 MAD midseason (%)             24 time for EFC
//	 9 rooting depth initial (m)     25 time for harvest
//	10 rooting depth maximum (m)     26 killing frost temperature
//	11 end of root growth fraction   27 invoke stress
//	12 height initial (m)            28 reserved, never read
//	13 height maximum (m)            29 CN coarse soil
//	14 curve number                  30 CN medium soil
//	15 curve name                    31 CN fine soil
//
// Rows 23 and 28 must stay skipped to remain compatible with existing files.
//
// # Cell Conventions
//
// Empty cells read as "0" for numeric fields and as "" for text fields.
// Text cells may be double-quoted when they contain a comma; quote
// characters are stripped and the result trimmed.
//
// The class number row doubles as the crop identifier row. Scanning starts at
// the third column and stops at the first cell equal to "0" (or empty), or at
// the end of the row. Crops placed after a zero placeholder are never read;
// this matches how existing parameter files have always been consumed.
// A repeated identifier overwrites the earlier column's record.
//
// # Seasons
//
// A crop whose curve name is "Winter Wheat" is a winter crop: its growing
// degree day accumulation is triggered on day of year 274. All other crops
// start accumulating on day of year 1.
package domain
