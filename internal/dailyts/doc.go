// Package dailyts prepares the daily crop ET output of a project for
// charting. It finds the per-station, per-crop daily files, drops partial
// years, derives the crop coefficients Kc and Kcb, and writes the trimmed
// series and a per-year summary as CSV.
//
// Input files are named {station}_daily_crop_{NN}.csv. The first line
// carries the crop name after its first '-'; lines starting with '#' are
// comments; the first other line is the column header.
package dailyts
