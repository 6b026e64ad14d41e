package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// ProjectSection is the INI section holding the crop ET project settings.
const ProjectSection = "CROP_ET"

// Project holds the folders the daily timeseries tool works with, resolved
// against the project folder.
type Project struct {
	ProjectFolder string
	DailyInputDir string
	OutputDir     string
}

// LoadProject reads the [CROP_ET] section of a project INI file.
//
// daily_plots_folder is optional. When it is unset the output folder is the
// input folder with "stats" replaced by "plots", or <project>/daily_stats_folder
// when the input path has no "stats" in it.
func LoadProject(path string) (*Project, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read project ini: %w", err)
	}
	sec, err := f.GetSection(ProjectSection)
	if err != nil {
		return nil, fmt.Errorf("project ini %s: missing [%s] section", path, ProjectSection)
	}

	projectFolder := strings.TrimSpace(sec.Key("project_folder").String())
	if projectFolder == "" {
		return nil, errors.New("project_folder is not set in the INI file")
	}
	dailyFolder := strings.TrimSpace(sec.Key("daily_output_folder").String())
	if dailyFolder == "" {
		return nil, errors.New("daily_output_folder is not set in the INI file")
	}

	p := &Project{
		ProjectFolder: projectFolder,
		DailyInputDir: filepath.Join(projectFolder, dailyFolder),
	}

	switch plots := strings.TrimSpace(sec.Key("daily_plots_folder").String()); {
	case plots != "":
		p.OutputDir = filepath.Join(projectFolder, plots)
	case strings.Contains(p.DailyInputDir, "stats"):
		p.OutputDir = strings.ReplaceAll(p.DailyInputDir, "stats", "plots")
	default:
		p.OutputDir = filepath.Join(projectFolder, "daily_stats_folder")
	}
	return p, nil
}
