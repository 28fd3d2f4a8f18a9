package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbxedit-dev/pbxedit/internal/config"
	"github.com/pbxedit-dev/pbxedit/internal/fileutil"
	"github.com/pbxedit-dev/pbxedit/internal/graph"
	"github.com/pbxedit-dev/pbxedit/internal/parser"
	"github.com/pbxedit-dev/pbxedit/internal/writer"
)

func log() *zap.Logger {
	if logger != nil {
		return logger
	}
	return zap.NewNop()
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

// resolveProjectPath picks the manifest: the --project flag wins, then
// the config file, then a single *.xcodeproj/project.pbxproj found in
// the working directory.
func resolveProjectPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if flag, _ := cmd.Flags().GetString("project"); flag != "" {
		return flag, nil
	}
	if p := cfg.ProjectPath(); p != "" {
		return p, nil
	}
	return discoverProject(".")
}

func discoverProject(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xcodeproj", "project.pbxproj"))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no project.pbxproj found in %s; pass --project", dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple projects found in %s; pass --project", dir)
	}
}

func loadProject(path string) (*graph.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	doc, err := parser.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return graph.Load(doc)
}

func saveProject(path string, proj *graph.Project) error {
	changed, err := fileutil.WriteIfChanged(path, writer.Write(proj.Document()))
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if changed {
		log().Debug("manifest rewritten", zap.String("path", path))
	}
	return nil
}
