package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pbxedit-dev/pbxedit/internal/parser"
	"github.com/pbxedit-dev/pbxedit/internal/version"
)

// RunPin resolves the pinned version of a Swift package dependency,
// preferring Package.resolved over the manifest's package references.
func RunPin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveProjectPath(cmd, cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	doc, err := parser.Parse(string(data))
	if err != nil {
		return err
	}

	pin, err := version.Lookup(doc, resolvedPathFor(path), args[0])
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := struct {
			Package  string `json:"package"`
			Version  string `json:"version,omitempty"`
			Revision string `json:"revision,omitempty"`
			Source   string `json:"source"`
		}{pin.Package, pin.Version, pin.Revision, pin.Source}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	switch {
	case pin.Version != "":
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", pin.Package, pin.Version, pin.Source)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s @%s (%s)\n", pin.Package, pin.Revision, pin.Source)
	}
	return nil
}

// resolvedPathFor maps Demo.xcodeproj/project.pbxproj to the
// Package.resolved recorded by Xcode inside the same bundle.
func resolvedPathFor(manifestPath string) string {
	bundle := filepath.Dir(manifestPath)
	return filepath.Join(bundle, "project.xcworkspace", "xcshareddata", "swiftpm", "Package.resolved")
}
