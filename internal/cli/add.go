package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbxedit-dev/pbxedit/internal/dispatch"
	"github.com/pbxedit-dev/pbxedit/internal/srccheck"
)

// RunAdd wires a file into the manifest: file reference, build
// membership, phase and group, as one all-or-nothing edit.
func RunAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	project, err := resolveProjectPath(cmd, cfg)
	if err != nil {
		return err
	}

	filePath := args[0]
	if noCheck, _ := cmd.Flags().GetBool("no-check"); !noCheck {
		warnSyntaxIssues(cmd, filePath)
	}

	category, _ := cmd.Flags().GetString("category")
	h := &dispatch.Handler{Logger: log()}
	resp := h.Handle(dispatch.Request{
		Op:       dispatch.OpAdd,
		Project:  project,
		Path:     filePath,
		Category: category,
	})
	if resp.Status != "ok" {
		return fmt.Errorf("%s", resp.Message)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", filePath, resp.ID)
	return nil
}

// warnSyntaxIssues runs the advisory syntax screen. Unreadable files are
// left for the add itself to report.
func warnSyntaxIssues(cmd *cobra.Command, filePath string) {
	checker := srccheck.NewDefaultRegistry().ForFile(filePath)
	if checker == nil {
		return
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	issues, err := checker.Check(filePath, content)
	if err != nil {
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s:%d: %s\n", filePath, issue.Line, issue.Detail)
	}
}
