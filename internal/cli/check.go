package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbxedit-dev/pbxedit/internal/graph"
)

// RunCheck loads the manifest and reports graph consistency problems.
// A clean graph exits zero; any problem exits nonzero.
func RunCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveProjectPath(cmd, cfg)
	if err != nil {
		return err
	}
	proj, err := loadProject(path)
	if err != nil {
		return err
	}

	problems := proj.Check()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := struct {
			Project  string          `json:"project"`
			Problems []graph.Problem `json:"problems"`
		}{Project: path, Problems: problems}
		if out.Problems == nil {
			out.Problems = []graph.Problem{}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, p := range problems {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Code, p.Detail)
		}
		if len(problems) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) found", len(problems))
	}
	return nil
}
