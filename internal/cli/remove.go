package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbxedit-dev/pbxedit/internal/dispatch"
)

// RunRemove detaches a file from the manifest everywhere it is referenced.
func RunRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	project, err := resolveProjectPath(cmd, cfg)
	if err != nil {
		return err
	}

	h := &dispatch.Handler{Logger: log()}
	resp := h.Handle(dispatch.Request{
		Op:      dispatch.OpRemove,
		Project: project,
		Path:    args[0],
	})
	if resp.Status != "ok" {
		if len(resp.Candidates) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "known files include:")
			for _, c := range resp.Candidates {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", c)
			}
		}
		return fmt.Errorf("%s", resp.Message)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "removed %s (%s)\n", args[0], resp.ID)
	return nil
}
