package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pbxedit-dev/pbxedit/internal/dispatch"
)

// RunDispatch reads JSON requests from stdin, one object per request,
// and writes one JSON response per line. Requests without a project fall
// back to the resolved manifest, so a calling agent only needs op and
// path. The stream keeps going after failed operations; only malformed
// JSON stops it.
func RunDispatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defaultProject, _ := resolveProjectPath(cmd, cfg)

	h := &dispatch.Handler{Logger: log()}
	dec := json.NewDecoder(cmd.InOrStdin())
	enc := json.NewEncoder(cmd.OutOrStdout())

	for {
		var req dispatch.Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		if req.Project == "" {
			req.Project = defaultProject
		}
		if err := enc.Encode(h.Handle(req)); err != nil {
			return err
		}
	}
}
