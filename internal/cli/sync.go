package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pbxedit-dev/pbxedit/internal/config"
	"github.com/pbxedit-dev/pbxedit/internal/diff"
	"github.com/pbxedit-dev/pbxedit/internal/dispatch"
	"github.com/pbxedit-dev/pbxedit/internal/ignore"
	"github.com/pbxedit-dev/pbxedit/internal/srccheck"
)

// ignoreFileName holds extra ignore rules next to the config file.
const ignoreFileName = ".pbxeditignore"

type plannedEdit struct {
	op   string
	path string
}

// RunSync fetches a diff, splits it per file, and mirrors its additions,
// deletions and renames into the manifest. Modified files need no
// manifest change and are skipped.
func RunSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	project, err := resolveProjectPath(cmd, cfg)
	if err != nil {
		return err
	}

	source := cfg.DiffSource
	if len(args) > 0 {
		source = args[0]
	}
	if source == "" {
		return fmt.Errorf("no diff source: pass one or set diff_source in %s", config.FileName)
	}

	cacheDir, err := cfg.ResolveCacheDir()
	if err != nil {
		return err
	}
	fetcher := &diff.Fetcher{CacheDir: cacheDir, MaxAge: cfg.MaxAge(), Logger: log()}
	data, err := fetcher.Fetch(cmd.Context(), source)
	if err != nil {
		return err
	}

	fragments := diff.Split(data)
	matcher := ignore.NewMatcher(collectIgnoreRules(cfg.Dir, cfg.Ignore))
	edits := planEdits(fragments, matcher)

	log().Debug("sync planned",
		zap.String("source", source),
		zap.Int("fragments", len(fragments)),
		zap.Int("edits", len(edits)))

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, e := range edits {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", e.op, e.path)
		}
		return nil
	}

	strict, _ := cmd.Flags().GetBool("strict")
	strict = strict || cfg.Strict

	h := &dispatch.Handler{Logger: log()}
	failed := 0
	for _, e := range edits {
		if e.op == dispatch.OpAdd {
			if ok, err := screenSource(cmd, e.path, strict); err != nil {
				return err
			} else if !ok {
				failed++
				continue
			}
		}
		resp := h.Handle(dispatch.Request{Op: e.op, Project: project, Path: e.path})
		if resp.Status != "ok" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %s\n", e.op, e.path, resp.Message)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", e.op, e.path, resp.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d edit(s) failed", failed)
	}
	return nil
}

// planEdits maps diff fragments to manifest edits, dropping ignored
// paths. A rename becomes a remove of the old path plus an add of the
// new one.
func planEdits(fragments []diff.FileDiff, matcher *ignore.Matcher) []plannedEdit {
	var edits []plannedEdit
	for _, frag := range fragments {
		switch frag.Status {
		case diff.StatusAdded:
			if !matcher.ShouldIgnore(frag.NewPath, false) {
				edits = append(edits, plannedEdit{dispatch.OpAdd, frag.NewPath})
			}
		case diff.StatusDeleted:
			if !matcher.ShouldIgnore(frag.OldPath, false) {
				edits = append(edits, plannedEdit{dispatch.OpRemove, frag.OldPath})
			}
		case diff.StatusRenamed:
			if !matcher.ShouldIgnore(frag.OldPath, false) {
				edits = append(edits, plannedEdit{dispatch.OpRemove, frag.OldPath})
			}
			if !matcher.ShouldIgnore(frag.NewPath, false) {
				edits = append(edits, plannedEdit{dispatch.OpAdd, frag.NewPath})
			}
		}
	}
	return edits
}

// screenSource runs the syntax screen on a to-be-added file. In strict
// mode issues abort the sync; otherwise they are warnings. Returns false
// when the file should be skipped.
func screenSource(cmd *cobra.Command, filePath string, strict bool) (bool, error) {
	checker := srccheck.NewDefaultRegistry().ForFile(filePath)
	if checker == nil {
		return true, nil
	}
	content, err := os.ReadFile(filePath)
	if err != nil {
		// The add itself reports unreadable files.
		return true, nil
	}
	issues, err := checker.Check(filePath, content)
	if err != nil || len(issues) == 0 {
		return true, nil
	}
	for _, issue := range issues {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s:%d: %s\n", filePath, issue.Line, issue.Detail)
	}
	if strict {
		return false, fmt.Errorf("%s: %d syntax issue(s)", filePath, len(issues))
	}
	return true, nil
}

func collectIgnoreRules(dir string, configRules []string) []string {
	rules := append([]string(nil), configRules...)
	data, err := os.ReadFile(filepath.Join(dir, ignoreFileName))
	if err != nil {
		return rules
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	return rules
}
