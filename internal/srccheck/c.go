package srccheck

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// CChecker screens plain C source files. Objective-C has no grammar
// here, so .m and .h files are left unscreened rather than flagged by
// a grammar that cannot read them.
type CChecker struct {
	parser *sitter.Parser
}

// NewCChecker creates a new C checker.
func NewCChecker() *CChecker {
	p := sitter.NewParser()
	p.SetLanguage(c.GetLanguage())
	return &CChecker{parser: p}
}

func (c *CChecker) Language() string {
	return "c"
}

func (c *CChecker) Extensions() []string {
	return []string{".c"}
}

func (c *CChecker) Check(filename string, content []byte) ([]Issue, error) {
	return checkTree(c.parser, content)
}
