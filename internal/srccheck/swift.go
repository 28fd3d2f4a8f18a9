package srccheck

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

// SwiftChecker screens Swift source files.
type SwiftChecker struct {
	parser *sitter.Parser
}

// NewSwiftChecker creates a new Swift checker.
func NewSwiftChecker() *SwiftChecker {
	p := sitter.NewParser()
	p.SetLanguage(swift.GetLanguage())
	return &SwiftChecker{parser: p}
}

func (c *SwiftChecker) Language() string {
	return "swift"
}

func (c *SwiftChecker) Extensions() []string {
	return []string{".swift"}
}

func (c *SwiftChecker) Check(filename string, content []byte) ([]Issue, error) {
	return checkTree(c.parser, content)
}
