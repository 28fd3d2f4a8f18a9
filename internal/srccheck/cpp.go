package srccheck

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// CppChecker screens C++ source files.
type CppChecker struct {
	parser *sitter.Parser
}

// NewCppChecker creates a new C++ checker.
func NewCppChecker() *CppChecker {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &CppChecker{parser: p}
}

func (c *CppChecker) Language() string {
	return "cpp"
}

func (c *CppChecker) Extensions() []string {
	return []string{".cpp", ".cc", ".cxx", ".hpp"}
}

func (c *CppChecker) Check(filename string, content []byte) ([]Issue, error) {
	return checkTree(c.parser, content)
}
