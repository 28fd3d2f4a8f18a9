package srccheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// checkTree parses content with p and walks the tree collecting ERROR and
// missing nodes. The grammars are error-tolerant, so a non-nil tree can
// still carry problems.
func checkTree(p *sitter.Parser, content []byte) ([]Issue, error) {
	tree, err := p.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var issues []Issue
	collectErrors(tree.RootNode(), &issues)
	return issues, nil
}

func collectErrors(node *sitter.Node, issues *[]Issue) {
	if node == nil {
		return
	}

	if node.Type() == "ERROR" {
		*issues = append(*issues, Issue{
			Line:   int(node.StartPoint().Row) + 1,
			Detail: "syntax error",
		})
		return
	}
	if node.IsMissing() {
		*issues = append(*issues, Issue{
			Line:   int(node.StartPoint().Row) + 1,
			Detail: fmt.Sprintf("missing %s", node.Type()),
		})
		return
	}
	if !node.HasError() {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectErrors(node.Child(i), issues)
	}
}
