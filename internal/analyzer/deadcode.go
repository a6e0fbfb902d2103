package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/vestigehq/vestige/pkg/models"
	"github.com/vestigehq/vestige/pkg/parser"
)

const (
	reasonAfterReturn = "Code after return statement"
	reasonAlwaysFalse = "Always-false condition"
)

// findDeadCode locates unreachable code blocks: statements following an
// unconditional return inside the same block, and bodies guarded by a literal
// false condition.
func findDeadCode(res *parser.ParseResult) []models.DeadCodeBlock {
	var blocks []models.DeadCodeBlock

	parser.Walk(res.Tree.RootNode(), res.Source, func(node *sitter.Node, source []byte) bool {
		switch node.Type() {
		case "statement_block":
			blocks = append(blocks, unreachableAfterReturn(node, res.Path)...)
		case "if_statement":
			if b, ok := alwaysFalseBranch(node, source, res.Path); ok {
				blocks = append(blocks, b)
			}
		}
		return true
	})

	return blocks
}

// unreachableAfterReturn flags statements that follow a return in the same
// block, merging consecutive statements into one span.
func unreachableAfterReturn(block *sitter.Node, file string) []models.DeadCodeBlock {
	var blocks []models.DeadCodeBlock
	seenReturn := false

	for i := range int(block.ChildCount()) {
		child := block.Child(i)
		nodeType := child.Type()

		if nodeType == "{" || nodeType == "}" || nodeType == "comment" {
			continue
		}

		if !seenReturn {
			if nodeType == "return_statement" {
				seenReturn = true
			}
			continue
		}

		startLine := int(child.StartPoint().Row) + 1
		endLine := int(child.EndPoint().Row) + 1

		if len(blocks) > 0 {
			last := &blocks[len(blocks)-1]
			if last.EndLine+1 >= startLine {
				last.EndLine = endLine
				last.Complexity++
				last.RemovalBenefit = removalBenefit(last.Lines())
				continue
			}
		}

		blocks = append(blocks, models.DeadCodeBlock{
			File:           file,
			StartLine:      startLine,
			EndLine:        endLine,
			Reason:         reasonAfterReturn,
			Complexity:     1,
			RemovalBenefit: removalBenefit(endLine - startLine + 1),
		})
	}

	return blocks
}

// alwaysFalseBranch flags the consequence of `if (false)`.
func alwaysFalseBranch(ifNode *sitter.Node, source []byte, file string) (models.DeadCodeBlock, bool) {
	cond := ifNode.ChildByFieldName("condition")
	if cond == nil {
		return models.DeadCodeBlock{}, false
	}

	condText := strings.TrimSpace(parser.GetNodeText(cond, source))
	condText = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(condText, "("), ")"))
	if condText != "false" {
		return models.DeadCodeBlock{}, false
	}

	body := ifNode.ChildByFieldName("consequence")
	if body == nil {
		return models.DeadCodeBlock{}, false
	}

	startLine := int(body.StartPoint().Row) + 1
	endLine := int(body.EndPoint().Row) + 1

	return models.DeadCodeBlock{
		File:           file,
		StartLine:      startLine,
		EndLine:        endLine,
		Reason:         reasonAlwaysFalse,
		Complexity:     statementCount(body),
		RemovalBenefit: removalBenefit(endLine - startLine + 1),
	}, true
}

// statementCount counts direct statement children of a block.
func statementCount(block *sitter.Node) int {
	count := 0
	for i := range int(block.ChildCount()) {
		t := block.Child(i).Type()
		if t != "{" && t != "}" && t != "comment" {
			count++
		}
	}
	return count
}

// removalBenefit scales with the number of lines removed, capped at 1.
func removalBenefit(lines int) float64 {
	b := 0.1 * float64(lines)
	if b > 1.0 {
		return 1.0
	}
	if b < 0.1 {
		return 0.1
	}
	return b
}
