package driver

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/sjson"

	"github.com/xjarifx/minic/internal/ast"
	"github.com/xjarifx/minic/internal/ir"
	"github.com/xjarifx/minic/pkg/token"
)

// Format names a --show-* rendering: plain indented text (what the
// original minic.py prints) or a machine-readable tree for tooling
// (spec.md's Supplemented features: "machine-readable dump formats on
// top, for tooling that wants to consume a compilation's intermediate
// state").
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DumpTokens renders a token stream for --show-tokens.
func DumpTokens(tokens []token.Token, format Format) (string, error) {
	switch format {
	case FormatJSON, FormatYAML:
		doc := "{}"
		var err error
		for i, tok := range tokens {
			doc, err = sjson.Set(doc, fmt.Sprintf("tokens.%d.type", i), tok.Type.String())
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("tokens.%d.literal", i), tok.Literal)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("tokens.%d.line", i), tok.Pos.Line)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("tokens.%d.col", i), tok.Pos.Column)
			if err != nil {
				return "", err
			}
		}
		return convert(doc, format)
	default:
		var sb strings.Builder
		for _, tok := range tokens {
			fmt.Fprintf(&sb, "%-12s %-10q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		}
		return sb.String(), nil
	}
}

// DumpAST renders an *ast.Program for --show-ast.
func DumpAST(prog *ast.Program, format Format) (string, error) {
	switch format {
	case FormatJSON, FormatYAML:
		doc := "{}"
		for i, stmt := range prog.Statements {
			stmtDoc, err := stmtJSON(stmt)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("statements.%d", i), stmtDoc)
			if err != nil {
				return "", err
			}
		}
		return convert(doc, format)
	default:
		return prog.String(), nil
	}
}

// DumpIR renders a TAC program for --show-ir.
func DumpIR(instrs ir.Program, format Format) (string, error) {
	switch format {
	case FormatJSON, FormatYAML:
		doc := "{}"
		var err error
		for i, instr := range instrs {
			doc, err = sjson.Set(doc, fmt.Sprintf("instructions.%d", i), instr.String())
			if err != nil {
				return "", err
			}
		}
		return convert(doc, format)
	default:
		return instrs.String(), nil
	}
}

// DumpAsm renders assembly text for --show-asm.
func DumpAsm(asm string, format Format) (string, error) {
	switch format {
	case FormatJSON, FormatYAML:
		doc, err := sjson.Set("{}", "assembly", asm)
		if err != nil {
			return "", err
		}
		return convert(doc, format)
	default:
		return asm, nil
	}
}

func convert(jsonDoc string, format Format) (string, error) {
	if format == FormatJSON {
		return jsonDoc, nil
	}
	yamlBytes, err := yaml.JSONToYAML([]byte(jsonDoc))
	if err != nil {
		return "", err
	}
	return string(yamlBytes), nil
}

func posJSON(doc, path string, pos token.Position) (string, error) {
	doc, err := sjson.Set(doc, path+".line", pos.Line)
	if err != nil {
		return "", err
	}
	return sjson.Set(doc, path+".col", pos.Column)
}

// stmtJSON builds a JSON object for a single statement node,
// incrementally via sjson (spec.md's dump-format note: the pack's
// tidwall/sjson is "the idiomatic single-pass JSON builder for exactly
// this").
func stmtJSON(stmt ast.Statement) (string, error) {
	doc := "{}"
	var err error

	switch s := stmt.(type) {
	case *ast.VarDecl:
		doc, err = sjson.Set(doc, "node", "VarDecl")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "varType", s.Type.String())
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "name", s.Name)
		if err != nil {
			return "", err
		}

	case *ast.Assign:
		doc, err = sjson.Set(doc, "node", "Assign")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "name", s.Name)
		if err != nil {
			return "", err
		}
		valueDoc, err := exprJSON(s.Value)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "value", valueDoc)
		if err != nil {
			return "", err
		}

	case *ast.If:
		doc, err = sjson.Set(doc, "node", "If")
		if err != nil {
			return "", err
		}
		condDoc, err := exprJSON(s.Cond)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "cond", condDoc)
		if err != nil {
			return "", err
		}
		doc, err = setStmtArray(doc, "then", s.Then)
		if err != nil {
			return "", err
		}
		if s.Else != nil {
			doc, err = setStmtArray(doc, "else", s.Else)
			if err != nil {
				return "", err
			}
		}

	case *ast.While:
		doc, err = sjson.Set(doc, "node", "While")
		if err != nil {
			return "", err
		}
		condDoc, err := exprJSON(s.Cond)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "cond", condDoc)
		if err != nil {
			return "", err
		}
		doc, err = setStmtArray(doc, "body", s.Body)
		if err != nil {
			return "", err
		}

	case *ast.Print:
		doc, err = sjson.Set(doc, "node", "Print")
		if err != nil {
			return "", err
		}
		valueDoc, err := exprJSON(s.Value)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "value", valueDoc)
		if err != nil {
			return "", err
		}

	case *ast.Block:
		doc, err = sjson.Set(doc, "node", "Block")
		if err != nil {
			return "", err
		}
		doc, err = setStmtArray(doc, "statements", s.Statements)
		if err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("driver: unhandled statement node %T", stmt)
	}

	return posJSON(doc, "pos", stmt.Pos())
}

func setStmtArray(doc, field string, stmts []ast.Statement) (string, error) {
	for i, s := range stmts {
		stmtDoc, err := stmtJSON(s)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, fmt.Sprintf("%s.%d", field, i), stmtDoc)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// exprJSON builds a JSON object for a single expression node.
func exprJSON(expr ast.Expression) (string, error) {
	doc := "{}"
	var err error

	switch e := expr.(type) {
	case *ast.BinaryOp:
		doc, err = sjson.Set(doc, "node", "BinaryOp")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "op", e.Op)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "type", e.Type.String())
		if err != nil {
			return "", err
		}
		leftDoc, err := exprJSON(e.Left)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "left", leftDoc)
		if err != nil {
			return "", err
		}
		rightDoc, err := exprJSON(e.Right)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "right", rightDoc)
		if err != nil {
			return "", err
		}

	case *ast.UnaryOp:
		doc, err = sjson.Set(doc, "node", "UnaryOp")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "op", e.Op)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "type", e.Type.String())
		if err != nil {
			return "", err
		}
		operandDoc, err := exprJSON(e.Operand)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "operand", operandDoc)
		if err != nil {
			return "", err
		}

	case *ast.Identifier:
		doc, err = sjson.Set(doc, "node", "Identifier")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "name", e.Name)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "type", e.Type.String())
		if err != nil {
			return "", err
		}

	case *ast.IntLiteral:
		doc, err = sjson.Set(doc, "node", "IntLiteral")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "value", e.Value)
		if err != nil {
			return "", err
		}

	case *ast.BoolLiteral:
		doc, err = sjson.Set(doc, "node", "BoolLiteral")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "value", e.Value)
		if err != nil {
			return "", err
		}

	default:
		return "", fmt.Errorf("driver: unhandled expression node %T", expr)
	}

	return posJSON(doc, "pos", expr.Pos())
}
