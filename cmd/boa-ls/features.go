package main

import (
	"fmt"
	"sort"

	"boac/boa"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// diagnosticsFor reports the first lexer, reader or parser error, or else
// every scope error found by analysis.
func diagnosticsFor(uri string, content string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	parsed := boa.ParseSource(uri, content)
	if parsed.IsErr() {
		source := lsName + " (syntax)"
		if be, ok := parsed.Err.(*boa.BoaError); ok && be.Type == boa.ErrorLexer {
			source = lsName + " (lexer)"
		}
		return append(diagnostics, newDiagnostic(parsed.Err, source))
	}

	analysis := boa.Analyze(parsed.Value)
	for _, err := range analysis.Errors {
		diagnostics = append(diagnostics, newDiagnostic(err, lsName+" (scope)"))
	}
	return diagnostics
}

func newDiagnostic(err boa.Error, source string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	msg := err.Error()
	if be, ok := err.(*boa.BoaError); ok {
		msg = be.Msg
	}
	return protocol.Diagnostic{
		Range:    lspRangeFromLoc(err.GetLocation()),
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

func completionItems(uri, content string, pos protocol.Position) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}

	kindKeyword := CIKKeyword
	detailKeyword := "keyword"
	for _, keyword := range boa.GetAllKeywords() {
		item := protocol.CompletionItem{
			Label:  keyword,
			Kind:   &kindKeyword,
			Detail: &detailKeyword,
		}
		if doc, ok := boa.KeywordDocs[keyword]; ok {
			item.Documentation = protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: doc.Markdown(),
			}
		}
		items = append(items, item)
	}

	parsed := boa.ParseSource(uri, content)
	if parsed.IsErr() {
		log.Debugf("completion without scope: %v", parsed.Err)
		return items
	}

	line, col := int(pos.Line)+1, max(int(pos.Character), 1)
	kindVar := CIKVariable
	for _, sym := range boa.Analyze(parsed.Value).SymbolsAt(line, col) {
		detail := fmt.Sprintf("slot %d", sym.Slot)
		items = append(items, protocol.CompletionItem{
			Label:  sym.Name,
			Kind:   &kindVar,
			Detail: &detail,
			Documentation: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: symbolMarkdown(sym),
			},
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return *items[i].Kind == CIKVariable && *items[j].Kind != CIKVariable
	})
	return items
}

func hoverAt(uri, content string, pos protocol.Position) *protocol.Hover {
	line, col := int(pos.Line)+1, int(pos.Character)+1

	tokens, lexErr := boa.NewLexer(uri, content).Tokenize()
	if lexErr.IsErr() {
		return nil
	}
	for _, tok := range tokens {
		if tok.Kind != boa.TokenSymbol || !(boa.Span{Start: tok.Loc, End: tok.Loc}).Contains(line, col) {
			continue
		}
		if doc, ok := boa.KeywordDocs[tok.Value]; ok {
			return newHover(doc.Markdown(), tok.Loc)
		}
	}

	parsed := boa.ParseSource(uri, content)
	if parsed.IsErr() {
		return nil
	}
	analysis := boa.Analyze(parsed.Value)
	if ref := analysis.ReferenceAt(line, col); ref != nil {
		if ref.Symbol == nil {
			return newHover(fmt.Sprintf("`%s` is not bound here", ref.Name), ref.Loc)
		}
		return newHover(symbolMarkdown(ref.Symbol), ref.Loc)
	}
	if sym := analysis.DefinitionAt(line, col); sym != nil {
		return newHover(symbolMarkdown(sym), sym.Def)
	}
	return nil
}

func symbolMarkdown(sym *boa.Symbol) string {
	return fmt.Sprintf("```boa\n(%s %s)\n```\n\nstack slot %d at `%s`",
		sym.Name, sym.Value, sym.Slot, boa.ValToString(boa.SlotVal(sym.Slot)))
}

func newHover(markdown string, loc boa.Loc) *protocol.Hover {
	rng := lspRangeFromLoc(loc)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: markdown,
		},
		Range: &rng,
	}
}

// lspRangeFromLoc converts 1-based inclusive columns to the 0-based,
// end-exclusive positions the protocol uses.
func lspRangeFromLoc(loc boa.Loc) protocol.Range {
	startChar := loc.ColStart - 1
	if startChar < 0 {
		startChar = 0
	}
	endChar := startChar + 1
	if loc.ColEnd != nil {
		endChar = *loc.ColEnd
	}
	line := loc.Line - 1
	if line < 0 {
		line = 0
	}

	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(startChar)},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(endChar)},
	}
}
