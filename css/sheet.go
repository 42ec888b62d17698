package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Sheet summarizes a user supplied stylesheet. The stylesheet itself is
// passed through to the output verbatim, the summary exists so problems
// surface in the log instead of silently broken styling in a browser.
type Sheet struct {
	Rules        int
	Imports      []string
	FontFamilies []string
	Warnings     []string
}

// InspectStylesheet tokenizes a stylesheet and reports what it carries.
// Never fails - a syntactically broken sheet produces warnings, what the
// tokenizer could not make sense of is simply not counted.
func InspectStylesheet(data []byte, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("css")

	sheet := &Sheet{}
	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, tok := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				log.Warn("Stylesheet has syntax problems", zap.Error(err))
			}
			log.Debug("Stylesheet inspected",
				zap.Int("rules", sheet.Rules),
				zap.Int("imports", len(sheet.Imports)),
				zap.Int("fontFaces", len(sheet.FontFamilies)))
			return sheet

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			sheet.Rules++

		case css.AtRuleGrammar:
			if string(tok) == "@import" {
				url := importURL(parser.Values())
				if url != "" {
					sheet.Imports = append(sheet.Imports, url)
					sheet.Warnings = append(sheet.Warnings, "@import is copied as-is and never fetched: "+url)
					log.Warn("Stylesheet imports an external resource, it will not be fetched", zap.String("url", url))
				}
			}

		case css.BeginAtRuleGrammar:
			if string(tok) == "@font-face" {
				if family := fontFaceFamily(parser); family != "" {
					sheet.FontFamilies = append(sheet.FontFamilies, family)
				}
			} else {
				skipAtRuleBlock(parser)
			}
		}
	}
}

// importURL extracts the target of an @import prelude, handling both the
// string and the url() form.
func importURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := strings.TrimPrefix(string(t.Data), "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// fontFaceFamily walks an @font-face block and picks out the family name.
func fontFaceFamily(parser *css.Parser) string {
	family := ""
	for {
		gt, _, tok := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return family
		case css.DeclarationGrammar:
			if string(tok) != "font-family" {
				continue
			}
			var parts []string
			for _, v := range parser.Values() {
				if v.TokenType != css.WhitespaceToken {
					parts = append(parts, string(v.Data))
				}
			}
			family = unquote(strings.Join(parts, " "))
		}
	}
}

// skipAtRuleBlock consumes tokens until the matching end of an @-rule block.
func skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
