package main

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"boac/boa"

	"github.com/spf13/cobra"
)

type PageData struct {
	Title   string
	Grammar string
	Items   []DocItem
}

type DocItem struct {
	ID          string
	Keyword     string
	Signature   string
	Description string
	Params      []boa.ParamDoc
	Example     string
	Result      string
	Assembly    string
}

func main() {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "boadoc",
		Short: "Generate the HTML language reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}
			fullPath := filepath.Join(outputDir, "index.html")
			f, err := os.Create(fullPath)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := render(f); err != nil {
				return fmt.Errorf("failed render: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", fullPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "out", "o", "docs", "output directory")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func render(w io.Writer) error {
	page, err := preparePage()
	if err != nil {
		return err
	}
	t, err := template.New("boa").Parse(htmlTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, page)
}

// preparePage collects the keyword docs in reserved-word order and compiles
// each example so the page shows the code it produces.
func preparePage() (PageData, error) {
	page := PageData{Title: "boa language reference", Grammar: grammar}

	for _, k := range boa.GetAllKeywords() {
		doc, ok := boa.KeywordDocs[k]
		if !ok {
			continue
		}
		item := DocItem{
			ID:          slugify(k),
			Keyword:     doc.Keyword,
			Signature:   doc.Signature,
			Description: doc.Description,
			Params:      doc.Params,
			Example:     doc.Example,
			Result:      doc.Result,
		}
		if doc.Example != "" {
			unit, err := boa.CompileSource("example", doc.Example)
			if err != nil {
				return page, fmt.Errorf("example for %q: %w", k, err)
			}
			item.Assembly = boa.RenderInstrs(unit.Instrs)
		}
		page.Items = append(page.Items, item)
	}
	return page, nil
}

func slugify(keyword string) string {
	switch keyword {
	case "+":
		return "plus"
	case "-":
		return "minus"
	case "*":
		return "times"
	}
	return strings.ToLower(keyword)
}

const grammar = `<expr> := <int32-literal> | <identifier>
        | (add1 <expr>) | (sub1 <expr>)
        | (+ <expr> <expr>) | (- <expr> <expr>) | (* <expr> <expr>)
        | (let (<binding>+) <expr>)
<binding> := (<identifier> <expr>)`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; color: #222; }
pre { background: #f4f4f4; padding: .75rem; overflow-x: auto; }
code { font-family: monospace; }
nav a { margin-right: .75rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<nav>{{range .Items}}<a href="#{{.ID}}"><code>{{.Keyword}}</code></a>{{end}}</nav>
<h2>Grammar</h2>
<pre>{{.Grammar}}</pre>
{{range .Items}}
<section id="{{.ID}}">
<h2><code>{{.Keyword}}</code></h2>
<pre>{{.Signature}}</pre>
<p>{{.Description}}</p>
{{if .Params}}<ul>{{range .Params}}<li><code>{{.Name}}</code>: {{.Description}}</li>{{end}}</ul>{{end}}
{{if .Example}}<p>Example: <code>{{.Example}}</code> evaluates to <code>{{.Result}}</code></p>
<pre>{{.Assembly}}</pre>{{end}}
</section>
{{end}}
</body>
</html>
`
