package dashboard

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/qepting91/reddit-book-reviews/internal/pipeline"
)

type pageData struct {
	Title  string
	Report *pipeline.Report
	Chart  *chartView
}

// chartView is a chart rendered as a fragment of the page rather than a
// standalone document.
type chartView struct {
	Scripts []string
	Element template.HTML
	Script  template.HTML
}

func newChartView(bar *charts.Bar) *chartView {
	// RenderSnippet validates the chart, which prefixes the asset host.
	snippet := bar.RenderSnippet()
	return &chartView{
		Scripts: append([]string(nil), bar.JSAssets.Values...),
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
	}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Reddit Book Review Finder</title>
{{with .Chart}}{{range .Scripts}}<script src="{{.}}"></script>
{{end}}{{end}}<style>
body { font-family: sans-serif; margin: 2em; }
.notice { padding: .5em 1em; background: #fff4e5; border-left: 4px solid #f0a020; }
.error { color: #a33; }
table { border-collapse: collapse; width: 100%; margin-bottom: 1.5em; }
td, th { border: 1px solid #ddd; padding: .4em; vertical-align: top; text-align: left; }
</style>
</head>
<body>
<h1>Reddit Book Review Finder</h1>
<form method="get" action="/">
  <input type="text" name="title" value="{{.Title}}" placeholder="Enter Book Title" size="50">
  <button type="submit">Search</button>
</form>
{{with .Report}}
  {{if .Diagnostic}}
  <p class="notice">No reviews found for <b>{{.Title}}</b>: {{.Diagnostic.Message}}</p>
  {{else}}
  <p>Found {{.CommentCount}} comments from {{len .Threads}} Reddit threads for <b>{{.Title}}</b>.</p>
  {{range .Threads}}
  <h3><a href="{{.Thread.URL}}">{{if .Thread.Title}}{{.Thread.Title}}{{else}}{{.Thread.URL}}{{end}}</a></h3>
    {{if .Result.OK}}
      {{if .Result.Empty}}
      <p class="notice">No comments passed the filters.</p>
      {{else}}
      <table>
        <tr><th>Author</th><th>Score</th><th>Comment</th></tr>
        {{range .Result.Comments}}
        <tr><td>{{.Author}}</td><td>{{.Score}}</td><td>{{.Body}}</td></tr>
        {{end}}
      </table>
      {{end}}
    {{else}}
    <p class="error">{{.Result.Diagnostic.Kind}}: {{.Result.Diagnostic.Message}}</p>
    {{end}}
  {{end}}
  {{end}}
{{end}}
{{with .Chart}}
<div class="chart">
{{.Element}}
{{.Script}}
</div>
{{end}}
</body>
</html>
`))
