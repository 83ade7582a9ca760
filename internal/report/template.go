package report

import (
	"html/template"
	"time"
)

// nowFunc is swapped in tests for a stable timestamp.
var nowFunc = time.Now

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Story Processing Report</title>
<style>
  body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { border-bottom: 2px solid #444; padding-bottom: .3rem; }
  h2 { margin-top: 2.5rem; }
  .meta { color: #666; font-size: .9rem; }
  .page { border-left: 3px solid #ccc; padding-left: 1rem; margin: 1rem 0; }
  .coaching { background: #f6f3e8; padding: .5rem .8rem; font-style: italic; }
  .empty { color: #888; }
</style>
</head>
<body>
<h1>Story Processing Report</h1>
<p class="meta">Generated {{.Generated}} &middot; {{len .Stories}} stories</p>
{{if not .Stories}}<p class="empty">No processed stories found.</p>{{end}}
{{range .Stories}}
<h2>{{.Title}}</h2>
<p class="meta">{{.Slug}} &middot; {{.PageCount}} pages{{if .TagLine}} &middot; {{.TagLine}}{{end}}{{if .Processed}} &middot; processed {{.Processed}}{{end}}</p>
{{range .Pages}}
<div class="page">
<h3>Page {{.Number}}</h3>
{{.Content}}
{{if .Coaching}}<div class="coaching">{{.Coaching}}</div>{{end}}
</div>
{{end}}
{{end}}
</body>
</html>
`))
