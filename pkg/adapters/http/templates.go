package http

// Minimal embedded pages. Styling intentionally spartan; anything richer
// belongs to a real frontend consuming /api/tree.

const homeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<title>BOM Tree</title>
</head>
<body>
	<h1>BOM Tree</h1>
	<form method="get" action="/">
		<label>Part id: <input type="text" name="part" /></label>
		<button type="submit">Open tree</button>
	</form>
	{{if .Error}}<p style="color:#b91c1c">{{.Error}}</p>{{end}}
	<h2>Assemblies</h2>
	<ul>
	{{range .Assemblies}}
		<li><a href="/tree/{{.ID}}">{{.Name}}</a>{{if .IPN}} ({{.IPN}}){{end}}</li>
	{{else}}
		<li>No assemblies found.</li>
	{{end}}
	</ul>
</body>
</html>
`

const treeHTML = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<title>BOM Tree — {{.Part.Name}}</title>
</head>
<body>
	<p><a href="/">&larr; All assemblies</a></p>
	<h1>{{.Part.Name}}{{if .Part.Revision}} <small>rev {{.Part.Revision}}</small>{{end}}</h1>
	{{if .Part.IPN}}<p>IPN: {{.Part.IPN}}</p>{{end}}
	{{if .Warning}}<p style="color:#b45309">{{.Warning}}</p>{{end}}
	<p>Depth: {{.Metrics.MaxDepth}} &middot; Nodes: {{.Metrics.TotalNodes}}</p>
	<ul>
	{{range .Tree.Children}}{{template "node" .}}{{end}}
	</ul>
</body>
</html>

{{define "node"}}
	<li>
		{{with .Edge}}{{with .Quantity}}{{.}} &times; {{end}}{{end}}<a href="{{.Part.URL}}">{{.Part.Name}}</a>
		{{- if .Cycle}} <strong>(cycle)</strong>{{end}}
		{{- with .Edge}}{{if .Reference}} <em>{{.Reference}}</em>{{end}}{{end}}
		{{if .Children}}
		<ul>
		{{range .Children}}{{template "node" .}}{{end}}
		</ul>
		{{end}}
	</li>
{{end}}
`
