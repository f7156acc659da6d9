// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package simple

import (
	"html/template"
	"io"
)

// html/template escapes names in both text and attribute positions.
var (
	rootTmpl = template.Must(template.New("root").Parse(
		`<html><head><title>Simple Index</title><meta name="api-version" value="2"/></head><body>
{{range .}}<a href='{{.}}/'>{{.}}</a><br />
{{end}}</body></html>
`))
	packageTmpl = template.Must(template.New("package").Parse(
		`<html><head><title>Links for {{.Name}}</title></head><body>
<h1>Links for {{.Name}}</h1>
{{range .Files}}<a href="{{.Href}}#md5={{.MD5}}">{{.Name}}</a><br />
{{end}}</body></html>
`))
)

type fileLink struct {
	Name string
	Href string
	MD5  string
}

type packagePage struct {
	Name  string
	Files []fileLink
}

func renderRoot(w io.Writer, packages []string) error {
	return rootTmpl.Execute(w, packages)
}

func renderPackage(w io.Writer, p packagePage) error {
	return packageTmpl.Execute(w, p)
}
