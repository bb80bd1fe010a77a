package gen

import "text/template"

// templateData holds all data needed for the file template.
type templateData struct {
	PackageName string
	Filename    string
	Imports     []string
	Structs     []structData
	Enums       []enumData
}

type structData struct {
	Name   string
	Doc    []string
	Fields []fieldData
}

type fieldData struct {
	Name string
	Type string
	Tag  string
	Doc  []string
}

type enumData struct {
	Name   string
	Doc    []string
	Consts []constData
}

type constData struct {
	Name  string
	Value string
	Doc   []string
}

var fileTemplate = template.Must(template.New("model").Parse(`// Code generated by ecs-shapegen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	"{{.}}"
{{end}})
{{end}}
{{range .Structs}}
{{range .Doc}}// {{.}}
{{end}}type {{.Name}} struct {
{{range .Fields}}{{range .Doc}}	// {{.}}
{{end}}	{{.Name}} {{.Type}} {{.Tag}}
{{end}}}
{{end}}
{{range .Enums}}
{{range .Doc}}// {{.}}
{{end}}type {{.Name}} string

{{$enum := .Name}}const (
{{range .Consts}}{{range .Doc}}	// {{.}}
{{end}}	{{.Name}} {{$enum}} = {{.Value}}
{{end}})
{{end}}
`))
