package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var FS embed.FS

// Templates 模板编进二进制，运行和测试都不依赖工作目录
func Templates() *template.Template {
	return template.Must(template.ParseFS(FS, "templates/*.html"))
}
