// Package docs provides generated OpenAPI documentation.
//
// LangExtract Web API
//
//	@title			LangExtract Web API
//	@version		1.0
//	@description	Form actions of the LangExtract web client. Each browser session owns one extraction form.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/langextract
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:3000
//	@BasePath	/
//
//	@schemes	http
package docs

//go:generate swag init -g ../cmd/langextract/serve.go -o ./swagger --parseDependency --parseInternal
