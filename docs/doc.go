// Package docs provides generated OpenAPI documentation.
//
// casebundle API
//
//	@title			casebundle API
//	@version		1.0
//	@description	Compiles court bundles: ordered PDFs with a table of contents and stamped page numbers.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/casebundle
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/casebundle/serve.go -o ./swagger --outputTypes go --parseDependency --parseInternal
