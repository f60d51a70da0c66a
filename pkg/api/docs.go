// Package api provides REST API handlers for SubgraphValidator
// @title SubgraphValidator API
// @version 1.0
// @description REST API for validating subgraph manifests and browsing the manifest registry
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/SubgraphValidator
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
