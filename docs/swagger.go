// Package docs Contaia tenancy API documentation
package docs

// Swagger documentation info
// @title Contaia Tenancy API
// @version 1.0
// @description Organizations, clients, users, roles, usage and quotas for the Contaia accounting platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@contaia.com

// @host localhost:8003
// @BasePath /api
// @schemes http https

// @tag.name organizations
// @tag.description Accounting firms (tenants)
// @tag.name clients
// @tag.description Clients of an accounting firm
// @tag.name users
// @tag.description Invitations, roles and user lifecycle
// @tag.name permissions
// @tag.description Permission checks and overrides
// @tag.name roles
// @tag.description Role table
// @tag.name usage
// @tag.description Usage counters, resource limits and quota warnings
// @tag.name sessions
// @tag.description Dashboard acting context
// @tag.name cache
// @tag.description Redis permission decision cache

//go:generate swag init -g swagger.go -d ./,../tenancy-service/handlers,../shared/tenancy -o ./swagger --parseDependency
