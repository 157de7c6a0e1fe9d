// @title           Bookmarks API
// @version         1.0
// @description     Create, list, update and delete bookmarks. Authenticate with the configured API token.
// @license.name    MIT
// @BasePath        /api
// @securityDefinitions.apikey BearerToken
// @in              header
// @name            Authorization
// @description     Static API token. Send as: Bearer <token>
package api
