package docs

import "github.com/swaggo/swag"

// @title           Timetrack API
// @version         1.0
// @description     API for task management, time tracking and activity logging

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profile

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Time Entries
// @tag.description Timer start/stop and daily summaries

// @tag.name Comments
// @tag.description Task comments

// @tag.name Activities
// @tag.description Per-task activity log

// @tag.name Reports
// @tag.description Time aggregation reports

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
