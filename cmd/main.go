// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: accounts, transactions, budgets, reports and currency conversion

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

package main

import (
	"os"

	_ "FINTRACK_BACK-END/docs" // This is required for swagger
	"FINTRACK_BACK-END/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
