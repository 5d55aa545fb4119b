// Package commands defines the perishables CLI.
//
// Commands
//
//   - serve      Run the HTTP API, SSE stream and gRPC health service
//   - init       Create the schema, optionally seeding sample data
//   - seed       Load the sample inventory into an empty store
//   - stats      Print inventory totals
//   - expiring   List items expiring within a window
//   - export     Write the inventory as JSON or YAML
//   - import     Add items and categories from a JSON or YAML file
//   - config     Show or write the configuration file
//
// # Implementation
//
// The root command loads the configuration before any subcommand runs.
// Subcommands that touch the inventory open the store through openService
// and close it when they return.
package commands
