// Package commands defines the wheel CLI and wires dependencies for subcommands.
//
// Commands
//
//   - add      Add names to the wheel
//   - rm       Remove a name
//   - toggle   Include or exclude a name
//   - clear    Remove every name
//   - ls       List the names
//   - render   Write the wheel as a PNG
//   - spin     Spin once and print the winner
//   - serve    Run the wheel and serve it over 9P
//   - ctl      Send one action to a running wheel
//
// # Implementation
//
// The root command loads the configuration, sets up logging and opens the
// entry store under the home directory before any subcommand runs, so
// handlers share one store and one theme.
package commands
