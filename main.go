// =============================================================================
// Cart Parser - Main Entry Point
// =============================================================================
//
// USAGE:
//   cartparser parse FILE    - Print the items and total of one cart
//   cartparser validate FILE - List every violation in one cart
//   cartparser process       - Process all carts in the input directory
//   cartparser watch         - Process carts as they arrive
//   cartparser version       - Display the application version
//
// LAYOUT:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : cart reading, validation, parsing and report writers
//   - pkg/      : file management shared by the batch commands
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/cart-parser/cmd"
)

func main() {
	cmd.Execute()
}
