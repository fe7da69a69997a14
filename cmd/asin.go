package cmd

import (
	"fmt"
	"sort"

	"github.com/huangsam/keepwatch/internal/asinstore"
	"github.com/huangsam/keepwatch/internal/contract"
	"github.com/spf13/cobra"
)

// asinSetup loads minimal configuration needed for ASIN list operations.
// List management is purely local, so no API key or database is required.
func asinSetup() error {
	return loadConfigFile()
}

// asinSetupWrapper wraps asinSetup to provide PreRunE for asin commands.
func asinSetupWrapper(_ *cobra.Command, _ []string) error {
	return asinSetup()
}

// asinCmd focused on saved ASIN list management.
var asinCmd = &cobra.Command{
	Use:   "asin",
	Short: "Manage saved ASIN lists",
	Long: `Manage named ASIN lists stored in a local JSON file.

Saved lists let you analyze the same portfolio repeatedly without retyping
ASINs. Any analysis command accepts --list <name> instead of positional ASINs.

Subcommands:
  list   - Show all saved lists and their members
  add    - Add ASINs to a list (creates the list if missing)
  remove - Remove ASINs from a list
  clear  - Delete a list entirely

Examples:
  # Build a watchlist and analyze it
  keepwatch asin add my-watchlist B0ABCD1234 B0EFGH5678
  keepwatch salesrank --list my-watchlist`,
}

// asinListCmd shows all saved lists.
var asinListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all saved ASIN lists and their members",
	Long: `Print every saved list with its member ASINs.

Examples:
  # Show all lists
  keepwatch asin list`,
	PreRunE: asinSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := asinstore.New("")
		lists, err := store.Lists()
		if err != nil {
			contract.LogFatal("Failed to load ASIN lists", err)
		}
		if len(lists) == 0 {
			fmt.Println("No saved ASIN lists.")
			return
		}
		names := make([]string, 0, len(lists))
		for name := range lists {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			list := lists[name]
			fmt.Printf("%s (%d ASINs)\n", name, len(list.ASINs))
			for _, asin := range list.ASINs {
				fmt.Printf("  %s\n", asin)
			}
		}
	},
}

// asinAddCmd adds ASINs to a named list.
var asinAddCmd = &cobra.Command{
	Use:   "add <list> <ASIN...>",
	Short: "Add ASINs to a saved list (creates the list if missing)",
	Long: `Validate and append ASINs to a named list.

ASINs are normalized to uppercase and must be exactly 10 letters and digits.
Duplicates already in the list are skipped silently.

Examples:
  # Create a list and add two products
  keepwatch asin add my-watchlist B0ABCD1234 B0EFGH5678`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: asinSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		store := asinstore.New("")
		added, err := store.Add(args[0], args[1:])
		if err != nil {
			contract.LogFatal("Failed to add ASINs", err)
		}
		fmt.Printf("Added %d ASIN(s) to list %q.\n", added, args[0])
	},
}

// asinRemoveCmd removes ASINs from a named list.
var asinRemoveCmd = &cobra.Command{
	Use:   "remove <list> <ASIN...>",
	Short: "Remove ASINs from a saved list",
	Long: `Remove the given ASINs from a named list.

ASINs not present in the list are ignored.

Examples:
  # Drop one product from a watchlist
  keepwatch asin remove my-watchlist B0ABCD1234`,
	Args:    cobra.MinimumNArgs(2),
	PreRunE: asinSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		store := asinstore.New("")
		removed, err := store.Remove(args[0], args[1:])
		if err != nil {
			contract.LogFatal("Failed to remove ASINs", err)
		}
		fmt.Printf("Removed %d ASIN(s) from list %q.\n", removed, args[0])
	},
}

// asinClearCmd deletes a named list entirely.
var asinClearCmd = &cobra.Command{
	Use:   "clear <list>",
	Short: "Delete a saved ASIN list entirely",
	Long: `Delete a named list and all of its members.

WARNING: This action cannot be undone.

Examples:
  # Remove a watchlist
  keepwatch asin clear my-watchlist`,
	Args:    cobra.ExactArgs(1),
	PreRunE: asinSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		store := asinstore.New("")
		if err := store.Clear(args[0]); err != nil {
			contract.LogFatal("Failed to clear list", err)
		}
		fmt.Printf("List %q cleared successfully.\n", args[0])
	},
}
