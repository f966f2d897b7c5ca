package main

import (
	"fmt"
	"strings"

	"rowindex/pkg/common"
	"rowindex/pkg/core"
	"rowindex/pkg/keys"
	"rowindex/pkg/table"
	"rowindex/pkg/versioned"

	"github.com/spf13/cobra"
)

// =============================================================================
// EXAMPLE
// =============================================================================

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Index a person by age and by first+last name",
		Args:  cobra.NoArgs,
		RunE:  runExample,
	}
}

func runExample(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	alice := common.Person{FirstName: "Alice", LastName: "Hargreaves", Age: 166}

	byAge, err := keys.One(keys.MustField[common.Person, int]("Age"))
	if err != nil {
		return err
	}
	ageIndex := core.New("by_age", byAge, core.Options{Logger: &logger})
	if err := ageIndex.Insert(alice, 7); err != nil {
		return err
	}
	row, ok := ageIndex.Lookup(166)
	fmt.Fprintf(out, "by_age: model=%s key=%s\n", byAge.ModelType(), byAge.KeyType())
	fmt.Fprintf(out, "  lookup(166) -> row %d (found=%v)\n", row, ok)

	byName, err := keys.Two(
		keys.MustField[common.Person, string]("FirstName"),
		keys.MustField[common.Person, string]("LastName"),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "by_name: model=%s key=%s\n", byName.ModelType(), byName.Set().KeyTypeName())
	fmt.Fprintf(out, "  extractKey(%s) -> %s\n", alice, byName.Extract(alice))
	return nil
}

// =============================================================================
// LOOKUP / DUMP
// =============================================================================

var indexName string

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup --index NAME VALUE...",
		Short: "Look a key up in a configured index",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookup,
	}
	cmd.Flags().StringVar(&indexName, "index", "by_name", "index to query")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	ix, err := c.index(indexName)
	if err != nil {
		return err
	}

	key, err := ix.Extractor().Set().ParseKey(args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if p, row, ok := table.Find(c.people, ix, key); ok {
		fmt.Fprintf(out, "row %d: %s\n", row, p)
	} else {
		fmt.Fprintf(out, "no row for %s = %s\n", indexName, formatKey(key))
	}

	if showMetrics {
		return c.writeMetrics(out)
	}
	return nil
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump --index NAME",
		Short: "List an index in key order",
		Args:  cobra.NoArgs,
		RunE:  runDump,
	}
	cmd.Flags().StringVar(&indexName, "index", "by_name", "index to list")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	c, err := openCatalog()
	if err != nil {
		return err
	}
	ix, err := c.index(indexName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	set := ix.Extractor().Set()
	fmt.Fprintf(out, "# %s on %s, key %s, %d keys for %d rows\n",
		ix.Name(), set, set.KeyTypeName(), ix.Len(), c.people.Len())
	ix.Ascend(func(key any, row common.RowID) bool {
		p, _ := c.people.Get(row)
		fmt.Fprintf(out, "%s\t%d\t%s\n", formatKey(key), row, p)
		return true
	})

	if showMetrics {
		return c.writeMetrics(out)
	}
	return nil
}

func formatKey(k any) string {
	if t, ok := k.(keys.Tuple); ok {
		return t.String()
	}
	return fmt.Sprint(k)
}

// =============================================================================
// DOWNGRADE
// =============================================================================

func newDowngradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "downgrade",
		Short: "Downgrade a version 2 person to version 0",
		Args:  cobra.NoArgs,
		RunE:  runDowngrade,
	}
}

func runDowngrade(cmd *cobra.Command, args []string) error {
	p2 := versioned.PersonV2{FirstName: "Jonathan", LastName: "O'Connor", YearOfBirth: 1963, IDNumber: "12341234ABCD"}

	path, err := versioned.Path[versioned.PersonV0](p2)
	if err != nil {
		return err
	}
	p0, err := versioned.ToBase(p2)
	if err != nil {
		return err
	}

	steps := make([]string, len(path))
	for i, v := range path {
		steps[i] = fmt.Sprintf("v%d", v)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", strings.Join(steps, " -> "))
	fmt.Fprintf(out, "%s %s\n", p0.FirstName, p0.LastName)
	return nil
}
